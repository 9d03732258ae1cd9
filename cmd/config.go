package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/planora-ai/planora/types"
)

const (
	configName = ".planora"
	envPrefix  = "PLANORA"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// InitConfig reads in the config file and environment variables.
func InitConfig() {
	// A .env file may carry the API key, as in the original deployment.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. PLANORA_LLM_APIKEY
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	workspaceDir := viper.GetString("project.rootDir")
	if workspaceDir == "" {
		workspaceDir = ".planora"
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(workspaceDir); !os.IsNotExist(err) {
			viper.AddConfigPath(workspaceDir)
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			if err == nil {
				viper.AddConfigPath(home)
			}
			viper.AddConfigPath(".")
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Defaults
	viper.SetDefault("project.rootDir", ".planora")
	viper.SetDefault("project.templatesDir", "templates")
	viper.SetDefault("project.draftFile", "draft.json")
	viper.SetDefault("data.file", "projects.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.requestTimeoutSeconds", 120)
	viper.SetDefault("llm.thinkingBudget", 32768)
	viper.SetDefault("telemetry.enabled", false)

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling config: %v\n", err)
		os.Exit(1)
	}

	// The Gemini key may also come from the conventional env vars.
	if GlobalAppConfig.LLM.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			GlobalAppConfig.LLM.APIKey = key
		} else if key := os.Getenv("API_KEY"); key != "" {
			GlobalAppConfig.LLM.APIKey = key
		}
	}

	if err := validate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
