package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	"github.com/planora-ai/planora/internal/ui"
)

// configCmd prints the effective configuration after file, env and defaults
// are merged. Secrets are redacted.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		config := *GetConfig()
		if config.LLM.APIKey != "" {
			config.LLM.APIKey = "[redacted]"
		}
		if config.Telemetry.APIKey != "" {
			config.Telemetry.APIKey = "[redacted]"
		}

		out, err := yaml.Marshal(config)
		if err != nil {
			ui.Errorf("Failed to render configuration: %v", err)
			os.Exit(1)
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println(ui.StyleSubtle.Render("# config file: " + used))
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
