package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planora-ai/planora/internal/draft"
	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/llm"
	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/session"
	"github.com/planora-ai/planora/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoProjectsFound is returned when an interactive selection is
	// attempted but no saved projects exist.
	ErrNoProjectsFound = errors.New("no saved projects found")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "planora",
	Short: "Planora generates and manages business automation audit plans.",
	Long: `Planora turns a business description into a five-section automation
plan using an LLM with web search grounding, and keeps your audits in a
local project store: generate, edit, save, export and revisit them.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.planora.yaml or ./.planora/.planora.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetProjectFilePath returns the full path to the project store data file.
func GetProjectFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetStore initializes and returns the project store.
func GetStore() (store.ProjectStore, error) {
	s := store.NewFileProjectStore()
	config := GetConfig()

	projectFilePath := GetProjectFilePath()

	err := s.Initialize(map[string]string{
		"dataFile":       projectFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", projectFilePath, err)
	}
	return s, nil
}

// GetDraftStore returns the draft state carrier for the workspace.
func GetDraftStore() *draft.Store {
	config := GetConfig()
	return draft.NewOSStore(filepath.Join(config.Project.RootDir, config.Project.DraftFile))
}

// GetProvider builds the configured LLM provider.
func GetProvider(ctx context.Context) (llm.FullProvider, error) {
	config := GetConfig()
	return llm.NewProvider(ctx, &config.LLM, templatesDir())
}

func templatesDir() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.TemplatesDir)
}

// requestTimeout bounds every provider call; generation has no upstream
// timeout of its own.
func requestTimeout() time.Duration {
	config := GetConfig()
	if config.LLM.RequestTimeoutSeconds > 0 {
		return time.Duration(config.LLM.RequestTimeoutSeconds) * time.Second
	}
	return 120 * time.Second
}

// loadSession creates a session over the given store and restores the
// workspace draft into it.
func loadSession(projectStore store.ProjectStore, provider llm.Provider) (*session.Session, *draft.Store, error) {
	draftStore := GetDraftStore()
	sess := session.New(projectStore, provider)

	d, err := draftStore.Load()
	if err != nil {
		return nil, nil, err
	}
	sess.Restore(d)
	return sess, draftStore, nil
}

// persistDraft writes the session draft back to the workspace. Failures are
// reported but never fatal: the store already holds anything saved.
func persistDraft(draftStore *draft.Store, sess *session.Session) {
	if err := draftStore.Save(sess.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not persist draft state: %v\n", err)
	}
}

// capture sends one telemetry event when telemetry is enabled.
func capture(event string, properties map[string]interface{}) {
	config := GetConfig()
	client := telemetry.New(config.Telemetry, version)
	client.Capture(event, properties)
	client.Close()
}

// selectProjectInteractive presents a prompt to select a saved project.
func selectProjectInteractive(projectStore store.ProjectStore, label string) (models.SavedPlan, error) {
	projects, err := projectStore.ListProjects()
	if err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to list projects for selection: %w", err)
	}

	if len(projects) == 0 {
		return models.SavedPlan{}, ErrNoProjectsFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Name | cyan }} (ID: {{ .ID }})`,
		Inactive: `  {{ .Name | faint }} (ID: {{ .ID }})`,
		Selected: `{{ "✔" | green }} {{ .Name | faint }} (ID: {{ .ID }})`,
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     projects,
		Templates: templates,
		Size:      10,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return models.SavedPlan{}, err
	}
	return projects[idx], nil
}
