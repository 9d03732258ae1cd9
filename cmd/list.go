package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
)

// listCmd prints the saved projects, most recent creation first.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved audit projects",
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		projects, err := projectStore.ListProjects()
		if err != nil {
			ui.Errorf("Failed to list projects: %v", err)
			os.Exit(1)
		}

		d, err := GetDraftStore().Load()
		currentID := ""
		if err == nil {
			currentID = d.CurrentProjectID
		}

		fmt.Println(ui.RenderProjectList(projects, currentID))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
