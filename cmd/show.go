package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
)

// showCmd renders a saved project, or the current draft when no ID is given.
var showCmd = &cobra.Command{
	Use:   "show [project_id]",
	Short: "Show a saved project or the current draft",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		if len(args) > 0 {
			project, err := projectStore.GetProject(args[0])
			if err != nil {
				ui.Errorf("Failed to retrieve project %s: %v", args[0], err)
				os.Exit(1)
			}
			fmt.Println(ui.StyleTitle.Render(project.Name))
			fmt.Println(ui.StyleSubtle.Render(project.BusinessDescription))
			fmt.Println()
			fmt.Println(ui.RenderPlan(&project.Plan, project.Sources))
			return
		}

		sess, _, err := loadSession(projectStore, nil)
		if err != nil {
			ui.Errorf("Failed to load draft state: %v", err)
			os.Exit(1)
		}

		if sess.BusinessDescription() != "" {
			fmt.Println(ui.StyleSubtle.Render(sess.BusinessDescription()))
			fmt.Println()
		}
		fmt.Println(ui.RenderPlan(sess.Plan(), sess.Sources()))

		name := ""
		if sess.Bound() {
			if project, err := projectStore.GetProject(sess.CurrentProjectID()); err == nil {
				name = project.Name
			}
		}
		fmt.Println(ui.StatusLine(sess.Bound(), name))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
