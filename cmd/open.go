package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
)

// openCmd loads a saved project as the active draft and binds to it, so
// subsequent saves update it in place.
var openCmd = &cobra.Command{
	Use:     "open [project_id]",
	Aliases: []string{"load"},
	Short:   "Open a saved project as the active draft",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		var projectID string
		if len(args) > 0 {
			projectID = args[0]
		} else {
			selected, err := selectProjectInteractive(projectStore, "Select project to open")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Open cancelled.")
					return
				}
				if err == ErrNoProjectsFound {
					fmt.Println("No hay auditorías guardadas.")
					return
				}
				ui.Errorf("Project selection failed: %v", err)
				os.Exit(1)
			}
			projectID = selected.ID
		}

		sess, draftStore, err := loadSession(projectStore, nil)
		if err != nil {
			ui.Errorf("Failed to load draft state: %v", err)
			os.Exit(1)
		}

		project, err := sess.LoadProject(projectID)
		if err != nil {
			ui.Errorf("Failed to open project %s: %v", projectID, err)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)

		ui.Successf("Auditoría '%s' abierta.", project.Name)
		fmt.Println(ui.RenderPlan(sess.Plan(), sess.Sources()))
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
