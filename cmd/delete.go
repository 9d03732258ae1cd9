package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
)

// deleteCmd removes a saved project after confirmation. Deleting the project
// the draft is bound to also clears the draft.
var deleteCmd = &cobra.Command{
	Use:   "delete [project_id]",
	Short: "Delete a saved project",
	Long:  `Delete a project by its ID. If no ID is provided, an interactive list is shown. A confirmation prompt is always displayed before deletion.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		var projectID, projectName string

		if len(args) > 0 {
			projectID = args[0]
			project, err := projectStore.GetProject(projectID)
			if err != nil {
				ui.Errorf("Failed to retrieve project %s for deletion: %v", projectID, err)
				os.Exit(1)
			}
			projectName = project.Name
		} else {
			selected, err := selectProjectInteractive(projectStore, "Select project to delete")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
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
			projectName = selected.Name
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Are you sure you want to delete project '%s' (ID: %s)?", projectName, projectID),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			if err == promptui.ErrAbort {
				fmt.Println("Deletion cancelled.")
			} else {
				ui.Errorf("Confirmation prompt failed: %v", err)
			}
			os.Exit(1)
		}

		sess, draftStore, err := loadSession(projectStore, nil)
		if err != nil {
			ui.Errorf("Failed to load draft state: %v", err)
			os.Exit(1)
		}

		if err := sess.DeleteProject(projectID); err != nil {
			ui.Errorf("Failed to delete project %s: %v", projectID, err)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)
		capture(telemetry.EventDelete, nil)

		ui.Successf("Auditoría '%s' eliminada.", projectName)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
