package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
)

// backupCmd copies the project store to a destination path.
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Back up the project store to a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		if err := projectStore.Backup(args[0]); err != nil {
			ui.Errorf("Backup failed: %v", err)
			os.Exit(1)
		}
		ui.Successf("Copia de seguridad creada en %s", args[0])
	},
}

// restoreCmd replaces the project store from a backup file. The current store
// contents are overwritten, so a confirmation is required.
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Restore the project store from a backup file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		confirmPrompt := promptui.Prompt{
			Label:     "Restoring will overwrite all current projects. Continue?",
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			if err == promptui.ErrAbort || err == promptui.ErrInterrupt {
				fmt.Println("Restore cancelled.")
				return
			}
			ui.Errorf("Confirmation prompt failed: %v", err)
			os.Exit(1)
		}

		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		if err := projectStore.Restore(args[0]); err != nil {
			ui.Errorf("Restore failed: %v", err)
			os.Exit(1)
		}

		projects, err := projectStore.ListProjects()
		if err != nil {
			ui.Errorf("Store restored but could not be read back: %v", err)
			os.Exit(1)
		}
		ui.Successf("Almacén restaurado: %d auditorías.", len(projects))
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
