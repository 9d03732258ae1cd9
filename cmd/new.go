package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
)

// newCmd starts a fresh audit: the draft is cleared and unbound. Saved
// projects are untouched.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new audit, clearing the current draft",
	Run: func(cmd *cobra.Command, args []string) {
		draftStore := GetDraftStore()
		if err := draftStore.Clear(); err != nil {
			ui.Errorf("Failed to clear draft: %v", err)
			os.Exit(1)
		}
		ui.Successf("Nueva auditoría iniciada.")
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
