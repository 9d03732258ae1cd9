package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
	"github.com/planora-ai/planora/types"
)

// saveCmd commits the draft to the project store. A first save creates a new
// project and binds the draft to it; subsequent saves update the same entry.
var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the current draft as a project, or update the bound one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		sess, draftStore, err := loadSession(projectStore, nil)
		if err != nil {
			ui.Errorf("Failed to load draft state: %v", err)
			os.Exit(1)
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}

		// Only a first save needs a name; updates keep the existing one.
		if !sess.Bound() && strings.TrimSpace(name) == "" {
			prompt := promptui.Prompt{
				Label:   "Nombre del Proyecto",
				Default: "",
			}
			entered, promptErr := prompt.Run()
			if promptErr != nil {
				if promptErr == promptui.ErrInterrupt {
					ui.Errorf("Save cancelled.")
					return
				}
				ui.Errorf("Name prompt failed: %v", promptErr)
				os.Exit(1)
			}
			name = entered
		}

		saved, err := sess.Save(name)
		if err != nil {
			var validationErr *types.ValidationError
			if errors.As(err, &validationErr) {
				ui.Errorf("%s", validationErr.Msg)
				os.Exit(1)
			}
			ui.Errorf("Failed to save project: %v", err)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)
		capture(telemetry.EventSave, nil)

		ui.Successf("Auditoría '%s' guardada (ID: %s).", saved.Name, saved.ID)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
