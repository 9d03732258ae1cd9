package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
	"github.com/planora-ai/planora/types"
)

// importCmd brings an exported audit file into the local store. The project
// always gets a fresh ID and a provenance-marked name, so importing can never
// overwrite an existing audit.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an exported audit file as a new project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			ui.Errorf("Failed to read import file: %v", err)
			os.Exit(1)
		}

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

		created, err := sess.Import(data)
		if err != nil {
			var formatErr *types.ImportFormatError
			if errors.As(err, &formatErr) {
				ui.Errorf("El archivo no es una auditoría válida: %s", formatErr.Reason)
				os.Exit(1)
			}
			ui.Errorf("Failed to import project: %v", err)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)
		capture(telemetry.EventImport, nil)

		ui.Successf("Auditoría '%s' importada (ID: %s).", created.Name, created.ID)
		fmt.Println(ui.RenderPlan(sess.Plan(), sess.Sources()))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
