package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/ui"
	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

var editContentFile string

// editCmd replaces one draft section's content wholesale. Edits stay in the
// draft until an explicit save; reloading the project or starting a new
// audit discards them.
var editCmd = &cobra.Command{
	Use:   "edit <section>",
	Short: "Edit a draft plan section (analysis|flows|stack|implementation|roi)",
	Long: `Edit replaces the content of one section of the current draft. The new
content is read from --file, or from stdin when no file is given. Nothing is
persisted until 'planora save'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := models.SectionKey(strings.ToLower(args[0]))

		var content string
		if editContentFile != "" {
			data, err := os.ReadFile(editContentFile)
			if err != nil {
				ui.Errorf("Failed to read content file: %v", err)
				os.Exit(1)
			}
			content = string(data)
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				ui.Errorf("Failed to read content from stdin: %v", err)
				os.Exit(1)
			}
			content = string(data)
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

		if err := sess.UpdateSection(key, content); err != nil {
			var validationErr *types.ValidationError
			if errors.As(err, &validationErr) {
				ui.Errorf("%s", validationErr.Msg)
				os.Exit(1)
			}
			ui.Errorf("Failed to edit section: %v", err)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)

		ui.Successf("Sección '%s' actualizada en el borrador.", models.SectionTitles[key])
		fmt.Println(ui.StyleSubtle.Render("Usa 'planora save' para guardar los cambios."))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editContentFile, "file", "f", "", "read the new section content from a file")
}
