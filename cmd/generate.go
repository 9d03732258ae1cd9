package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
	"github.com/planora-ai/planora/types"
)

var generateDescriptionFile string

// generateCmd turns a business description into a draft automation plan.
var generateCmd = &cobra.Command{
	Use:   "generate [business description]",
	Short: "Generate an automation plan from a business description",
	Long: `Generate calls the configured LLM provider with your business description
and replaces the current draft with the resulting five-section plan. The
draft is not saved until you run 'planora save'.`,
	Run: func(cmd *cobra.Command, args []string) {
		description := strings.TrimSpace(strings.Join(args, " "))
		if generateDescriptionFile != "" {
			data, err := os.ReadFile(generateDescriptionFile)
			if err != nil {
				ui.Errorf("Failed to read description file: %v", err)
				os.Exit(1)
			}
			description = strings.TrimSpace(string(data))
		}

		projectStore, err := GetStore()
		if err != nil {
			ui.Errorf("Failed to get store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = projectStore.Close() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout())
		defer cancel()

		provider, err := GetProvider(ctx)
		if err != nil {
			ui.Errorf("Failed to initialize LLM provider: %v", err)
			os.Exit(1)
		}

		sess, draftStore, err := loadSession(projectStore, provider)
		if err != nil {
			ui.Errorf("Failed to load draft state: %v", err)
			os.Exit(1)
		}

		fmt.Println(ui.StyleSubtle.Render("Generando plan de automatización..."))

		if err := sess.Generate(ctx, description); err != nil {
			var validationErr *types.ValidationError
			if errors.As(err, &validationErr) {
				ui.Errorf("%s", validationErr.Msg)
				os.Exit(1)
			}
			// Generic retry-suggesting message; details only in verbose mode.
			ui.Errorf("Hubo un error al generar el plan. Por favor, inténtalo de nuevo.")
			if verbose {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			persistDraft(draftStore, sess)
			os.Exit(1)
		}

		persistDraft(draftStore, sess)
		capture(telemetry.EventGenerate, map[string]interface{}{
			"sources": len(sess.Sources()),
		})

		fmt.Println(ui.RenderPlan(sess.Plan(), sess.Sources()))
		fmt.Println(ui.StatusLine(sess.Bound(), ""))
		fmt.Println(ui.StyleSubtle.Render("Usa 'planora save' para guardar la auditoría."))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateDescriptionFile, "file", "f", "", "read the business description from a file")
}
