package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/export"
	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd writes a saved project to a portable file: JSON for re-import on
// another machine, or a formatted PDF for sharing.
var exportCmd = &cobra.Command{
	Use:   "export [project_id]",
	Short: "Export a saved project to JSON or PDF",
	Long: `Export writes a saved project to a file. The JSON format round-trips
through 'planora import'; the PDF format is a formatted document for sharing.
The filename is derived from the project name and ID unless --output is set.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if exportFormat != "json" && exportFormat != "pdf" {
			ui.Errorf("Unsupported export format %q (use json or pdf).", exportFormat)
			os.Exit(1)
		}

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
			selected, err := selectProjectInteractive(projectStore, "Select project to export")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Export cancelled.")
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

		project, err := projectStore.GetProject(projectID)
		if err != nil {
			ui.Errorf("Failed to retrieve project %s: %v", projectID, err)
			os.Exit(1)
		}

		outPath := exportOutput
		switch exportFormat {
		case "json":
			data, err := export.EncodeProject(project)
			if err != nil {
				ui.Errorf("Failed to encode project: %v", err)
				os.Exit(1)
			}
			if outPath == "" {
				outPath = export.FileName(project)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				ui.Errorf("Failed to write export file: %v", err)
				os.Exit(1)
			}
		case "pdf":
			if outPath == "" {
				outPath = export.PDFFileName(project)
			}
			f, err := os.Create(outPath)
			if err != nil {
				ui.Errorf("Failed to create export file: %v", err)
				os.Exit(1)
			}
			if err := export.WritePDF(f, project); err != nil {
				_ = f.Close()
				ui.Errorf("Failed to write PDF: %v", err)
				os.Exit(1)
			}
			if err := f.Close(); err != nil {
				ui.Errorf("Failed to finalize export file: %v", err)
				os.Exit(1)
			}
		}

		capture(telemetry.EventExport, map[string]interface{}{"format": exportFormat})

		absPath, err := filepath.Abs(outPath)
		if err != nil {
			absPath = outPath
		}
		ui.Successf("Auditoría '%s' exportada a %s", project.Name, absPath)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default derived from the project name)")
}
