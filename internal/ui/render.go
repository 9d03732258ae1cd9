// Package ui renders plans, sources and project listings for the terminal.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/planora-ai/planora/models"
)

const (
	defaultWidth = 100
	maxWidth     = 120
)

// TerminalWidth returns the usable rendering width, clamped to keep long
// plan paragraphs readable on wide terminals.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// RenderPlan renders the five sections in canonical order followed by the
// citation sources. Pending sections show a placeholder.
func RenderPlan(plan *models.Plan, sources []models.GroundingSource) string {
	if plan == nil {
		return StyleSubtle.Render("No hay plan generado todavía.")
	}

	width := TerminalWidth()
	body := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, section := range plan.OrderedSections() {
		b.WriteString(StyleSectionTitle.Render(section.Title))
		b.WriteString("\n")
		if strings.TrimSpace(section.Content) == "" {
			b.WriteString(StyleSubtle.Render("Pendiente de generación..."))
		} else {
			b.WriteString(body.Render(renderContent(section.Content)))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(StyleSectionTitle.Render("Fuentes de Información"))
	b.WriteString("\n")
	if len(sources) == 0 {
		b.WriteString(StyleSubtle.Render("Sin fuentes externas."))
		b.WriteString("\n")
	} else {
		for _, source := range sources {
			b.WriteString(StyleAccent.Render(source.Title))
			b.WriteString("\n")
			b.WriteString(StyleSubtle.Render("  " + source.URI))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderContent restyles the markdown-like list markers the generator emits.
// The sub-structure is presentation only; the stored content is untouched.
func renderContent(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			lines[i] = StyleAccent.Render("•") + " " + trimmed[2:]
		}
	}
	return strings.Join(lines, "\n")
}

// RenderProjectList renders the saved projects most-recent-first, marking the
// currently bound one.
func RenderProjectList(projects []models.SavedPlan, currentID string) string {
	if len(projects) == 0 {
		return StyleSubtle.Render("No hay auditorías guardadas.")
	}

	var b strings.Builder
	for _, p := range projects {
		marker := "  "
		if p.ID == currentID {
			marker = StyleSuccess.Render("* ")
		}
		modified := time.UnixMilli(p.Timestamp).Format("2006-01-02 15:04")
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker,
			StyleTitle.Render(p.Name),
			StyleSubtle.Render("("+p.ID+")"),
			StyleSubtle.Render(modified),
		))
	}
	return b.String()
}

// StatusLine summarizes the draft state for command output.
func StatusLine(bound bool, name string) string {
	if !bound {
		return StyleStatusBox.Render(StyleWarning.Render("●") + " Borrador sin guardar")
	}
	return StyleStatusBox.Render(StyleSuccess.Render("●") + " Vinculado a " + StyleTitle.Render(name))
}

// Successf prints a success line to stdout.
func Successf(format string, args ...interface{}) {
	fmt.Println(StyleSuccess.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, StyleError.Render(fmt.Sprintf(format, args...)))
}
