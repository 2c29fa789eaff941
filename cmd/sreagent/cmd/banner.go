package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

func printBanner(w io.Writer, target, dir string, avail tools.Availability) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	fmt.Fprintln(w, titleStyle.Render("Local SRE Agent started"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Watching process:"), target)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Reports directory:"), dir)
	fmt.Fprintln(w, labelStyle.Render("Detected tools:"))
	printTools(w, avail)
}

func printTools(w io.Writer, avail tools.Availability) {
	for _, name := range avail.Names() {
		if path, ok := avail.Path(name); ok {
			fmt.Fprintf(w, "  %s %s %s\n", okStyle.Render("✓"), name, missingStyle.Render(path))
		} else {
			fmt.Fprintf(w, "  %s %s %s\n", missingStyle.Render("○"), name, missingStyle.Render("(not installed)"))
		}
	}
}
