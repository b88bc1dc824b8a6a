package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/typicalx11app/internal/config"
)

// Program information.
const (
	CommandName    = "typicalx11app"
	ProgramAuthors = "Katayama Hirofumi MZ"
	ProgramYears   = "2015-2016"

	VersionMajor = 0
	VersionMinor = 1
	VersionBuild = 0
)

// Version returns "major.minor.build".
func Version() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionBuild)
}

// VersionInfo returns the one-line version banner.
func VersionInfo() string {
	return fmt.Sprintf("%s %s by %s", config.ProgramName, Version(), ProgramAuthors)
}

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("62"))

// heading renders s in bold colour when w is an interactive terminal.
func heading(w io.Writer, s string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return headingStyle.Render(s)
	}
	return s
}

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, heading(w, "Usage:")+" "+CommandName+" [options] [FILE...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, heading(w, "Options:"))
	fmt.Fprintln(w, "  --help            Show this help and exit")
	fmt.Fprintln(w, "  --version         Show version information and exit")
	fmt.Fprintln(w, "  --option VALUE    Set the option value")
}

// PrintVersion writes the version banner to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintln(w, heading(w, VersionInfo()))
	fmt.Fprintf(w, "Copyright (C) %s %s\n", ProgramYears, ProgramAuthors)
}
