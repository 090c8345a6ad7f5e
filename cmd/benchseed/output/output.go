// Package output renders styled terminal messages for the benchseed CLI.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

func prefixed(style lipgloss.Style, prefix, format string, args []any) {
	fmt.Print(style.Render(prefix))
	fmt.Printf(format+"\n", args...)
}

// Success prints a success message.
func Success(format string, args ...any) {
	prefixed(successStyle, "✓ ", format, args)
}

// Warning prints a warning message.
func Warning(format string, args ...any) {
	prefixed(warningStyle, "⚠ ", format, args)
}

// Error prints an error message.
func Error(format string, args ...any) {
	prefixed(errorStyle, "✗ ", format, args)
}

// Info prints an info message.
func Info(format string, args ...any) {
	prefixed(infoStyle, "ℹ ", format, args)
}

// Muted prints a muted message.
func Muted(format string, args ...any) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header.
func Section(title string) {
	fmt.Println()
	fmt.Println(primaryStyle.Render(title))
	fmt.Println()
}

// StageIcon returns a colored icon for a pipeline stage state.
func StageIcon(state string) string {
	switch state {
	case "done":
		return successStyle.Render("✓")
	case "running":
		return infoStyle.Render("◉")
	case "failed":
		return errorStyle.Render("✗")
	case "skipped":
		return mutedStyle.Render("-")
	default: // pending
		return warningStyle.Render("○")
	}
}
