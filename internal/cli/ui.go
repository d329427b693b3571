package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette & Styles
// =============================================================================

// ANSI-256 palette shared by every command.
var (
	colorAccent  = lipgloss.Color("36")  // headings and the spinner
	colorOK      = lipgloss.Color("35")  // success lines
	colorWarn    = lipgloss.Color("220") // warnings
	colorErr     = lipgloss.Color("167") // errors
	colorCommand = lipgloss.Color("75")  // runnable commands
	colorValue   = lipgloss.Color("255") // data values
	colorLabel   = lipgloss.Color("245") // labels and secondary text
	colorMuted   = lipgloss.Color("240") // muted detail
)

// fg is shorthand for a foreground-only style.
func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Styles shared with the progress model in progress.go.
var (
	// StyleTitle for headings.
	StyleTitle = fg(colorAccent).Bold(true)

	// StyleDim for muted text.
	StyleDim = fg(colorMuted)
)

var (
	styleValue   = fg(colorValue)
	styleWarn    = fg(colorWarn)
	styleSpinner = fg(colorAccent)
	styleCommand = fg(colorCommand)
	styleLabel   = fg(colorLabel)

	// keyColumn aligns the labels printed by printKeyValue.
	keyColumn = fg(colorLabel).Width(12)
)

// =============================================================================
// Status Lines
// =============================================================================

// statusLine prints msg behind a colored one-character icon.
func statusLine(icon string, c lipgloss.Color, msg string) {
	fmt.Println(fg(c).Render(icon) + " " + msg)
}

// printSuccess prints a success line.
func printSuccess(format string, args ...any) {
	statusLine("✓", colorOK, fmt.Sprintf(format, args...))
}

// printError prints an error line.
func printError(format string, args ...any) {
	statusLine("✗", colorErr, fmt.Sprintf(format, args...))
}

// printWarning prints a warning line with the message itself highlighted.
func printWarning(format string, args ...any) {
	statusLine("!", colorWarn, styleWarn.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints a neutral status line.
func printInfo(format string, args ...any) {
	statusLine("›", colorLabel, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a file the command wrote.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// printKeyValue prints a label and its value in two aligned columns.
func printKeyValue(key, value string) {
	fmt.Println(keyColumn.Render(key) + " " + styleValue.Render(value))
}

// printNextStep suggests a follow-up command the user can copy.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Run Statistics
// =============================================================================

// printStats prints one muted line of completion statistics, ending with
// a cached/fresh marker.
func printStats(vectors, pairs int, d time.Duration, cached bool) {
	parts := []string{fmt.Sprintf("%d vectors", vectors)}
	if pairs > 0 {
		parts = append(parts, fmt.Sprintf("%d pairs", pairs))
	}
	if d > 0 {
		parts = append(parts, d.Round(time.Millisecond).String())
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if cached {
		parts = append(parts, fg(colorOK).Render("cached"))
	} else {
		parts = append(parts, styleLabel.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// fmtVector renders a lattice point as "(3 0 1 2)".
func fmtVector(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
