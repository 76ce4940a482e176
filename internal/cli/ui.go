package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// Status lines go to uiOut and failures to uiErr. Tests swap them for buffers.
var (
	uiOut io.Writer = os.Stdout
	uiErr io.Writer = os.Stderr
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary: titles, numbers, the start symbol
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorRed    = lipgloss.Color("167") // errors
	colorYellow = lipgloss.Color("220") // ambiguous strings
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle renders section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders an emphasized value inside a status line.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleNumber renders counts and limits.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(uiErr, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Summaries
// =============================================================================

// printStats summarizes a generation: distinct strings, derivations when they
// differ, and whether the result came from the cache.
func printStats(strs int, total uint64, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d strings", strs))}
	if total != uint64(strs) {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d derivations", total)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(separator)))
}

// grammarSummary describes the size of g on one line.
func grammarSummary(g grammar.Grammar) string {
	return fmt.Sprintf("%d nonterminals%s%d productions%sstart %c",
		len(g), separator, g.Len(), separator, grammar.Start)
}
