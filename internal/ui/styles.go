package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
)

// CurrentMatchLine style for the line holding the selected match.
var CurrentMatchLine = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// MatchLine style for other matching lines.
var MatchLine = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Padding(0, 1)

// NormalLine style for non-matching lines.
var NormalLine = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// StatusBar style for the status line.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status line.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status line.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for the error line.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// RenderLines renders the visible document window. Matching lines are
// tinted; the line holding the selected match gets the highlight bar.
func RenderLines(lines []string, matches []int, currentLine, offset, width, height int) string {
	if len(lines) == 0 {
		return NormalLine.Render("(empty document)")
	}

	matchSet := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchSet[m] = true
	}

	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := offset; i < end; i++ {
		line := lines[i]
		switch {
		case i == currentLine:
			b.WriteString(CurrentMatchLine.MaxWidth(width).Render(line))
		case matchSet[i]:
			b.WriteString(MatchLine.MaxWidth(width).Render(line))
		default:
			b.WriteString(NormalLine.MaxWidth(width).Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	// Pad so the bar stays pinned to the bottom.
	for i := end - offset; i < height; i++ {
		b.WriteString("\n")
	}

	return b.String()
}

// RenderStatusBar renders the match counter and key hints.
func RenderStatusBar(current, total int, searching bool, err error, width int) string {
	if err != nil {
		return ErrorStyle.Width(width).Render("Error: " + err.Error() + " (press any key to dismiss)")
	}

	var left string
	switch {
	case total > 0 && current >= 0:
		left = fmt.Sprintf("match %d/%d", current+1, total)
	case total > 0:
		left = fmt.Sprintf("%d matches", total)
	default:
		left = "no matches"
	}

	var hints string
	if searching {
		hints = StatusBarKey.Render("enter") + StatusBarText.Render(" search  ") +
			StatusBarKey.Render("tab") + StatusBarText.Render(" complete  ") +
			StatusBarKey.Render("esc") + StatusBarText.Render(" cancel")
	} else {
		hints = StatusBarKey.Render("/") + StatusBarText.Render(" search  ") +
			StatusBarKey.Render("n/N") + StatusBarText.Render(" next/prev  ") +
			StatusBarKey.Render("q") + StatusBarText.Render(" quit")
	}

	return StatusBar.Width(width).Render(left + "  " + hints)
}
