package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Faint(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// SetTheme adjusts the palette. "mono" strips color for dumb terminals.
func SetTheme(name string) {
	if strings.ToLower(name) != "mono" {
		return
	}
	plain := lipgloss.NewStyle()
	titleStyle = plain.Bold(true)
	successStyle = plain
	pendingStyle = plain
	accentStyle = plain
	mutedStyle = plain
	errorStyle = plain.Bold(true)
	selectedStyle = plain.Reverse(true)
	doneStyle = plain.Strikethrough(true)
	helpStyle = plain
	labelStyle = plain.Bold(true)
	boxChecked = "[x]"
	boxUnchecked = "[ ]"
}

// OK prints a success notice for one-shot commands.
func OK(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

// Fail prints a failure notice to stderr for one-shot commands.
func Fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}

// Muted prints a secondary hint line.
func Muted(msg string) {
	fmt.Println(mutedStyle.Render(msg))
}

// panelString frames content in a rounded border.
func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// modalString frames the edit dialog more prominently.
func modalString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2)
	return border.Render(inner)
}
