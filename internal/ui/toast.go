package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration matches the notice lifetime of the original UI.
const toastDuration = 4 * time.Second

// toast is a transient status line shown at the bottom of a page.
type toast struct {
	text  string
	isErr bool
}

type clearToastMsg struct{}

func expireToast() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{} })
}

func (t toast) view() string {
	if t.text == "" {
		return ""
	}
	if t.isErr {
		return errorStyle.Render("✖ " + t.text)
	}
	return successStyle.Render("✔ " + t.text)
}
