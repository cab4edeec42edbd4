// Package ui implements the interactive pages: signup, login, and the
// todo dashboard. Pages run inside one bubbletea program and hand off to
// each other the way the original web app routed between its pages.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/auth"
	"github.com/VishnuSankarIP/todo-client/internal/store"
)

// Page identifies a UI page.
type Page int

const (
	PageSignup Page = iota
	PageLogin
	PageDashboard
)

// Deps bundles the collaborators pages need.
type Deps struct {
	Svc    api.Service
	Store  *store.TodoListStore
	Tokens auth.Store
	Log    *log.Logger
}

// navigateMsg switches the active page.
type navigateMsg struct{ to Page }

func navigateTo(p Page) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: p} }
}

// App routes between pages, replaying the terminal size to whichever
// page becomes active.
type App struct {
	deps          Deps
	page          tea.Model
	width, height int
}

// NewApp creates the router starting at the given page.
func NewApp(deps Deps, start Page) App {
	a := App{deps: deps}
	a.page = a.newPage(start)
	return a
}

func (a App) newPage(p Page) tea.Model {
	switch p {
	case PageSignup:
		return newSignupPage(a.deps)
	case PageLogin:
		return newLoginPage(a.deps)
	default:
		return newDashboard(a.deps)
	}
}

func (a App) Init() tea.Cmd { return a.page.Init() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case navigateMsg:
		a.page = a.newPage(msg.to)
		cmds := []tea.Cmd{a.page.Init()}
		if a.width > 0 {
			size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
			var cmd tea.Cmd
			a.page, cmd = a.page.Update(size)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}
	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a App) View() string { return a.page.View() }

// Run starts the program on the given page and blocks until quit.
func Run(deps Deps, start Page) error {
	p := tea.NewProgram(NewApp(deps, start), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
