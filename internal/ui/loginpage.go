package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VishnuSankarIP/todo-client/internal/api"
)

// loginPage exchanges credentials for a token and stores it before
// moving on to the dashboard.
type loginPage struct {
	deps       Deps
	email      textinput.Model
	password   textinput.Model
	focus      int // 0 email, 1 password
	submitting bool
	toast      toast
}

type loginResultMsg struct {
	token string
	err   error
}

func newLoginPage(deps Deps) *loginPage {
	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.Prompt = "> "
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.Prompt = "> "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return &loginPage{deps: deps, email: email, password: password}
}

func (p *loginPage) Init() tea.Cmd { return textinput.Blink }

func (p *loginPage) submit() tea.Cmd {
	email := strings.TrimSpace(p.email.Value())
	password := p.password.Value()
	if email == "" || password == "" {
		p.toast = toast{text: "Email and password are required", isErr: true}
		return expireToast()
	}
	p.submitting = true
	deps := p.deps
	return func() tea.Msg {
		token, err := deps.Svc.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := deps.Tokens.Set(token, nil); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{token: token}
	}
}

func (p *loginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearToastMsg:
		p.toast = toast{}
		return p, nil

	case loginResultMsg:
		p.submitting = false
		if msg.err != nil {
			p.toast = toast{text: api.Message(msg.err), isErr: true}
			return p, expireToast()
		}
		return p, navigateTo(PageDashboard)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return p, tea.Quit
		case "ctrl+u":
			return p, navigateTo(PageSignup)
		case "tab", "shift+tab", "up", "down":
			p.toggleFocus()
			return p, nil
		case "enter":
			if p.focus == 0 {
				p.toggleFocus()
				return p, nil
			}
			if p.submitting {
				return p, nil
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.email, cmd = p.email.Update(msg)
	} else {
		p.password, cmd = p.password.Update(msg)
	}
	return p, cmd
}

func (p *loginPage) toggleFocus() {
	if p.focus == 0 {
		p.email.Blur()
		p.password.Focus()
		p.focus = 1
	} else {
		p.password.Blur()
		p.email.Focus()
		p.focus = 0
	}
}

func (p *loginPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Log in to your account"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(p.email.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(p.password.View())
	b.WriteString("\n\n")

	if p.submitting {
		b.WriteString(mutedStyle.Render("Logging in..."))
		b.WriteString("\n")
	}
	if t := p.toast.view(); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter log in • tab switch field • ctrl+u sign up • esc quit"))
	return panelString(b.String())
}
