package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/signup"
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	signupFieldCount
)

var signupFieldNames = [signupFieldCount]string{"username", "email", "password"}

// signupPage is the account-creation form. Submission is gated on local
// validation; the request only goes out when every field passes.
type signupPage struct {
	deps       Deps
	inputs     [signupFieldCount]textinput.Model
	focus      int
	fieldErrs  signup.Errors
	submitting bool
	toast      toast
	width      int
}

type signupResultMsg struct{ err error }

func newSignupPage(deps Deps) *signupPage {
	p := &signupPage{deps: deps}

	username := textinput.New()
	username.Placeholder = "Enter your username"
	username.Prompt = "> "
	username.CharLimit = 64
	username.Focus()

	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.Prompt = "> "
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.Prompt = "> "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	p.inputs[fieldUsername] = username
	p.inputs[fieldEmail] = email
	p.inputs[fieldPassword] = password
	return p
}

func (p *signupPage) Init() tea.Cmd { return textinput.Blink }

func (p *signupPage) submit() tea.Cmd {
	p.fieldErrs = signup.Validate(
		strings.TrimSpace(p.inputs[fieldUsername].Value()),
		strings.TrimSpace(p.inputs[fieldEmail].Value()),
		p.inputs[fieldPassword].Value(),
	)
	if !p.fieldErrs.Valid() {
		p.toast = toast{text: "Please fill out all fields correctly.", isErr: true}
		return expireToast()
	}

	p.submitting = true
	username := strings.TrimSpace(p.inputs[fieldUsername].Value())
	email := strings.TrimSpace(p.inputs[fieldEmail].Value())
	password := p.inputs[fieldPassword].Value()
	svc := p.deps.Svc
	return func() tea.Msg {
		return signupResultMsg{err: svc.Signup(context.Background(), username, email, password)}
	}
}

func (p *signupPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case clearToastMsg:
		p.toast = toast{}
		return p, nil

	case signupResultMsg:
		p.submitting = false
		if msg.err != nil {
			p.toast = toast{text: api.Message(msg.err), isErr: true}
			return p, expireToast()
		}
		p.toast = toast{text: "Signup successful! Please login."}
		// Brief pause so the notice is visible, then hand off to login.
		return p, tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
			return navigateMsg{to: PageLogin}
		})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return p, tea.Quit
		case "ctrl+l":
			return p, navigateTo(PageLogin)
		case "ctrl+t":
			pw := &p.inputs[fieldPassword]
			if pw.EchoMode == textinput.EchoPassword {
				pw.EchoMode = textinput.EchoNormal
			} else {
				pw.EchoMode = textinput.EchoPassword
			}
			return p, nil
		case "tab", "down":
			p.setFocus((p.focus + 1) % signupFieldCount)
			return p, nil
		case "shift+tab", "up":
			p.setFocus((p.focus + signupFieldCount - 1) % signupFieldCount)
			return p, nil
		case "enter":
			if p.focus < fieldPassword {
				p.setFocus(p.focus + 1)
				return p, nil
			}
			if p.submitting {
				return p, nil
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *signupPage) setFocus(i int) {
	p.inputs[p.focus].Blur()
	p.focus = i
	p.inputs[p.focus].Focus()
}

func (p *signupPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Create your account"))
	b.WriteString("\n\n")

	labels := [signupFieldCount]string{"Username", "Email", "Password"}
	for i, in := range p.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
		if msg, bad := p.fieldErrs[signupFieldNames[i]]; bad {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if p.submitting {
		b.WriteString(mutedStyle.Render("Creating your account..."))
		b.WriteString("\n")
	}
	if t := p.toast.view(); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter sign up • tab next field • ctrl+t show password • ctrl+l login • esc quit"))
	return panelString(b.String())
}
