// Package cli dispatches subcommands and wires up the collaborators.
package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/auth"
	"github.com/VishnuSankarIP/todo-client/internal/config"
	"github.com/VishnuSankarIP/todo-client/internal/logging"
	"github.com/VishnuSankarIP/todo-client/internal/model"
	"github.com/VishnuSankarIP/todo-client/internal/store"
	"github.com/VishnuSankarIP/todo-client/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigDir string // empty means the default XDG directory
	ServerURL string // overrides the config file when set
	Theme     string // overrides the config file when set
	Debug     bool
}

// env is the wired-up set of collaborators a command runs against.
type env struct {
	cfg     *config.Config
	tokens  auth.Store
	svc     api.Service
	store   *store.TodoListStore
	log     *log.Logger
	logFile *os.File
}

func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) deps() ui.Deps {
	return ui.Deps{Svc: e.svc, Store: e.store, Tokens: e.tokens, Log: e.log}
}

// setup loads config and builds the client stack. When interactive, logs
// go to a file so the TUI keeps the terminal to itself.
func setup(opt Options, interactive bool) (*env, error) {
	cfg, err := config.Load(opt.ConfigDir)
	if err != nil {
		return nil, err
	}
	if opt.ServerURL != "" {
		cfg.ServerURL = opt.ServerURL
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	if opt.Debug {
		cfg.Debug = true
	}
	ui.SetTheme(cfg.Theme)
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	e := &env{cfg: cfg, tokens: auth.Store{Path: cfg.TokenPath()}}
	if interactive {
		f, err := logging.OpenFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		e.logFile = f
		e.log = logging.New(f, cfg.Debug)
	} else {
		e.log = logging.New(os.Stderr, cfg.Debug)
	}

	e.svc = api.NewClient(cfg.ServerURL, cfg.Timeout(), e.tokens.Token, e.log)
	e.store = store.New(e.svc)
	return e, nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "signup":
		return doPage(opt, ui.PageSignup)

	case "login":
		return doPage(opt, ui.PageLogin)

	case "logout":
		return doLogout(opt)

	case "whoami":
		return doWhoAmI(opt)

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: todo done <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("done: not a number: " + a[0])
			return 2
		}
		return doToggle(opt, n)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: todo rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(opt, n)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todo - terminal client for the todo service

Usage:
  todo <subcommand> [args]

Subcommands:
  signup             Create an account (interactive)
  login              Log in and store the API token (interactive)
  logout             Remove the stored API token
  whoami             Show who the stored token belongs to
  ls                 Browse todos (interactive dashboard)
  add <title...>     Add a todo (title can be multiple words)
  done <index>       Toggle completion for the todo at 1-based index
  rm <index>         Delete the todo at 1-based index

Examples:
  todo signup
  todo add "Buy milk"
  todo ls
  todo done 2
  todo rm 3
`)
}

// ---------------------------------------------------
// Interactive pages
// ---------------------------------------------------

func doPage(opt Options, page ui.Page) int {
	e, err := setup(opt, true)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer e.close()

	if err := ui.Run(e.deps(), page); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	e, err := setup(opt, true)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer e.close()

	// Without a credential the dashboard's first fetch is doomed; start
	// at the login page instead, it routes forward on success.
	page := ui.PageDashboard
	if e.tokens.Token() == "" {
		page = ui.PageLogin
	}
	if err := ui.Run(e.deps(), page); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func doLogout(opt Options) int {
	e, err := setup(opt, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ti, _ := e.tokens.Get()
	if ti != nil && ti.Source == "env" {
		ui.OK("token is provided by " + auth.EnvVar + " env var (nothing to delete)")
		return 0
	}
	if err := e.tokens.Delete(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

// doWhoAmI decodes a JWT locally (unsigned); opaque tokens print basic info.
func doWhoAmI(opt Options) int {
	e, err := setup(opt, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ti, _ := e.tokens.Get()
	if ti == nil {
		ui.Fail("not logged in. Run: todo login")
		return 2
	}
	parts := strings.Split(ti.Token, ".")
	if len(parts) == 3 {
		payloadB64 := parts[1]
		// add padding if needed
		switch len(payloadB64) % 4 {
		case 2:
			payloadB64 += "=="
		case 3:
			payloadB64 += "="
		}
		if p, err := decodeB64URL(payloadB64); err == nil {
			fmt.Println("JWT payload:")
			fmt.Println(p)
			return 0
		}
	}
	fmt.Println("Opaque token (cannot introspect locally).")
	fmt.Println("source:", ti.Source)
	if ti.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return 0
}

func decodeB64URL(s string) (string, error) {
	dec, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		dec2, err2 := base64.URLEncoding.DecodeString(s)
		if err2 != nil {
			return "", err
		}
		return string(dec2), nil
	}
	return string(dec), nil
}

// ---------------------------------------------------
// One-shot todo subcommands (remote CRUD, no TUI)
// ---------------------------------------------------

func requireAuth(e *env) int {
	if e.tokens.Token() == "" {
		ui.Fail("no token found. Set " + auth.EnvVar + " or run `todo login`")
		return 2
	}
	return 0
}

func doAdd(opt Options, title string) int {
	e, err := setup(opt, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if code := requireAuth(e); code != 0 {
		return code
	}
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	if _, err := e.store.Create(context.Background(), title, "", model.StatusPending); err != nil {
		ui.Fail("add: " + api.Message(err))
		return 1
	}
	ui.OK("added")
	return 0
}

// loadIndexed fetches the list and resolves a 1-based index to a record.
func loadIndexed(e *env, userIndex int) (model.Todo, int) {
	if err := e.store.Load(context.Background()); err != nil {
		ui.Fail("load: " + api.Message(err))
		return model.Todo{}, 1
	}
	items := e.store.Items()
	if userIndex < 1 || userIndex > len(items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		ui.Muted("Hint: run `todo ls` to see valid indexes")
		return model.Todo{}, 2
	}
	return items[userIndex-1], 0
}

func doToggle(opt Options, userIndex int) int {
	e, err := setup(opt, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if code := requireAuth(e); code != 0 {
		return code
	}
	t, code := loadIndexed(e, userIndex)
	if code != 0 {
		return code
	}
	next := model.StatusCompleted
	if t.Done() {
		next = model.StatusPending
	}
	if _, err := e.store.Update(context.Background(), t.ID, t.Title, t.Description, next); err != nil {
		ui.Fail("done: " + api.Message(err))
		return 1
	}
	ui.OK("toggled")
	return 0
}

func doRemove(opt Options, userIndex int) int {
	e, err := setup(opt, false)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if code := requireAuth(e); code != 0 {
		return code
	}
	t, code := loadIndexed(e, userIndex)
	if code != 0 {
		return code
	}
	if err := e.store.Delete(context.Background(), t.ID); err != nil {
		ui.Fail("rm: " + api.Message(err))
		return 1
	}
	ui.OK("removed")
	return 0
}
