package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/model"
	"github.com/VishnuSankarIP/todo-client/internal/session"
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) Title() string {
	box := boxUnchecked
	if i.todo.Done() {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Title)
}

func (i listItem) Description() string {
	if i.todo.Description == "" {
		return "No description"
	}
	return i.todo.Description
}

func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (title + description line).
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	box := mutedStyle.Render(boxUnchecked)
	title := it.todo.Title
	if it.todo.Done() {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	desc := mutedStyle.Render(it.Description())

	fmt.Fprintf(w, "%s%s %s\n%s  %s", prefix, box, title, strings.Repeat(" ", 2), desc)
}

type dashFocus int

const (
	focusList dashFocus = iota
	focusCreate
	focusEdit
)

// Field slots inside the create form and edit modal.
const (
	slotTitle = iota
	slotDescription
	slotStatus
	slotCount
)

// dashboard is the main page: the todo list plus a create form and the
// edit modal. All network work runs as commands; their results come back
// as messages and apply to the store in arrival order.
type dashboard struct {
	deps  Deps
	list  list.Model
	focus dashFocus

	// create form
	createTitle textinput.Model
	createDesc  textarea.Model
	createDone  bool
	createSlot  int
	createErr   string

	// edit modal, driven by the session state machine
	sess      *session.EditSession
	editTitle textinput.Model
	editDesc  textarea.Model
	editSlot  int

	busy          bool
	toast         toast
	width, height int
}

type (
	todosLoadedMsg struct{ err error }
	todoCreatedMsg struct{ err error }
	todoUpdatedMsg struct{ err error }
	todoToggledMsg struct{ err error }
	todoDeletedMsg struct {
		id  string
		err error
	}
	signedOutMsg struct{ err error }
)

func newDashboard(deps Deps) *dashboard {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Your Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	reloadBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	outBind := key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sign out"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, editBind, delBind, toggleBind, reloadBind, outBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	d := &dashboard{
		deps: deps,
		list: l,
		sess: session.New(deps.Store),
	}

	d.createTitle = textinput.New()
	d.createTitle.Prompt = "> "
	d.createTitle.Placeholder = "Enter todo title"
	d.createTitle.CharLimit = 200

	d.createDesc = textarea.New()
	d.createDesc.Placeholder = "Enter todo description"
	d.createDesc.SetHeight(3)

	d.editTitle = textinput.New()
	d.editTitle.Prompt = "> "
	d.editTitle.Placeholder = "Enter todo title"
	d.editTitle.CharLimit = 200

	d.editDesc = textarea.New()
	d.editDesc.Placeholder = "Enter todo description"
	d.editDesc.SetHeight(3)

	return d
}

func (d *dashboard) Init() tea.Cmd { return d.loadCmd() }

// ---------------- commands ----------------

func (d *dashboard) loadCmd() tea.Cmd {
	st := d.deps.Store
	return func() tea.Msg { return todosLoadedMsg{err: st.Load(context.Background())} }
}

func (d *dashboard) createCmd(title, description string, status model.Status) tea.Cmd {
	st := d.deps.Store
	return func() tea.Msg {
		_, err := st.Create(context.Background(), title, description, status)
		return todoCreatedMsg{err: err}
	}
}

func (d *dashboard) confirmCmd() tea.Cmd {
	s := d.sess
	return func() tea.Msg {
		_, err := s.Confirm(context.Background())
		return todoUpdatedMsg{err: err}
	}
}

func (d *dashboard) toggleCmd(t model.Todo) tea.Cmd {
	st := d.deps.Store
	next := model.StatusCompleted
	if t.Done() {
		next = model.StatusPending
	}
	return func() tea.Msg {
		_, err := st.Update(context.Background(), t.ID, t.Title, t.Description, next)
		return todoToggledMsg{err: err}
	}
}

func (d *dashboard) deleteCmd(id string) tea.Cmd {
	st := d.deps.Store
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: st.Delete(context.Background(), id)}
	}
}

func (d *dashboard) signOutCmd() tea.Cmd {
	tokens := d.deps.Tokens
	return func() tea.Msg { return signedOutMsg{err: tokens.Delete()} }
}

// ---------------- update ----------------

func (d *dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		return d, nil

	case clearToastMsg:
		d.toast = toast{}
		return d, nil

	case todosLoadedMsg:
		d.busy = false
		if msg.err != nil {
			return d.showErr(msg.err)
		}
		d.refreshList()
		return d, nil

	case todoCreatedMsg:
		d.busy = false
		if msg.err != nil {
			return d.showErr(msg.err)
		}
		// Reset the form the way the original page clears after create.
		d.createTitle.SetValue("")
		d.createDesc.SetValue("")
		d.createDone = false
		d.createSlot = slotTitle
		d.focus = focusList
		d.refreshList()
		return d.showOK("Todo created")

	case todoUpdatedMsg:
		d.busy = false
		if msg.err != nil {
			// Session stays open with the draft intact; the user can
			// retry or cancel from the modal.
			return d.showErr(msg.err)
		}
		d.focus = focusList
		d.refreshList()
		return d.showOK("Todo updated")

	case todoToggledMsg:
		d.busy = false
		if msg.err != nil {
			return d.showErr(msg.err)
		}
		d.refreshList()
		return d, nil

	case todoDeletedMsg:
		d.busy = false
		if d.sess.Phase() == session.Editing && d.sess.TargetID() == msg.id {
			// The record under edit is gone; close the orphaned session.
			d.sess.Cancel()
			if d.focus == focusEdit {
				d.focus = focusList
			}
		}
		if msg.err != nil {
			if api.IsNotFound(msg.err) {
				// Repeated delete of the same id; already gone.
				d.refreshList()
				return d, nil
			}
			return d.showErr(msg.err)
		}
		d.refreshList()
		return d.showOK("Todo deleted")

	case signedOutMsg:
		if msg.err != nil {
			return d.showErr(msg.err)
		}
		return d, navigateTo(PageLogin)
	}

	switch d.focus {
	case focusCreate:
		return d.updateCreate(msg)
	case focusEdit:
		return d.updateEdit(msg)
	}
	return d.updateList(msg)
}

func (d *dashboard) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !d.list.SettingFilter() {
		switch keyMsg.String() {
		case "q", "esc", "ctrl+c":
			return d, tea.Quit

		case "a":
			d.focus = focusCreate
			d.createSlot = slotTitle
			d.createErr = ""
			d.createDesc.Blur()
			return d, d.createTitle.Focus()

		case "e":
			if t, ok := d.selected(); ok {
				d.sess.Open(t)
				d.editTitle.SetValue(t.Title)
				d.editTitle.CursorEnd()
				d.editDesc.SetValue(t.Description)
				d.editSlot = slotTitle
				d.editDesc.Blur()
				d.focus = focusEdit
				return d, d.editTitle.Focus()
			}
			return d, nil

		case "d":
			if t, ok := d.selected(); ok {
				d.busy = true
				return d, d.deleteCmd(t.ID)
			}
			return d, nil

		case " ":
			if t, ok := d.selected(); ok {
				d.busy = true
				return d, d.toggleCmd(t)
			}
			return d, nil

		case "r":
			d.busy = true
			return d, d.loadCmd()

		case "ctrl+s":
			return d, d.signOutCmd()
		}
	}

	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return d, cmd
}

func (d *dashboard) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			d.focus = focusList
			d.createErr = ""
			d.blurCreate()
			return d, nil

		case "tab":
			return d, d.focusCreateSlot((d.createSlot + 1) % slotCount)

		case "shift+tab":
			return d, d.focusCreateSlot((d.createSlot + slotCount - 1) % slotCount)

		case " ":
			if d.createSlot == slotStatus {
				d.createDone = !d.createDone
				return d, nil
			}

		case "enter":
			if d.createSlot == slotDescription {
				break // newline inside the textarea
			}
			if d.busy {
				return d, nil
			}
			title := strings.TrimSpace(d.createTitle.Value())
			if title == "" {
				// Required-field gate; the store itself does not re-validate.
				d.createErr = "Title cannot be empty"
				return d, nil
			}
			d.createErr = ""
			status := model.StatusPending
			if d.createDone {
				status = model.StatusCompleted
			}
			d.busy = true
			return d, d.createCmd(title, d.createDesc.Value(), status)
		}
	}

	var cmd tea.Cmd
	switch d.createSlot {
	case slotTitle:
		d.createTitle, cmd = d.createTitle.Update(msg)
	case slotDescription:
		d.createDesc, cmd = d.createDesc.Update(msg)
	}
	return d, cmd
}

func (d *dashboard) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			d.sess.Cancel()
			d.focus = focusList
			d.blurEdit()
			return d, nil

		case "tab":
			return d, d.focusEditSlot((d.editSlot + 1) % slotCount)

		case "shift+tab":
			return d, d.focusEditSlot((d.editSlot + slotCount - 1) % slotCount)

		case " ":
			if d.editSlot == slotStatus {
				next := model.StatusCompleted
				if d.sess.Draft().Status == model.StatusCompleted {
					next = model.StatusPending
				}
				d.sess.EditField(session.FieldStatus, string(next))
				return d, nil
			}

		case "enter":
			if d.editSlot == slotDescription {
				break
			}
			if d.busy {
				return d, nil
			}
			d.busy = true
			return d, d.confirmCmd()
		}
	}

	var cmd tea.Cmd
	switch d.editSlot {
	case slotTitle:
		d.editTitle, cmd = d.editTitle.Update(msg)
		d.sess.EditField(session.FieldTitle, d.editTitle.Value())
	case slotDescription:
		d.editDesc, cmd = d.editDesc.Update(msg)
		d.sess.EditField(session.FieldDescription, d.editDesc.Value())
	}
	return d, cmd
}

// ---------------- helpers ----------------

func (d *dashboard) selected() (model.Todo, bool) {
	it, ok := d.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (d *dashboard) refreshList() {
	items := d.deps.Store.Items()
	li := make([]list.Item, 0, len(items))
	done := 0
	for _, t := range items {
		if t.Done() {
			done++
		}
		li = append(li, listItem{todo: t})
	}
	d.list.SetItems(li)
	d.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Your Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(items)-done,
		accentStyle.Render("Total"), len(items),
	)
}

func (d *dashboard) focusCreateSlot(slot int) tea.Cmd {
	d.createSlot = slot
	d.createTitle.Blur()
	d.createDesc.Blur()
	switch slot {
	case slotTitle:
		return d.createTitle.Focus()
	case slotDescription:
		return d.createDesc.Focus()
	}
	return nil
}

func (d *dashboard) focusEditSlot(slot int) tea.Cmd {
	d.editSlot = slot
	d.editTitle.Blur()
	d.editDesc.Blur()
	switch slot {
	case slotTitle:
		return d.editTitle.Focus()
	case slotDescription:
		return d.editDesc.Focus()
	}
	return nil
}

func (d *dashboard) blurCreate() {
	d.createTitle.Blur()
	d.createDesc.Blur()
}

func (d *dashboard) blurEdit() {
	d.editTitle.Blur()
	d.editDesc.Blur()
}

func (d *dashboard) showErr(err error) (tea.Model, tea.Cmd) {
	d.toast = toast{text: api.Message(err), isErr: true}
	if d.deps.Log != nil {
		d.deps.Log.Error("operation failed", "err", err)
	}
	return d, expireToast()
}

func (d *dashboard) showOK(text string) (tea.Model, tea.Cmd) {
	d.toast = toast{text: text}
	return d, expireToast()
}

// ---------------- view ----------------

func (d *dashboard) View() string {
	w, h := d.width, d.height
	if w == 0 {
		w, h = 80, 24
	}

	listHeight := h - 4
	if d.focus != focusList {
		listHeight = h - 14
	}
	if listHeight < 4 {
		listHeight = 4
	}
	d.list.SetSize(w-4, listHeight)

	content := d.list.View()
	switch d.focus {
	case focusCreate:
		content += "\n" + modalString(d.createView())
	case focusEdit:
		content += "\n" + modalString(d.editView())
	}
	if t := d.toast.view(); t != "" {
		content += "\n" + t
	} else if d.busy {
		content += "\n" + mutedStyle.Render("...")
	}
	return panelString(content)
}

func (d *dashboard) createView() string {
	return d.formView("Create Todo", d.createTitle.View(), d.createDesc.View(), d.createDone, d.createErr,
		"enter create • tab next field • space toggle status • esc cancel")
}

func (d *dashboard) editView() string {
	return d.formView("Update Todo", d.editTitle.View(), d.editDesc.View(),
		d.sess.Draft().Status == model.StatusCompleted, "",
		"enter update • tab next field • space toggle status • esc cancel")
}

func (d *dashboard) formView(heading, titleView, descView string, completed bool, errLine, help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(titleView)
	b.WriteString("\n")
	if errLine != "" {
		b.WriteString(errorStyle.Render(errLine))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(descView)
	b.WriteString("\n")
	box := boxUnchecked
	if completed {
		box = boxChecked
	}
	b.WriteString(fmt.Sprintf("%s %s", box, labelStyle.Render("Completed")))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
