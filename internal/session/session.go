// Package session tracks the single in-progress edit of a todo.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/VishnuSankarIP/todo-client/internal/model"
)

// ErrNotEditing is returned by Confirm when no edit is open.
var ErrNotEditing = errors.New("no edit in progress")

// Updater is where a confirmed draft goes; *store.TodoListStore satisfies it.
type Updater interface {
	Update(ctx context.Context, id, title, description string, status model.Status) (model.Todo, error)
}

// Phase is the session state.
type Phase int

const (
	Closed Phase = iota
	Editing
)

// Field names a draft field for EditField.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldStatus
)

// Draft is the working copy of the record under edit. It is a snapshot:
// changes to the underlying record while the session is open are not
// reflected here.
type Draft struct {
	Title       string
	Description string
	Status      model.Status
}

// EditSession is a two-state machine guarding at most one in-place edit.
//
// Callers that delete a record should close any session targeting it;
// the session itself does not watch the store, and a Confirm against a
// deleted id surfaces the server's not-found rejection while staying
// open so the user can cancel or retry.
//
// Methods are safe for concurrent use. Confirm runs its network call
// without holding the lock, so keystrokes arriving while an update is
// in flight keep landing on the draft instead of blocking; the update
// itself carries the snapshot taken when Confirm started.
type EditSession struct {
	updater Updater

	mu       sync.Mutex
	phase    Phase
	targetID string
	draft    Draft
}

// New creates a session in the Closed phase.
func New(u Updater) *EditSession {
	return &EditSession{updater: u}
}

// Phase returns the current phase.
func (s *EditSession) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// TargetID returns the id under edit; meaningful only while Editing.
func (s *EditSession) TargetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetID
}

// Draft returns the current working copy.
func (s *EditSession) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Open starts editing t, snapshotting its fields into the draft.
func (s *EditSession) Open(t model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Editing
	s.targetID = t.ID
	s.draft = Draft{Title: t.Title, Description: t.Description, Status: t.Status}
}

// EditField mutates one draft field. Stray events after close are
// swallowed: when the session is Closed this does nothing.
func (s *EditSession) EditField(f Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Editing {
		return
	}
	switch f {
	case FieldTitle:
		s.draft.Title = value
	case FieldDescription:
		s.draft.Description = value
	case FieldStatus:
		s.draft.Status = model.ParseStatus(value)
	}
}

// Confirm pushes the draft through the updater. On success the session
// closes; on failure it stays in Editing with the draft intact so the
// user can retry or cancel.
func (s *EditSession) Confirm(ctx context.Context) (model.Todo, error) {
	s.mu.Lock()
	if s.phase != Editing {
		s.mu.Unlock()
		return model.Todo{}, ErrNotEditing
	}
	id, draft := s.targetID, s.draft
	s.mu.Unlock()

	updated, err := s.updater.Update(ctx, id, draft.Title, draft.Description, draft.Status)
	if err != nil {
		return model.Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have been cancelled and reopened on another record
	// while the update was in flight; only the matching edit closes.
	if s.phase == Editing && s.targetID == id {
		s.reset()
	}
	return updated, nil
}

// Cancel discards the draft and closes the session without updating.
func (s *EditSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *EditSession) reset() {
	s.phase = Closed
	s.targetID = ""
	s.draft = Draft{}
}
