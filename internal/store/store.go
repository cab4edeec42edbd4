// Package store owns the in-memory todo collection and keeps it
// consistent with the remote service.
package store

import (
	"context"
	"sync"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/model"
)

// TodoListStore is the single source of truth for the visible todo list.
// Every mutation is a two-phase commit: the remote service goes first,
// and the local collection changes only after the server confirms, using
// the server's returned representation. A failed call leaves the
// collection exactly as it was.
//
// Responses apply in arrival order, which may differ from issue order
// when the UI fires overlapping requests; that weak ordering is accepted
// here, the mutex only keeps concurrent applies from tearing the slice.
type TodoListStore struct {
	mu    sync.Mutex
	svc   api.Service
	items []model.Todo
}

// New creates an empty store backed by svc.
func New(svc api.Service) *TodoListStore {
	return &TodoListStore{svc: svc}
}

// Items returns a copy of the collection in display order.
func (s *TodoListStore) Items() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of todos currently held.
func (s *TodoListStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the todo with the given id, if present.
func (s *TodoListStore) Get(id string) (model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Load fetches the full collection and replaces the local one wholesale.
// On failure the previous collection is kept, not cleared.
func (s *TodoListStore) Load(ctx context.Context) error {
	todos, err := s.svc.ListTodos(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = todos
	return nil
}

// Create sends a new todo to the server and appends the confirmed record,
// with its assigned id, to the end of the collection. Title emptiness is
// the server's to reject; the rejection comes back as the error.
func (s *TodoListStore) Create(ctx context.Context, title, description string, status model.Status) (model.Todo, error) {
	created, err := s.svc.CreateTodo(ctx, title, description, status)
	if err != nil {
		return model.Todo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, created)
	return created, nil
}

// Update sends the full field set for id and, on confirmation, replaces
// the matching record in place, preserving its position.
func (s *TodoListStore) Update(ctx context.Context, id, title, description string, status model.Status) (model.Todo, error) {
	updated, err := s.svc.UpdateTodo(ctx, id, title, description, status)
	if err != nil {
		return model.Todo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes the todo with the given id once the server confirms.
func (s *TodoListStore) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTodo(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}
