// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/model"
)

// NotFoundErr builds the remote rejection a server sends for an unknown id.
func NotFoundErr(op string) *api.Error {
	return &api.Error{Kind: api.KindRemote, Op: op, Status: http.StatusNotFound, Message: "Todo not found"}
}

// UpdateCall records one UpdateTodo invocation.
type UpdateCall struct {
	ID          string
	Title       string
	Description string
	Status      model.Status
}

// FakeService is an in-memory implementation of api.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int

	// Error injection: when set, the corresponding method fails without
	// touching state.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	SignupErr error
	LoginErr  error

	// LoginToken is returned by Login on success.
	LoginToken string

	// Call records.
	UpdateCalls []UpdateCall
	DeleteCalls []string
}

// NewFakeService creates an empty fake backend.
func NewFakeService() *FakeService {
	return &FakeService{LoginToken: "fake-token"}
}

// Seed adds a todo directly to the backend, returning its id.
func (f *FakeService) Seed(title, description string, status model.Status) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("id-%d", f.nextID)
	f.todos = append(f.todos, model.Todo{ID: id, Title: title, Description: description, Status: status})
	return id
}

// Todos returns a copy of the backend state.
func (f *FakeService) Todos() []model.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Todo, len(f.todos))
	copy(out, f.todos)
	return out
}

// ListTodos implements api.Service.
func (f *FakeService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Todos(), nil
}

// CreateTodo implements api.Service. Empty titles are rejected the way
// the real server rejects them.
func (f *FakeService) CreateTodo(ctx context.Context, title, description string, status model.Status) (model.Todo, error) {
	if f.CreateErr != nil {
		return model.Todo{}, f.CreateErr
	}
	if title == "" {
		return model.Todo{}, &api.Error{Kind: api.KindRemote, Op: "create todo", Status: http.StatusBadRequest, Message: "title required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := model.Todo{ID: fmt.Sprintf("id-%d", f.nextID), Title: title, Description: description, Status: status}
	f.todos = append(f.todos, t)
	return t, nil
}

// UpdateTodo implements api.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, id, title, description string, status model.Status) (model.Todo, error) {
	f.mu.Lock()
	f.UpdateCalls = append(f.UpdateCalls, UpdateCall{ID: id, Title: title, Description: description, Status: status})
	f.mu.Unlock()
	if f.UpdateErr != nil {
		return model.Todo{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos[i] = model.Todo{ID: id, Title: title, Description: description, Status: status}
			return f.todos[i], nil
		}
	}
	return model.Todo{}, NotFoundErr("update todo")
}

// DeleteTodo implements api.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, id string) error {
	f.mu.Lock()
	f.DeleteCalls = append(f.DeleteCalls, id)
	f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return NotFoundErr("delete todo")
}

// Signup implements api.Service.
func (f *FakeService) Signup(ctx context.Context, username, email, password string) error {
	return f.SignupErr
}

// Login implements api.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	return f.LoginToken, nil
}
