// Package api defines the backend-agnostic interface to the remote todo
// service and its HTTP implementation.
package api

import (
	"context"

	"github.com/VishnuSankarIP/todo-client/internal/model"
)

// Service is the remote todo backend. Every network call goes through
// this interface; the store and UI never touch the transport directly.
type Service interface {
	// ListTodos returns all todos for the authenticated user, in server order.
	ListTodos(ctx context.Context) ([]model.Todo, error)

	// CreateTodo creates a todo and returns the server's representation,
	// including the assigned id.
	CreateTodo(ctx context.Context, title, description string, status model.Status) (model.Todo, error)

	// UpdateTodo replaces the full field set of the todo with the given id
	// and returns the server's representation.
	UpdateTodo(ctx context.Context, id, title, description string, status model.Status) (model.Todo, error)

	// DeleteTodo removes the todo with the given id.
	DeleteTodo(ctx context.Context, id string) error

	// Signup registers a new account.
	Signup(ctx context.Context, username, email, password string) error

	// Login exchanges credentials for an auth token.
	Login(ctx context.Context, email, password string) (string, error)
}
