package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/model"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := api.NewClient(srv.URL, 0, func() string { return "tok-123" }, nil)
	return c, srv
}

func TestListTodos(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode([]model.Todo{
			{ID: "1", Title: "A", Status: model.StatusPending},
			{ID: "2", Title: "B", Status: model.StatusCompleted},
		})
	})

	todos, err := c.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != "1" || todos[1].Status != model.StatusCompleted {
		t.Errorf("todos = %+v", todos)
	}
}

func TestCreateTodoSendsBodyAndDecodesEnvelope(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Title       string       `json:"title"`
			Description string       `json:"description"`
			Status      model.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Title != "X" || body.Description != "desc" || body.Status != model.StatusPending {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]model.Todo{"todo": {
			ID: "srv-9", Title: body.Title, Description: body.Description, Status: body.Status,
		}})
	})

	created, err := c.CreateTodo(context.Background(), "X", "desc", model.StatusPending)
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if created.ID != "srv-9" {
		t.Errorf("server id not used: %+v", created)
	}
}

func TestUpdateTodoPutsFullFieldSet(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/todos/abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		for _, k := range []string{"title", "description", "status"} {
			if _, ok := body[k]; !ok {
				t.Errorf("full field set missing %q: %v", k, body)
			}
		}
		json.NewEncoder(w).Encode(map[string]model.Todo{"todo": {
			ID: "abc", Title: "T", Description: "", Status: model.StatusCompleted,
		}})
	})

	updated, err := c.UpdateTodo(context.Background(), "abc", "T", "", model.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.ID != "abc" || updated.Status != model.StatusCompleted {
		t.Errorf("updated = %+v", updated)
	}
}

func TestDeleteTodo(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/todos/abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.DeleteTodo(context.Background(), "abc"); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
}

func TestRemoteRejectionMessageVerbatim(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "title required"})
	})

	_, err := c.CreateTodo(context.Background(), "", "", model.StatusPending)
	if err == nil {
		t.Fatal("expected rejection")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Kind != api.KindRemote || apiErr.Status != http.StatusBadRequest {
		t.Errorf("kind/status = %v/%d", apiErr.Kind, apiErr.Status)
	}
	if got := api.Message(err); got != "title required" {
		t.Errorf("message = %q, want server text verbatim", got)
	}
}

func TestRemoteRejectionFallbackMessage(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListTodos(context.Background())
	if err == nil {
		t.Fatal("expected rejection")
	}
	if got := api.Message(err); got != "Failed to fetch todos" {
		t.Errorf("fallback message = %q", got)
	}
}

func TestNotFoundHelper(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Todo not found"})
	})

	err := c.DeleteTodo(context.Background(), "gone")
	if !api.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestNetworkFailureKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listening anymore

	c := api.NewClient(url, 0, nil, nil)
	_, err := c.ListTodos(context.Background())
	if err == nil {
		t.Fatal("expected network failure")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindNetwork {
		t.Fatalf("expected network kind, got %v", err)
	}
	if got := apiErr.UserMessage(); got != "Failed to fetch todos" {
		t.Errorf("user message = %q", got)
	}
}

func TestLogin(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-abc"})
	})

	token, err := c.Login(context.Background(), "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q", token)
	}
}

func TestSignupRejection(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/signup" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	})

	err := c.Signup(context.Background(), "bob", "bob@example.com", "secret1")
	if got := api.Message(err); got != "Email already registered" {
		t.Errorf("message = %q", got)
	}
}
