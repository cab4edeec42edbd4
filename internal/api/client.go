package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VishnuSankarIP/todo-client/internal/model"
)

// DefaultTimeout bounds a single request when the config gives none.
const DefaultTimeout = 10 * time.Second

// Client implements Service against the todo REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   func() string // returns the current credential, "" when logged out
	log     *log.Logger
}

// NewClient creates a client for the API rooted at baseURL. The token
// function is consulted on every request so a fresh login is picked up
// without rebuilding the client.
func NewClient(baseURL string, timeout time.Duration, token func() string, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		token:   token,
		log:     logger,
	}
}

type todoEnvelope struct {
	Todo model.Todo `json:"todo"`
}

type todoBody struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
}

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReply struct {
	Token string `json:"token"`
}

// remoteReply is the failure body shape; the message is shown verbatim.
type remoteReply struct {
	Message string `json:"message"`
}

// ListTodos implements Service.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos, "fetch todos"); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo implements Service.
func (c *Client) CreateTodo(ctx context.Context, title, description string, status model.Status) (model.Todo, error) {
	var env todoEnvelope
	body := todoBody{Title: title, Description: description, Status: status}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &env, "create todo"); err != nil {
		return model.Todo{}, err
	}
	return env.Todo, nil
}

// UpdateTodo implements Service.
func (c *Client) UpdateTodo(ctx context.Context, id, title, description string, status model.Status) (model.Todo, error) {
	var env todoEnvelope
	body := todoBody{Title: title, Description: description, Status: status}
	if err := c.do(ctx, http.MethodPut, "/todos/"+id, body, &env, "update todo"); err != nil {
		return model.Todo{}, err
	}
	return env.Todo, nil
}

// DeleteTodo implements Service.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil, "delete todo")
}

// Signup implements Service.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	body := signupBody{Username: username, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/users/signup", body, nil, "sign up")
}

// Login implements Service.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var reply loginReply
	body := loginBody{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &reply, "log in"); err != nil {
		return "", err
	}
	if reply.Token == "" {
		return "", &Error{Kind: KindRemote, Op: "log in", Message: "server returned no token"}
	}
	return reply.Token, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Transport problems come back as KindNetwork, non-2xx responses as
// KindRemote with the server's message extracted.
func (c *Client) do(ctx context.Context, method, path string, in, out any, op string) error {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "err", err)
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		"method", method, "path", path,
		"status", resp.StatusCode, "dur", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    KindRemote,
			Op:      op,
			Status:  resp.StatusCode,
			Message: remoteMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindRemote, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// remoteMessage pulls the human-readable message out of a failure body.
// Bodies that aren't the expected JSON shape yield "".
func remoteMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var reply remoteReply
	if err := json.Unmarshal(b, &reply); err != nil {
		return ""
	}
	return strings.TrimSpace(reply.Message)
}
