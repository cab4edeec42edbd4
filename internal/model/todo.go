package model

// Status is the completion state of a todo.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParseStatus maps a raw string to a Status, defaulting to pending.
func ParseStatus(s string) Status {
	if s == string(StatusCompleted) {
		return StatusCompleted
	}
	return StatusPending
}

// Todo is the domain model for a single todo record. The id is assigned
// by the server; the client never invents one.
type Todo struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
}

// Done reports whether the todo is completed.
func (t Todo) Done() bool { return t.Status == StatusCompleted }
