package model

import "time"

// Priority levels for a todo item
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DateLayout is the calendar date format used for due dates
const DateLayout = "2006-01-02"

// Todo represents a task owned by exactly one user. UserID is set
// server-side at creation and never changes afterwards.
type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	DueDate     time.Time `gorm:"type:date;not null" json:"-"`
	Priority    string    `gorm:"type:varchar(6);not null" json:"priority"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValidPriority reports whether p is one of the three allowed levels.
func IsValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Overdue reports whether the todo is past due and still open, relative
// to the given date. Completed todos are never overdue.
func (t *Todo) Overdue(today time.Time) bool {
	if t.Completed {
		return false
	}
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return t.DueDate.Before(midnight)
}

// TodoResponse is the serialized form of a Todo, carrying the derived
// overdue flag alongside the persisted fields.
type TodoResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	Overdue     bool   `json:"overdue"`
	CreatedAt   string `json:"created_at"`
}

// ToResponse converts a Todo for rendering, deriving the overdue flag
// against the given date.
func (t *Todo) ToResponse(today time.Time) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(DateLayout),
		Priority:    t.Priority,
		Completed:   t.Completed,
		Overdue:     t.Overdue(today),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
