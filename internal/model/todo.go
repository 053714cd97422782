package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Todo is one task record held by the remote collection.
// ID is assigned by the service and never changes.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

// Draft carries the three mutable fields sent on create and update.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrDueDateRequired = errors.New("due date is required")
	ErrBadDueDate      = errors.New("due date must be YYYY-MM-DD")
)

// DateLayout is the calendar-date form used by inputs and display.
const DateLayout = "2006-01-02"

// Validate applies required-field semantics only.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if d.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	return nil
}

// MarshalJSON sends due_date as a UTC ISO-8601 instant with millisecond
// precision, the shape the collection service stores.
func (d Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
	}{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     FormatInstant(d.DueDate),
	})
}

// Draft returns the editable fields of t.
func (t Todo) Draft() Draft {
	return Draft{Title: t.Title, Description: t.Description, DueDate: t.DueDate}
}

// ParseDueDate turns a calendar date into local midnight of that day.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrDueDateRequired
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrBadDueDate
	}
	return t, nil
}

// FormatDueDate truncates an instant to its local calendar date.
func FormatDueDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(DateLayout)
}

// FormatInstant renders t the way the service expects due_date on the wire.
func FormatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
