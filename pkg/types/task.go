package types

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

// Recognized priority values. Tasks created without a priority
// default to PriorityMedium.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// validPriorities is the set of recognized priority values.
var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Valid reports whether p is one of the recognized priority values.
func (p Priority) Valid() bool {
	return validPriorities[p]
}

// Task represents one actionable todo item.
// Optional fields are nil when absent; they are never empty-string markers.
type Task struct {
	// ID is unique, assigned at creation, and immutable.
	ID string `json:"id"`
	// Title is non-empty after trimming.
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	// CreatedAt is set server-side at creation and immutable.
	CreatedAt time.Time `json:"createdAt"`
	// Due is a calendar date, YYYY-MM-DD, with no time component.
	Due      *string  `json:"due,omitempty"`
	Priority Priority `json:"priority"`
	// Step is free-text detail, present only when the schema supports it.
	Step *string `json:"step,omitempty"`
}

// NewTask is the input for creating a task. ID and CreatedAt are
// generated by the store, never supplied by the caller.
type NewTask struct {
	Title    string   `json:"title"`
	Due      *string  `json:"due,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Step     *string  `json:"step,omitempty"`
}

// Validate checks the create input. Returns ErrTitleRequired if the
// title is empty after trimming, ErrInvalidPriority if a priority is
// supplied but not recognized. An empty priority is valid and defaults
// to Medium at creation.
func (n NewTask) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrTitleRequired
	}
	if n.Priority != "" && !n.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
