package domain

import (
	"errors"
	"fmt"
)

// Activity is the sole persisted entity: a task-like record with a title, an
// optional calendar date, free-form notes and a done flag. Date carries no
// timezone semantics and is stored as a plain YYYY-MM-DD string; a nil Date
// is omitted from the JSON document entirely.
type Activity struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Date  *string `json:"date,omitempty"`
	Notes string  `json:"notes"`
	Done  bool    `json:"done"`
}

// Patch is a partial update. Nil pointers mean "leave the field unchanged".
// DateSet distinguishes an absent date from an explicit null: when DateSet is
// true and Date is nil the stored date is cleared.
type Patch struct {
	Title   *string
	Date    *string
	DateSet bool
	Notes   *string
	Done    *bool
}

// ErrNotFound is returned when the referenced activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
