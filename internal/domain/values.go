package domain

import (
	"fmt"
	"unicode/utf8"
)

// Length limits for ticket content, counted in Unicode code points.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 3000
)

// ValidationError is returned by the value constructors when raw input
// violates a length or emptiness constraint.
// Unwrap yields the matching sentinel (ErrEmptyTitle, ErrTitleTooLong, ...).
type ValidationError struct {
	Reason error  // Sentinel describing the violated rule
	Field  string // "title", "description" or "comment"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func invalid(field string, reason error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Title is the validated title of a ticket.
// The only way to obtain a non-zero Title is NewTitle.
type Title struct {
	value string
}

// NewTitle validates raw and wraps it as a Title.
// raw must be non-empty and at most MaxTitleLength characters.
func NewTitle(raw string) (Title, error) {
	if raw == "" {
		return Title{}, invalid("title", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(raw) > MaxTitleLength {
		return Title{}, invalid("title", ErrTitleTooLong)
	}
	return Title{value: raw}, nil
}

// String returns the wrapped title.
func (t Title) String() string {
	return t.value
}

// IsZero reports whether t was not built by NewTitle.
func (t Title) IsZero() bool {
	return t.value == ""
}

// Description is the validated body of a ticket. It may be empty.
type Description struct {
	value string
}

// NewDescription validates raw and wraps it as a Description.
func NewDescription(raw string) (Description, error) {
	if utf8.RuneCountInString(raw) > MaxDescriptionLength {
		return Description{}, invalid("description", ErrDescriptionTooLong)
	}
	return Description{value: raw}, nil
}

// String returns the wrapped description.
func (d Description) String() string {
	return d.value
}

// IsEmpty reports whether the description has no content.
func (d Description) IsEmpty() bool {
	return d.value == ""
}

// Comment is a non-empty note attached to a ticket.
type Comment struct {
	value string
}

// NewComment validates raw and wraps it as a Comment.
func NewComment(raw string) (Comment, error) {
	if raw == "" {
		return Comment{}, invalid("comment", ErrEmptyComment)
	}
	return Comment{value: raw}, nil
}

// String returns the comment text.
func (c Comment) String() string {
	return c.value
}
