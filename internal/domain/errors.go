package domain

import "errors"

// Domain errors.
var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title cannot be longer than 50 characters")
	ErrDescriptionTooLong = errors.New("description cannot be longer than 3000 characters")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrCorruptSnapshot    = errors.New("corrupt ticket store snapshot")
	ErrNotGitRepository   = errors.New("not a git repository (or any of the parent directories)")
	ErrConfigExists       = errors.New("config file already exists")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnknownBackend     = errors.New("unknown store backend")
	ErrUnknownFormat      = errors.New("unknown snapshot format")
	ErrStoreNotEmpty      = errors.New("ticket store is not empty")
)
