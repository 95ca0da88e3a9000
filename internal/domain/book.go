// Package domain contains the core data types for the ReadShelf application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status records whether a book has been read.
// Only the two enumerated values are valid; anything else fails validation.
type Status string

const (
	// StatusRead marks a book as finished.
	StatusRead Status = "read"

	// StatusUnread marks a book as not yet read.
	// It is the default for newly created books.
	StatusUnread Status = "unread"
)

// Valid reports whether s is one of the two known statuses.
// This is the single enum check shared by the create and update paths.
func (s Status) Valid() bool {
	return s == StatusRead || s == StatusUnread
}

// Toggle returns the opposite status: read becomes unread and vice versa.
func (s Status) Toggle() Status {
	if s == StatusRead {
		return StatusUnread
	}
	return StatusRead
}

// Book represents a single entry on the shelf.
// ID and both timestamps are assigned by the database; ID is immutable
// for the lifetime of the record.
type Book struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
