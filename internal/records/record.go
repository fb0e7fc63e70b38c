// Package records provides the record collection longview browses.
package records

import (
	"time"

	"github.com/google/uuid"
)

// Level categorizes a record for styling and filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// IsValid returns true if the level is a recognized record level.
func (l Level) IsValid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

// Record is one entry in the browsed collection. Seq is the record's stable
// zero-based position; the viewer addresses records by Seq, never by ID.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Seq       int       `json:"seq"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a record with a fresh ID and the current time.
func New(seq int, title, body string, level Level) Record {
	if !level.IsValid() {
		level = LevelInfo
	}
	return Record{
		ID:        uuid.New(),
		Seq:       seq,
		Title:     title,
		Body:      body,
		Level:     level,
		CreatedAt: time.Now(),
	}
}
