package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/longview/internal/records"
)

// RecordModel represents the database row for the records table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type RecordModel struct {
	Seq       int64
	ID        string
	Title     string
	Body      string
	Level     string
	CreatedAt int64 // Unix timestamp
}

// toRecordModel converts a records.Record to a database RecordModel.
func toRecordModel(r records.Record) RecordModel {
	return RecordModel{
		Seq:       int64(r.Seq),
		ID:        r.ID.String(),
		Title:     r.Title,
		Body:      r.Body,
		Level:     string(r.Level),
		CreatedAt: r.CreatedAt.Unix(),
	}
}

// toDomain converts a database RecordModel to a records.Record.
func (m RecordModel) toDomain() (records.Record, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return records.Record{}, fmt.Errorf("parsing record id %q: %w", m.ID, err)
	}
	return records.Record{
		ID:        id,
		Seq:       int(m.Seq),
		Title:     m.Title,
		Body:      m.Body,
		Level:     records.Level(m.Level),
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}, nil
}
