package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/longview/internal/records"
)

// recordColumns is the list of columns to select for record queries.
const recordColumns = `seq, id, title, body, level, created_at`

// recordRepository implements records.Repository using SQLite.
type recordRepository struct {
	db *sql.DB
}

// newRecordRepository creates a new recordRepository instance.
func newRecordRepository(db *sql.DB) *recordRepository {
	return &recordRepository{db: db}
}

// Ensure recordRepository implements records.Repository.
var _ records.Repository = (*recordRepository)(nil)

// scanRecord scans a row into a RecordModel.
func scanRecord(scanner interface{ Scan(...any) error }) (RecordModel, error) {
	var model RecordModel
	err := scanner.Scan(
		&model.Seq, &model.ID, &model.Title, &model.Body, &model.Level, &model.CreatedAt,
	)
	return model, err
}

// Count returns the total number of records.
func (r *recordRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// GetRange retrieves records with seq in [start, end), ordered by seq.
func (r *recordRepository) GetRange(start, end int) ([]records.Record, error) {
	if end <= start {
		return nil, nil
	}

	rows, err := r.db.Query(
		`SELECT `+recordColumns+` FROM records WHERE seq >= ? AND seq < ? ORDER BY seq`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("querying record range [%d, %d): %w", start, end, err)
	}
	defer rows.Close()

	out := make([]records.Record, 0, end-start)
	for rows.Next() {
		model, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// GetBySeq retrieves a single record by sequence number.
// Returns records.NotFoundError if no matching record exists.
func (r *recordRepository) GetBySeq(seq int) (records.Record, error) {
	row := r.db.QueryRow(
		`SELECT `+recordColumns+` FROM records WHERE seq = ?`,
		seq,
	)
	model, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Record{}, &records.NotFoundError{Seq: seq}
	}
	if err != nil {
		return records.Record{}, fmt.Errorf("finding record by seq: %w", err)
	}
	return model.toDomain()
}

// Insert persists a batch of records in a single transaction.
func (r *recordRepository) Insert(recs []records.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO records (seq, id, title, body, level, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		model := toRecordModel(rec)
		if _, err := stmt.Exec(
			model.Seq, model.ID, model.Title, model.Body, model.Level, model.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting record %d: %w", rec.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// DeleteAll removes every record.
func (r *recordRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	return nil
}

// Close is a no-op; the owning DB manages the connection lifecycle.
func (r *recordRepository) Close() error {
	return nil
}
