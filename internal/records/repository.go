package records

import "fmt"

// NotFoundError reports a lookup for a sequence number outside the collection.
type NotFoundError struct {
	Seq int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %d not found", e.Seq)
}

// Repository defines the persistence interface for records.
// Implementations may use SQLite, in-memory storage, or other backends.
type Repository interface {
	// Count returns the total number of records in the collection.
	Count() (int, error)

	// GetRange retrieves records with Seq in the half-open interval
	// [start, end), ordered by Seq ascending.
	GetRange(start, end int) ([]Record, error)

	// GetBySeq retrieves a single record by its sequence number.
	// Returns NotFoundError if no matching record exists.
	GetBySeq(seq int) (Record, error)

	// Insert persists a batch of records.
	Insert(recs []Record) error

	// DeleteAll removes every record from the collection.
	DeleteAll() error

	// Close releases any resources held by the repository.
	Close() error
}
