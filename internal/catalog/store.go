package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is a single back-office entry.
type Record struct {
	ID        int64
	Kind      Kind
	Values    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value returns the named value, or "".
func (r Record) Value(name string) string {
	return r.Values[name]
}

// Store persists records for the lifetime of the process.
type Store interface {
	List(ctx context.Context, kind Kind) ([]Record, error)
	Get(ctx context.Context, kind Kind, id int64) (Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, kind Kind, id int64) error
	Count(ctx context.Context, kind Kind) (int, error)
	// Replace discards every record and stores recs instead.
	Replace(ctx context.Context, recs []Record) error
}
