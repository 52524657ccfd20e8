package store

import (
	"context"
	"fmt"
)

// Record represents a single row of a resource as an opaque key-value document.
// Every record carries a unique 'id' key; ownership of the data stays with the backing store.
type Record map[string]any

// ID returns the 'id' value of the record as a string, or "" if it is absent
func (record Record) ID() string {
	raw, ok := record["id"]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", raw)
}

// Client defines the minimum capability surface the resource access layer requires from a
// tabular store. Any client exposing this shape (or an adapter translating to it) can back the layer.
type Client interface {
	// Initialize initializes the store client (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Select retrieves the records matching the given selection together with the exact total
	// amount of records matching its conditions (ignoring offset & limit)
	Select(ctx context.Context, table string, selection Selection) ([]Record, uint64, error)

	// Insert inserts the given records and returns them as stored
	Insert(ctx context.Context, table string, records []Record) ([]Record, error)

	// Update applies the given changes to all records matching the conditions and returns the
	// updated records
	Update(ctx context.Context, table string, conditions []Condition, changes Record) ([]Record, error)

	// Delete deletes all records matching the given conditions
	Delete(ctx context.Context, table string, conditions []Condition) error

	// Count returns the exact amount of records matching the given conditions without
	// transferring any row payload
	Count(ctx context.Context, table string, conditions []Condition) (uint64, error)

	// Call executes a store-side procedure by name with positional arguments and returns its
	// result rows. The client does not interpret the procedure in any way.
	Call(ctx context.Context, procedure string, args ...any) ([]Record, error)

	// Close closes the store client (i.e. closes a database connection)
	Close()
}

// ConstraintError represents a store error caused by a uniqueness or foreign key rule
type ConstraintError struct {
	Constraint string
	Wrapping   error
}

// Error returns the error string of the underlying error
func (err *ConstraintError) Error() string {
	return err.Wrapping.Error()
}

// Unwrap returns the underlying error
func (err *ConstraintError) Unwrap() error {
	return err.Wrapping
}
