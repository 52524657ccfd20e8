package memdb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// row wraps a record for indexing as go-memdb indexes struct fields, not map keys
type row struct {
	ID   string
	Data store.Record
}

// Procedure represents a Go-side stand-in for a store procedure, callable through Call
type Procedure func(args ...any) ([]store.Record, error)

// Client implements the store.Client interface using hashicorp/go-memdb.
// It backs the test suite and small single-process deployments; filter predicates are evaluated
// in Go against the stored records.
type Client struct {
	db         *memdb.MemDB
	procedures map[string]Procedure
}

var _ store.Client = (*Client)(nil)

// New creates a new in-memory store client holding the given tables
func New(tables ...string) (*Client, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{},
	}
	for _, table := range tables {
		schema.Tables[table] = &memdb.TableSchema{
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		}
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &Client{
		db:         db,
		procedures: map[string]Procedure{},
	}, nil
}

// RegisterProcedure registers a procedure under the given name
func (client *Client) RegisterProcedure(name string, procedure Procedure) {
	client.procedures[name] = procedure
}

// Initialize is a no-op as the in-memory database is already built on construction
func (client *Client) Initialize(_ context.Context) error {
	return nil
}

// Select retrieves the records matching the given selection together with the exact total amount
// of records matching its conditions
func (client *Client) Select(_ context.Context, table string, selection store.Selection) ([]store.Record, uint64, error) {
	txn := client.db.Txn(false)
	matching, err := collect(txn, table, selection.Conditions)
	if err != nil {
		return nil, 0, err
	}
	total := uint64(len(matching))

	if selection.Order != nil {
		order := *selection.Order
		sort.SliceStable(matching, func(i, j int) bool {
			cmp := compareValues(matching[i][order.Column], matching[j][order.Column])
			if order.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if selection.Offset >= total {
		return []store.Record{}, total, nil
	}
	matching = matching[selection.Offset:]
	if selection.Limit > 0 && uint64(len(matching)) > selection.Limit {
		matching = matching[:selection.Limit]
	}

	out := make([]store.Record, 0, len(matching))
	for _, record := range matching {
		out = append(out, copyRecord(record))
	}
	return out, total, nil
}

// Insert inserts the given records and returns them as stored.
// Records without an 'id' key get a generated UUID, mirroring a database column default.
func (client *Client) Insert(_ context.Context, table string, records []store.Record) ([]store.Record, error) {
	txn := client.db.Txn(true)
	defer txn.Abort()

	out := make([]store.Record, 0, len(records))
	for _, record := range records {
		stored := copyRecord(record)
		if stored.ID() == "" {
			stored["id"] = uuid.NewString()
		}

		existing, err := txn.First(table, "id", stored.ID())
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &store.ConstraintError{
				Constraint: table + "_pkey",
				Wrapping:   fmt.Errorf("duplicate ID '%s' in table '%s'", stored.ID(), table),
			}
		}

		if err := txn.Insert(table, &row{ID: stored.ID(), Data: stored}); err != nil {
			return nil, err
		}
		out = append(out, copyRecord(stored))
	}

	txn.Commit()
	return out, nil
}

// Update applies the given changes to all records matching the conditions and returns the updated records
func (client *Client) Update(_ context.Context, table string, conditions []store.Condition, changes store.Record) ([]store.Record, error) {
	txn := client.db.Txn(true)
	defer txn.Abort()

	matching, err := collect(txn, table, conditions)
	if err != nil {
		return nil, err
	}

	out := make([]store.Record, 0, len(matching))
	for _, record := range matching {
		updated := copyRecord(record)
		for key, val := range changes {
			updated[key] = val
		}
		if err := txn.Insert(table, &row{ID: updated.ID(), Data: updated}); err != nil {
			return nil, err
		}
		out = append(out, copyRecord(updated))
	}

	txn.Commit()
	return out, nil
}

// Delete deletes all records matching the given conditions
func (client *Client) Delete(_ context.Context, table string, conditions []store.Condition) error {
	txn := client.db.Txn(true)
	defer txn.Abort()

	matching, err := collect(txn, table, conditions)
	if err != nil {
		return err
	}
	for _, record := range matching {
		if err := txn.Delete(table, &row{ID: record.ID(), Data: record}); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// Count returns the exact amount of records matching the given conditions
func (client *Client) Count(_ context.Context, table string, conditions []store.Condition) (uint64, error) {
	txn := client.db.Txn(false)
	matching, err := collect(txn, table, conditions)
	if err != nil {
		return 0, err
	}
	return uint64(len(matching)), nil
}

// Call executes a registered procedure by name
func (client *Client) Call(_ context.Context, procedure string, args ...any) ([]store.Record, error) {
	impl, ok := client.procedures[procedure]
	if !ok {
		return nil, fmt.Errorf("unknown procedure '%s'", procedure)
	}
	return impl(args...)
}

// Close discards the in-memory database
func (client *Client) Close() {
	client.db = nil
	client.procedures = nil
}

func collect(txn *memdb.Txn, table string, conditions []store.Condition) ([]store.Record, error) {
	it, err := txn.Get(table, "id")
	if err != nil {
		return nil, err
	}

	var matching []store.Record
	for obj := it.Next(); obj != nil; obj = it.Next() {
		record := obj.(*row).Data
		if matchesAll(record, conditions) {
			matching = append(matching, record)
		}
	}
	return matching, nil
}

func matchesAll(record store.Record, conditions []store.Condition) bool {
	for _, condition := range conditions {
		if !matches(record[condition.Column], condition) {
			return false
		}
	}
	return true
}

func matches(value any, condition store.Condition) bool {
	switch condition.Operator {
	case store.OperatorEq:
		return compareValues(value, condition.Value) == 0
	case store.OperatorNeq:
		return compareValues(value, condition.Value) != 0
	case store.OperatorGt:
		return compareValues(value, condition.Value) > 0
	case store.OperatorGte:
		return compareValues(value, condition.Value) >= 0
	case store.OperatorLt:
		return compareValues(value, condition.Value) < 0
	case store.OperatorLte:
		return compareValues(value, condition.Value) <= 0
	case store.OperatorLike:
		return matchesPattern(value, condition.Value, false)
	case store.OperatorILike:
		return matchesPattern(value, condition.Value, true)
	case store.OperatorIn:
		for _, candidate := range asSlice(condition.Value) {
			if compareValues(value, candidate) == 0 {
				return true
			}
		}
		return false
	case store.OperatorContains:
		held := asSlice(value)
		for _, wanted := range asSlice(condition.Value) {
			found := false
			for _, candidate := range held {
				if compareValues(candidate, wanted) == 0 {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// matchesPattern evaluates a SQL LIKE pattern ('%' matches any run, '_' any single character)
func matchesPattern(value, pattern any, foldCase bool) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	pat, ok := pattern.(string)
	if !ok {
		return false
	}
	if foldCase {
		str = strings.ToLower(str)
		pat = strings.ToLower(pat)
	}
	return likeMatch(str, pat)
}

func likeMatch(str, pattern string) bool {
	if pattern == "" {
		return str == ""
	}
	if pattern[0] == '%' {
		for i := 0; i <= len(str); i++ {
			if likeMatch(str[i:], pattern[1:]) {
				return true
			}
		}
		return false
	}
	if str == "" {
		return false
	}
	if pattern[0] == '_' || pattern[0] == str[0] {
		return likeMatch(str[1:], pattern[1:])
	}
	return false
}

func asSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = elem
		}
		return out
	case nil:
		return nil
	default:
		return []any{typed}
	}
}

// compareValues orders two record values, coercing numbers to a common type.
// Unrelated types compare by their string representation to keep ordering total.
func compareValues(a, b any) int {
	aNum, aOK := asFloat(a)
	bNum, bOK := asFloat(b)
	if aOK && bOK {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		default:
			return 0
		}
	}

	aStr, aOK := a.(string)
	bStr, bOK := b.(string)
	if aOK && bOK {
		return strings.Compare(aStr, bStr)
	}

	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	case string:
		// Operands decoded from a query string arrive as strings; treat numeric ones as numbers
		// the way a SQL store casts them to the column type
		parsed, err := strconv.ParseFloat(typed, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func copyRecord(record store.Record) store.Record {
	out := make(store.Record, len(record))
	for key, val := range record {
		out[key] = val
	}
	return out
}
