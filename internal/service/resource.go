package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/golfcompete/golf-server/internal/keycase"
	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/store"
)

// Resources provides generic CRUD access to a single resource (table) of the backing store,
// parameterized by the application-side row type. Feature services compose one Resources instance
// per table and add only their domain query shaping on top.
//
// Every operation is a single request/response round trip; the service keeps no cross-call state
// and never composes multiple calls into an implicit transaction. Store errors never cross the
// boundary raw: they are wrapped into a service Error, logged exactly once and returned through
// the envelope. Returned errors are the ordinary control flow; panics are reserved for caller
// precondition violations such as an empty table name.
type Resources[T any] struct {
	base  *Base
	table string
}

// NewResources creates a new generic resource service bound to a single table
func NewResources[T any](base *Base, table string) *Resources[T] {
	if table == "" {
		panic("service: empty resource table name")
	}
	return &Resources[T]{
		base:  base,
		table: table,
	}
}

// Base exposes the underlying service base (store client, logger, retry helper)
func (resources *Resources[T]) Base() *Base {
	return resources.base
}

// Table returns the name of the table this service is bound to
func (resources *Resources[T]) Table() string {
	return resources.table
}

// FetchByID retrieves a single record by its ID.
// A zero-row result is a failure carrying CodeNotFound.
func (resources *Resources[T]) FetchByID(ctx context.Context, id string) *Response[T] {
	selection := store.Selection{
		Conditions: []store.Condition{store.Eq("id", id)},
		Limit:      1,
	}
	records, _, err := resources.base.Client.Select(ctx, resources.table, selection)
	if err != nil {
		return Fail[T](resources.wrap("fetchById", err))
	}
	if len(records) == 0 {
		return Fail[T](resources.fail("fetchById", CodeNotFound, fmt.Sprintf("no '%s' record with ID '%s' exists", resources.table, id), nil))
	}

	row, decodeErr := fromRecord[T](records[0])
	if decodeErr != nil {
		resources.base.report(resources.table, "fetchById", decodeErr)
		return Fail[T](decodeErr)
	}
	return OK(row)
}

// FetchRecords retrieves one page of records following the given query parameters: the parsed
// filter conditions, the ordering and the offset & limit window, together with the exact total
// amount of matching records.
//
// A store failure does not surface as a plain error response but as an error-shaped paginated
// envelope with zeroed totals, so list callers can render an empty result without branching.
func (resources *Resources[T]) FetchRecords(ctx context.Context, params query.Params) *Paginated[T] {
	selection := store.Selection{
		Conditions: storeConditions(params.Conditions),
		Order:      storeOrdering(params.Ordering),
		Offset:     params.Pagination.Offset(),
		Limit:      params.Pagination.Limit,
	}

	records, total, err := resources.base.Client.Select(ctx, resources.table, selection)
	if err != nil {
		return FailPage[T](resources.wrap("fetchRecords", err), params.Pagination)
	}

	rows := make([]T, 0, len(records))
	for _, record := range records {
		row, decodeErr := fromRecord[T](record)
		if decodeErr != nil {
			resources.base.report(resources.table, "fetchRecords", decodeErr)
			return FailPage[T](decodeErr, params.Pagination)
		}
		rows = append(rows, row)
	}
	return Page(rows, total, params.Pagination)
}

// InsertRecord inserts a single record and returns it as stored
func (resources *Resources[T]) InsertRecord(ctx context.Context, row T) *Response[T] {
	record, encodeErr := toRecord(row)
	if encodeErr != nil {
		resources.base.report(resources.table, "insertRecord", encodeErr)
		return Fail[T](encodeErr)
	}

	inserted, err := resources.base.Client.Insert(ctx, resources.table, []store.Record{record})
	if err != nil {
		return Fail[T](resources.wrap("insertRecord", err))
	}
	if len(inserted) == 0 {
		return Fail[T](resources.fail("insertRecord", CodeQueryError, fmt.Sprintf("the store returned no row for an insert into '%s'", resources.table), nil))
	}

	out, decodeErr := fromRecord[T](inserted[0])
	if decodeErr != nil {
		resources.base.report(resources.table, "insertRecord", decodeErr)
		return Fail[T](decodeErr)
	}
	return OK(out)
}

// InsertBatch inserts multiple records in a single round trip and returns them as stored.
// An empty batch short-circuits to an empty success without touching the store.
func (resources *Resources[T]) InsertBatch(ctx context.Context, rows []T) *Response[[]T] {
	if len(rows) == 0 {
		return OK([]T{})
	}

	records := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		record, encodeErr := toRecord(row)
		if encodeErr != nil {
			resources.base.report(resources.table, "insertBatch", encodeErr)
			return Fail[[]T](encodeErr)
		}
		records = append(records, record)
	}

	inserted, err := resources.base.Client.Insert(ctx, resources.table, records)
	if err != nil {
		return Fail[[]T](resources.wrap("insertBatch", err))
	}

	out := make([]T, 0, len(inserted))
	for _, record := range inserted {
		row, decodeErr := fromRecord[T](record)
		if decodeErr != nil {
			resources.base.report(resources.table, "insertBatch", decodeErr)
			return Fail[[]T](decodeErr)
		}
		out = append(out, row)
	}
	return OK(out)
}

// UpdateRecord applies the given changes to the record with the given ID and returns the updated
// record. The change keys are given in application case and transformed at the store boundary.
func (resources *Resources[T]) UpdateRecord(ctx context.Context, id string, changes store.Record) *Response[T] {
	if len(changes) == 0 {
		return Fail[T](resources.fail("updateRecord", CodeValidation, "no changes given", nil))
	}

	updated, err := resources.base.Client.Update(ctx, resources.table, []store.Condition{store.Eq("id", id)}, keycase.ToStore(changes))
	if err != nil {
		return Fail[T](resources.wrap("updateRecord", err))
	}
	if len(updated) == 0 {
		return Fail[T](resources.fail("updateRecord", CodeNotFound, fmt.Sprintf("no '%s' record with ID '%s' exists", resources.table, id), nil))
	}

	out, decodeErr := fromRecord[T](updated[0])
	if decodeErr != nil {
		resources.base.report(resources.table, "updateRecord", decodeErr)
		return Fail[T](decodeErr)
	}
	return OK(out)
}

// DeleteRecord deletes the record with the given ID.
// Deleting an absent record is not an error; the store reports nothing to distinguish it.
func (resources *Resources[T]) DeleteRecord(ctx context.Context, id string) *Response[bool] {
	if err := resources.base.Client.Delete(ctx, resources.table, []store.Condition{store.Eq("id", id)}); err != nil {
		return Fail[bool](resources.wrap("deleteRecord", err))
	}
	return OK(true)
}

// DeleteWhere deletes all records matching an arbitrary column/value equality predicate.
// It generalizes deletion for cascading-by-foreign-key cleanups.
func (resources *Resources[T]) DeleteWhere(ctx context.Context, column string, value any) *Response[bool] {
	if column == "" {
		return Fail[bool](resources.fail("deleteWhere", CodeValidation, "no predicate column given", nil))
	}
	if err := resources.base.Client.Delete(ctx, resources.table, []store.Condition{store.Eq(keycase.Snake(column), value)}); err != nil {
		return Fail[bool](resources.wrap("deleteWhere", err))
	}
	return OK(true)
}

// Count returns the exact amount of records matching the given filters without transferring any
// row payload. Unlike FetchRecords, filters are equality-only here; the operator DSL is
// deliberately not supported by counting call sites. Nil filter values are dropped.
func (resources *Resources[T]) Count(ctx context.Context, filters map[string]any) *Response[uint64] {
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conditions := make([]store.Condition, 0, len(filters))
	for _, field := range fields {
		if filters[field] == nil {
			continue
		}
		conditions = append(conditions, store.Eq(keycase.Snake(field), filters[field]))
	}

	n, err := resources.base.Client.Count(ctx, resources.table, conditions)
	if err != nil {
		return Fail[uint64](resources.wrap("count", err))
	}
	return OK(n)
}

// RawQuery executes a store-side procedure by name with positional parameters and propagates its
// result rows in application case. The layer does not interpret or validate the procedure;
// callers are responsible for its safety.
func (resources *Resources[T]) RawQuery(ctx context.Context, procedure string, args ...any) *Response[[]store.Record] {
	records, err := resources.base.Client.Call(ctx, procedure, args...)
	if err != nil {
		return Fail[[]store.Record](resources.wrap("rawQuery", err))
	}
	out := make([]store.Record, 0, len(records))
	for _, record := range records {
		out = append(out, keycase.ToApp(record))
	}
	return OK(out)
}

// wrap converts a raw store error into a service error with a sanitized message, reporting it once
func (resources *Resources[T]) wrap(operation string, err error) *Error {
	var constraintErr *store.ConstraintError
	var svcErr *Error
	if errors.As(err, &constraintErr) {
		svcErr = NewError(CodeConstraintViolation, fmt.Sprintf("a store constraint rejected the %s operation on '%s'", operation, resources.table), err)
	} else {
		svcErr = NewError(CodeQueryError, fmt.Sprintf("the %s operation on '%s' failed", operation, resources.table), err)
	}
	resources.base.report(resources.table, operation, svcErr)
	return svcErr
}

func (resources *Resources[T]) fail(operation string, code Code, message string, cause error) *Error {
	svcErr := NewError(code, message, cause)
	resources.base.report(resources.table, operation, svcErr)
	return svcErr
}

// storeConditions maps parsed filter conditions to store case
func storeConditions(conditions []store.Condition) []store.Condition {
	if len(conditions) == 0 {
		return nil
	}
	out := make([]store.Condition, len(conditions))
	for i, condition := range conditions {
		condition.Column = keycase.Snake(condition.Column)
		out[i] = condition
	}
	return out
}

func storeOrdering(ordering *store.Ordering) *store.Ordering {
	if ordering == nil {
		return nil
	}
	return &store.Ordering{
		Column:     keycase.Snake(ordering.Column),
		Descending: ordering.Descending,
	}
}

// toRecord encodes an application row into a store record, transforming its keys to store case
func toRecord[T any](row T) (store.Record, *Error) {
	buf, err := json.Marshal(row)
	if err != nil {
		return nil, NewError(CodeValidation, "the record could not be encoded", err)
	}
	record := store.Record{}
	if err := json.Unmarshal(buf, &record); err != nil {
		return nil, NewError(CodeValidation, "the record is not a key-value document", err)
	}
	return keycase.ToStore(record), nil
}

// fromRecord decodes a store record into an application row, transforming its keys to app case
func fromRecord[T any](record store.Record) (T, *Error) {
	var row T
	buf, err := json.Marshal(keycase.ToApp(record))
	if err != nil {
		return row, NewError(CodeQueryError, "a stored record could not be decoded", err)
	}
	if err := json.Unmarshal(buf, &row); err != nil {
		return row, NewError(CodeQueryError, "a stored record does not match the expected row shape", err)
	}
	return row, nil
}
