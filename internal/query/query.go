package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/golfcompete/golf-server/internal/store"
)

var (
	// DefaultPage is the pagination page used whenever no valid page is given
	DefaultPage uint64 = 1
	// DefaultLimit is the pagination limit used whenever no valid limit is given
	DefaultLimit uint64 = 10
)

// Raw represents an unparsed query-parameters object.
// The HTTP layer is responsible for decoding a query string into this shape; feature services may
// also construct it programmatically.
type Raw struct {
	Page    any
	Limit   any
	SortBy  string
	SortDir string
	Filters map[string]any
}

// Pagination represents validated pagination parameters (1-indexed page)
type Pagination struct {
	Page  uint64
	Limit uint64
}

// Offset returns the record offset the pagination window starts at.
// This is the single place this arithmetic lives; callers never duplicate it.
func (pagination Pagination) Offset() uint64 {
	return (pagination.Page - 1) * pagination.Limit
}

// Params represents the parsed and validated form of a Raw query-parameters object
type Params struct {
	Pagination Pagination
	Ordering   *store.Ordering
	Conditions []store.Condition
}

// Parse parses a raw query-parameters object into validated pagination, ordering and filter
// conditions. It never fails: missing or malformed fields fall back to their defaults, nil filter
// values are dropped (the way to make a filter optional without branching at the call site) and
// unknown filter operators are silently ignored.
func Parse(raw Raw) Params {
	params := Params{
		Pagination: Pagination{
			Page:  coercePositive(raw.Page, DefaultPage),
			Limit: coercePositive(raw.Limit, DefaultLimit),
		},
	}

	if raw.SortBy != "" {
		// The column is passed through verbatim; validating it against the schema is left to
		// the store, which reports an invalid column as a query error.
		params.Ordering = &store.Ordering{
			Column:     raw.SortBy,
			Descending: strings.EqualFold(raw.SortDir, "desc"),
		}
	}

	params.Conditions = parseFilters(raw.Filters)
	return params
}

func parseFilters(filters map[string]any) []store.Condition {
	if len(filters) == 0 {
		return nil
	}

	// Fields are processed in lexical order to keep the resulting conditions deterministic
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conditions := make([]store.Condition, 0, len(filters))
	for _, field := range fields {
		value := filters[field]
		if value == nil {
			continue
		}

		if object, ok := asObject(value); ok && len(object) == 1 {
			for rawOperator, operand := range object {
				operator := store.Operator(rawOperator)
				if _, known := store.Operators[operator]; !known {
					// Unknown operators are dropped, not rejected
					continue
				}
				if operand == nil {
					continue
				}
				conditions = append(conditions, store.Condition{Column: field, Operator: operator, Value: operand})
			}
			continue
		}

		// Scalars (and any other shape) are shorthand for equality
		conditions = append(conditions, store.Eq(field, value))
	}
	return conditions
}

func asObject(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case store.Record:
		return typed, true
	default:
		return nil, false
	}
}

func coercePositive(value any, def uint64) uint64 {
	switch typed := value.(type) {
	case nil:
		return def
	case int:
		return clampPositive(int64(typed))
	case int64:
		return clampPositive(typed)
	case uint64:
		return clampPositive(int64(typed))
	case float64:
		return clampPositive(int64(typed))
	case string:
		parsed, err := strconv.ParseInt(typed, 10, 64)
		if err != nil {
			return def
		}
		return clampPositive(parsed)
	default:
		return def
	}
}

func clampPositive(value int64) uint64 {
	if value < 1 {
		return 1
	}
	return uint64(value)
}
