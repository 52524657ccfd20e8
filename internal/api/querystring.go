package api

import (
	"net/url"
	"strings"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/store"
)

// Reserved query-string keys that never become filter conditions
var reservedParams = map[string]struct{}{
	"page":    {},
	"limit":   {},
	"sortBy":  {},
	"sortDir": {},
}

// rawQuery decodes the query string of a request into an unparsed query-parameters object.
// Pagination and ordering use the reserved keys 'page', 'limit', 'sortBy' and 'sortDir'; every
// other key becomes a filter. A bracketed key like 'par[gte]=4' selects a filter operator, a bare
// key like 'state=CA' is shorthand for equality and the 'in' operator splits its operand on commas
// ('state[in]=CA,OR'). Malformed values survive decoding untouched; the query parser is the one
// that falls back to defaults.
func rawQuery(values url.Values) query.Raw {
	raw := query.Raw{
		SortBy:  values.Get("sortBy"),
		SortDir: values.Get("sortDir"),
	}
	if page := values.Get("page"); page != "" {
		raw.Page = page
	}
	if limit := values.Get("limit"); limit != "" {
		raw.Limit = limit
	}

	for key := range values {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		value := values.Get(key)

		field, operator, bracketed := splitFilterKey(key)
		if !bracketed {
			setFilter(&raw, key, value)
			continue
		}
		if operator == string(store.OperatorIn) {
			setFilter(&raw, field, map[string]any{operator: splitList(value)})
			continue
		}
		setFilter(&raw, field, map[string]any{operator: value})
	}
	return raw
}

func setFilter(raw *query.Raw, field string, value any) {
	if raw.Filters == nil {
		raw.Filters = map[string]any{}
	}
	raw.Filters[field] = value
}

// splitFilterKey splits 'field[operator]' into its parts
func splitFilterKey(key string) (field, operator string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

func splitList(value string) []any {
	parts := strings.Split(value, ",")
	list := make([]any, 0, len(parts))
	for _, part := range parts {
		list = append(list, strings.TrimSpace(part))
	}
	return list
}
