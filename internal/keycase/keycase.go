package keycase

import (
	"unicode"

	"github.com/golfcompete/golf-server/internal/store"
)

// ToStore converts every key of the given record from camelCase to snake_case.
// Nested records are converted recursively and arrays are mapped element-wise.
// The transformation is total: it never fails, non-record leaf values pass through unchanged and
// keys that already are snake_case stay untouched.
func ToStore(record store.Record) store.Record {
	return convertRecord(record, Snake)
}

// ToApp converts every key of the given record from snake_case to camelCase.
// It is the inverse of ToStore and shares its totality and idempotence guarantees.
func ToApp(record store.Record) store.Record {
	return convertRecord(record, Camel)
}

// Snake converts a single camelCase key to snake_case.
// Keys that already are snake_case are returned unchanged.
func Snake(key string) string {
	runes := []rune(key)
	out := make([]rune, 0, len(runes)+4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				out = append(out, '_')
			}
			out = append(out, unicode.ToLower(r))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Camel converts a single snake_case key to camelCase.
// Keys that already are camelCase are returned unchanged.
func Camel(key string) string {
	runes := []rune(key)
	out := make([]rune, 0, len(runes))
	upperNext := false
	for i, r := range runes {
		if r == '_' && i > 0 && i < len(runes)-1 {
			upperNext = true
			continue
		}
		if upperNext {
			out = append(out, unicode.ToUpper(r))
			upperNext = false
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func convertRecord(record store.Record, convert func(string) string) store.Record {
	if record == nil {
		return nil
	}
	out := make(store.Record, len(record))
	for key, val := range record {
		out[convert(key)] = convertValue(val, convert)
	}
	return out
}

func convertValue(val any, convert func(string) string) any {
	switch typed := val.(type) {
	case store.Record:
		return convertRecord(typed, convert)
	case map[string]any:
		return convertRecord(typed, convert)
	case []store.Record:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = convertRecord(elem, convert)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = convertValue(elem, convert)
		}
		return out
	default:
		return val
	}
}
