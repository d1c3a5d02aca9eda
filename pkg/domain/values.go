package domain

import (
	"math"
	"strconv"
	"strings"
)

// TypeOf names the type of a document value the way typeof would,
// except that nodes report "object" like any other plain record.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case undefined:
		return "undefined"
	case map[string]any, []any, *Node:
		return "object"
	}
	return "function"
}

// Truthy applies JavaScript truthiness to a document value.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	}
	return true
}

// Stringify converts a document value to display text.
// Absent values (null, undefined) become the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil, undefined:
		return ""
	case string:
		return val
	case float64:
		return FormatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, *Node:
		return "[object Object]"
	}
	return ""
}

// FormatNumber prints integral values without a fraction.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
