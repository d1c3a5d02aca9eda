package runtime

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/sail/pkg/domain"
)

// Builtin is a function value callable from SAIL source.
type Builtin struct {
	Name string
	Call func(args []any) any
}

func isAbsent(v any) bool {
	return v == nil || v == domain.Undefined
}

func truthy(v any) bool {
	return domain.Truthy(v)
}

func toNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float64:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

// strictEqual implements "===": no conversions, reference identity for objects.
func strictEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case *domain.Node:
		y, ok := b.(*domain.Node)
		return ok && x == y
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x == y
	case map[string]any:
		y, ok := b.(map[string]any)
		return ok && reflect.ValueOf(x).Pointer() == reflect.ValueOf(y).Pointer()
	case []any:
		y, ok := b.([]any)
		return ok && len(x) > 0 && len(x) == len(y) && &x[0] == &y[0]
	}
	return a == domain.Undefined && b == domain.Undefined
}

// looseEqual implements "==" for primitive operands. Objects only compare
// by identity; they are never converted to primitives.
func looseEqual(a, b any) bool {
	if isAbsent(a) || isAbsent(b) {
		return isAbsent(a) && isAbsent(b)
	}
	if domain.TypeOf(a) == domain.TypeOf(b) {
		return strictEqual(a, b)
	}
	if _, ok := a.(bool); ok {
		return looseEqual(toNumber(a), b)
	}
	if _, ok := b.(bool); ok {
		return looseEqual(a, toNumber(b))
	}
	_, aNum := a.(float64)
	_, bNum := b.(float64)
	_, aStr := a.(string)
	_, bStr := b.(string)
	if (aNum && bStr) || (aStr && bNum) {
		return toNumber(a) == toNumber(b)
	}
	return false
}

// propertyKey converts an index value to the key used for lookups.
func propertyKey(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return domain.FormatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	}
	if v == domain.Undefined {
		return "undefined"
	}
	return domain.Stringify(v)
}

// arrayIndex parses a canonical non-negative integer key.
func arrayIndex(key string, length int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= length || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

// property reads key from obj. The caller has already rejected null and undefined.
func property(obj any, key string) any {
	switch val := obj.(type) {
	case map[string]any:
		if v, ok := val[key]; ok {
			return v
		}
	case []any:
		if key == "length" {
			return float64(len(val))
		}
		if i, ok := arrayIndex(key, len(val)); ok {
			return val[i]
		}
	case string:
		runes := []rune(val)
		if key == "length" {
			return float64(len(runes))
		}
		if i, ok := arrayIndex(key, len(runes)); ok {
			return string(runes[i])
		}
	case *domain.Node:
		switch key {
		case "type":
			return string(val.Kind)
		case "props":
			if val.Props == nil {
				return map[string]any{}
			}
			return val.Props
		}
	case *Builtin:
		if key == "name" {
			return val.Name
		}
	}
	return domain.Undefined
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	if _, ok := v.(*Builtin); ok {
		return "function"
	}
	return domain.TypeOf(v)
}
