package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFieldValueSize bounds a single field value written into state.
const MaxFieldValueSize = 4096

var (
	ErrValueTooLarge = errors.New("field value exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("field value contains invalid UTF-8 sequences")
)

// SanitizeValue checks a field value before it is written into state.
// Oversized values are rejected rather than truncated so the state stays
// exactly what the user typed. Control characters other than newline, tab
// and carriage return are stripped.
func SanitizeValue(value string) (string, error) {
	if len(value) > MaxFieldValueSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrValueTooLarge, len(value), MaxFieldValueSize)
	}
	if !utf8.ValidString(value) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(value, unsafeControl) < 0 {
		return value, nil
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
