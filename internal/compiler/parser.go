package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/aretw0/sail/pkg/domain"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Parse converts SAIL source text into a Program.
// Failures are returned as *domain.EvaluationError of kind SyntaxError.
// Documents over domain.MaxSourceSize or nested deeper than
// domain.MaxNestingDepth are rejected before parsing, since both the parser
// and the evaluator recurse once per level.
func Parse(source string) (*Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &domain.EvaluationError{Kind: domain.ErrorSyntax, Message: "empty document"}
	}
	if len(source) > domain.MaxSourceSize {
		return nil, &domain.EvaluationError{
			Kind:    domain.ErrorSyntax,
			Message: fmt.Sprintf("document is %d bytes, limit is %d", len(source), domain.MaxSourceSize),
		}
	}
	if err := checkNesting(source); err != nil {
		return nil, err
	}
	prog, err := parser.ParseString("", source)
	if err != nil {
		return nil, syntaxError(err)
	}
	return prog, nil
}

// checkNesting scans brackets outside strings and comments and fails at the
// first one that opens deeper than domain.MaxNestingDepth.
func checkNesting(source string) *domain.EvaluationError {
	depth, line, col := 0, 1, 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		col++
		switch c {
		case '\n':
			line, col = line+1, 0
		case '"', '\'':
			// Unterminated strings are left to the parser.
			for i++; i < len(source) && source[i] != c && source[i] != '\n'; i++ {
				col++
				if source[i] == '\\' {
					i++
					col++
				}
			}
			col++
			if i < len(source) && source[i] == '\n' {
				line, col = line+1, 0
			}
		case '/':
			if i+1 >= len(source) {
				continue
			}
			switch source[i+1] {
			case '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				line, col = line+1, 0
			case '*':
				end := strings.Index(source[i+2:], "*/")
				if end < 0 {
					return nil
				}
				comment := source[i : i+2+end+2]
				if n := strings.Count(comment, "\n"); n > 0 {
					line += n
					col = len(comment) - strings.LastIndexByte(comment, '\n') - 1
				} else {
					col += len(comment) - 1
				}
				i += len(comment) - 1
			}
		case '(', '[', '{':
			depth++
			if depth > domain.MaxNestingDepth {
				return &domain.EvaluationError{
					Kind:    domain.ErrorSyntax,
					Message: fmt.Sprintf("nesting deeper than %d levels", domain.MaxNestingDepth),
					Line:    line,
					Column:  col,
				}
			}
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}

func syntaxError(err error) *domain.EvaluationError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &domain.EvaluationError{
			Kind:    domain.ErrorSyntax,
			Message: perr.Message(),
			Line:    pos.Line,
			Column:  pos.Column,
		}
	}
	return &domain.EvaluationError{Kind: domain.ErrorSyntax, Message: err.Error()}
}

// Unquote decodes a single- or double-quoted string token using JavaScript
// escape rules: \xHH, \uHHHH (surrogate pairs combined), \u{H...}, legacy
// octal and identity escapes such as \' or \d.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || (raw[0] != '"' && raw[0] != '\'') || raw[len(raw)-1] != raw[0] {
		return "", fmt.Errorf("invalid string literal %s", raw)
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	var high rune // pending high surrogate from a \u escape
	flush := func() {
		if high != 0 {
			b.WriteRune(utf8.RuneError)
			high = 0
		}
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			flush()
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("invalid string literal %s: trailing backslash", raw)
		}
		switch e := body[i]; e {
		case 'n':
			flush()
			b.WriteByte('\n')
		case 't':
			flush()
			b.WriteByte('\t')
		case 'r':
			flush()
			b.WriteByte('\r')
		case 'b':
			flush()
			b.WriteByte('\b')
		case 'f':
			flush()
			b.WriteByte('\f')
		case 'v':
			flush()
			b.WriteByte('\v')
		case 'x':
			if i+3 > len(body) {
				return "", fmt.Errorf("invalid string literal %s: bad \\x escape", raw)
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid string literal %s: bad \\x escape", raw)
			}
			flush()
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("invalid string literal %s: %w", raw, err)
			}
			i += n
			switch {
			case r >= 0xD800 && r < 0xDC00:
				flush()
				high = r
			case r >= 0xDC00 && r < 0xE000 && high != 0:
				b.WriteRune(0x10000 + (high-0xD800)<<10 + (r - 0xDC00))
				high = 0
			case r >= 0xD800 && r < 0xE000:
				flush()
				b.WriteRune(utf8.RuneError)
			default:
				flush()
				b.WriteRune(r)
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Legacy octal: up to three digits, at most \377.
			v := rune(e - '0')
			for n := 1; n < 3 && i+1 < len(body); n++ {
				d := body[i+1]
				if d < '0' || d > '7' || v*8+rune(d-'0') > 0377 {
					break
				}
				v = v*8 + rune(d-'0')
				i++
			}
			flush()
			b.WriteRune(v)
		default:
			flush()
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	flush()
	return b.String(), nil
}

// unicodeEscape reads the digits after \u and returns the code point and how
// many bytes were consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, errors.New(`bad \u{} escape`)
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, errors.New(`bad \u{} escape`)
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, errors.New(`bad \u escape`)
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, errors.New(`bad \u escape`)
	}
	return rune(v), 4, nil
}
