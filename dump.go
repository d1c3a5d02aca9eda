package sail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DumpMode selects the textual dump shown next to the view.
type DumpMode string

const (
	// DumpHistory lists every recorded tree.
	DumpHistory DumpMode = "history"
	// DumpLatest shows the current tree and the state.
	DumpLatest DumpMode = "latest"
)

// ParseDumpMode validates a mode name. The empty string selects DumpHistory.
func ParseDumpMode(s string) (DumpMode, error) {
	switch DumpMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DumpHistory:
		return DumpHistory, nil
	case DumpLatest:
		return DumpLatest, nil
	}
	return "", fmt.Errorf("unknown dump mode %q (want %q or %q)", s, DumpHistory, DumpLatest)
}

// Dump renders the playground's structure panel. An empty mode uses the
// playground's configured default.
func (p *Playground) Dump(mode DumpMode) string {
	if mode == "" {
		mode = p.dumpMode
	}
	if mode == DumpLatest {
		var b strings.Builder
		b.WriteString("AST:\n")
		if p.current != nil {
			b.WriteString(indentJSON(p.current.Root))
		} else {
			b.WriteString("null")
		}
		b.WriteString("\n\nState:\n")
		b.WriteString(indentJSON(p.state))
		return b.String()
	}

	entries := p.history.Entries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("[%d]: %s", i, indentJSON(e.Tree))
	}
	return "AST History:\n" + strings.Join(parts, "\n\n")
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
