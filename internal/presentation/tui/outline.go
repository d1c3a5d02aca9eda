package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes terminal renditions of component trees.
// Colours are dropped automatically when w is not a terminal.
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{w: w, out: termenv.NewOutput(w, opts...)}
}

// Error prints an evaluation error the way the view shows it.
func (p *Printer) Error(err *domain.EvaluationError) {
	fmt.Fprintln(p.w, p.out.String(err.Error()).Foreground(p.out.Color("#f87171")).Bold())
}

// System prints a standardized system message.
func (p *Printer) System(format string, args ...any) {
	fmt.Fprintln(p.w, p.out.String(">>> "+fmt.Sprintf(format, args...)).Faint())
}

// Outline prints the tree as an indented form, reading field values from state
// with the same precedence as the HTML view.
func (p *Printer) Outline(root *domain.Node, state domain.StateReader) {
	if root == nil {
		return
	}
	var b strings.Builder
	p.node(&b, root, state, 0)
	fmt.Fprint(p.w, b.String())
}

func (p *Printer) node(b *strings.Builder, n *domain.Node, state domain.StateReader, depth int) {
	indent := strings.Repeat("  ", depth)
	label := domain.Stringify(n.Props["label"])

	switch n.Kind {
	case domain.KindFormLayout:
		fmt.Fprintf(b, "%s%s\n", indent, p.out.String("# "+label).Bold())
		contents, _ := n.Props["contents"].([]any)
		for _, c := range contents {
			if child, ok := domain.AsNode(c); ok {
				p.node(b, child, state, depth+1)
			}
		}
	case domain.KindTextField:
		value := domain.Stringify(n.Props["value"])
		key := domain.Stringify(n.Props["saveInto"])
		if key != "" && state != nil {
			if v, ok := state.Get(key); ok {
				value = v
			}
		}
		fmt.Fprintf(b, "%s%s: [%s]%s\n", indent, label, p.out.String(value).Foreground(p.out.Color("#38bdf8")), p.binding(key))
	case domain.KindDropdownField:
		key := domain.Stringify(n.Props["saveInto"])
		var selected string
		if key != "" && state != nil {
			selected, _ = state.Get(key)
		}
		choices, _ := n.Props["choices"].([]any)
		opts := make([]string, 0, len(choices))
		for _, c := range choices {
			m, _ := c.(map[string]any)
			text := domain.Stringify(m["label"])
			if key != "" && domain.Stringify(m["value"]) == selected {
				text = p.out.String("*" + text + "*").Foreground(p.out.Color("#38bdf8")).String()
			}
			opts = append(opts, text)
		}
		fmt.Fprintf(b, "%s%s: < %s >%s\n", indent, label, strings.Join(opts, " | "), p.binding(key))
	case domain.KindButton:
		fmt.Fprintf(b, "%s%s\n", indent, p.out.String("[ "+label+" ]").Reverse())
	default:
		fmt.Fprintf(b, "%sUnknown: %s\n", indent, n.Kind)
	}
}

func (p *Printer) binding(key string) string {
	if key == "" {
		return ""
	}
	return p.out.String("  -> " + key).Faint().String()
}
