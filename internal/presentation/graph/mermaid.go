package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/sail/pkg/domain"
)

// GraphOverlay contains field state to visualize on the tree.
type GraphOverlay struct {
	// State marks bound fields whose key has a value.
	State domain.StateReader
}

// GenerateMermaid produces a Mermaid flowchart of a component tree.
// It applies semantic styling:
// - formLayout: [[Subroutine]]
// - textField: [/Parallelogram/] (input)
// - dropdownField: {{Hexagon}}
// - buttonWidget: ([Stadium])
// - Default: [Rectangle]
// Nodes are numbered in depth-first order (n0 is the root).
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	var filled []string
	next := 0
	var walk func(n *domain.Node) string
	walk = func(n *domain.Node) string {
		id := fmt.Sprintf("n%d", next)
		next++

		opener, closer := "[", "]"
		switch n.Kind {
		case domain.KindFormLayout:
			opener, closer = "[[", "]]"
		case domain.KindTextField:
			opener, closer = "[/", "/]"
		case domain.KindDropdownField:
			opener, closer = "{{", "}}"
		case domain.KindButton:
			opener, closer = "([", "])"
		}

		label := string(n.Kind)
		if text := domain.Stringify(n.Props[domain.PropLabel]); text != "" {
			label = fmt.Sprintf("%s: %s", n.Kind, text)
		}
		key := domain.Stringify(n.Props[domain.PropSaveInto])
		if key != "" {
			label += " <br/> -> " + key
			if overlay != nil && overlay.State != nil {
				if _, ok := overlay.State.Get(key); ok {
					filled = append(filled, id)
				}
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, sanitizeLabel(label), closer)

		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			childID := walk(child)
			fmt.Fprintf(&sb, "    %s --> %s\n", id, childID)
		}
		return id
	}
	walk(root)

	if len(filled) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef filled fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range filled {
			fmt.Fprintf(&sb, "    class %s filled;\n", id)
		}
	}

	return sb.String()
}

// sanitizeLabel escapes characters that end a quoted Mermaid label.
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	return strings.ReplaceAll(s, "\n", " ")
}
