package render

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attributes used by hosts to wire element events back into the session.
const (
	// AttrBind marks a control whose changes are written to the named state key.
	AttrBind = "data-sail-bind"
	// AttrAction marks a control that triggers a session action.
	AttrAction = "data-sail-action"
	// ActionSubmit is the action carried by buttons.
	ActionSubmit = "submit"
)

// Renderer converts SAIL trees into element trees.
type Renderer struct {
	logger *slog.Logger
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithLogger configures a logger for decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the element tree for node, reading control values from state.
// It never fails: absent nodes become empty placeholders and unknown kinds a
// visible diagnostic.
func (r *Renderer) Render(node *domain.Node, state domain.StateReader) *html.Node {
	if state == nil {
		state = noState{}
	}
	if node == nil {
		return placeholder()
	}
	switch node.Kind {
	case domain.KindFormLayout:
		return r.formLayout(node, state)
	case domain.KindTextField:
		return r.textField(node, state)
	case domain.KindDropdownField:
		return r.dropdownField(node, state)
	case domain.KindButton:
		return r.button(node)
	}
	return unknown(string(node.Kind))
}

// RenderError builds the element shown in place of the UI when a cycle fails.
func (r *Renderer) RenderError(err *domain.EvaluationError) *html.Node {
	pre := element(atom.Pre, attr("class", "error"))
	pre.AppendChild(text(err.Error()))
	return pre
}

func (r *Renderer) formLayout(node *domain.Node, state domain.StateReader) *html.Node {
	var props formLayoutProps
	r.decode(node, &props)

	div := element(atom.Div, attr("class", string(domain.KindFormLayout)))
	if domain.Truthy(node.Props["label"]) {
		h2 := element(atom.H2)
		h2.AppendChild(text(props.Label))
		div.AppendChild(h2)
	}
	for _, child := range props.Contents {
		div.AppendChild(r.renderValue(child, state))
	}
	return div
}

// renderValue renders an entry of a contents list, which may hold any value.
// Objects with a string "type" render as nodes of that kind.
func (r *Renderer) renderValue(v any, state domain.StateReader) *html.Node {
	if v == nil || v == domain.Undefined {
		return placeholder()
	}
	if node, ok := domain.AsNode(v); ok {
		return r.Render(node, state)
	}
	return unknown(domain.TypeOf(v))
}

func (r *Renderer) textField(node *domain.Node, state domain.StateReader) *html.Node {
	var props textFieldProps
	r.decode(node, &props)

	value := props.Value
	if props.SaveInto != "" {
		if stored, ok := state.Get(props.SaveInto); ok {
			value = stored
		}
	}

	div := element(atom.Div, attr("class", string(domain.KindTextField)))
	div.AppendChild(label(props.Label))

	input := element(atom.Input, attr("type", "text"), attr("value", value))
	bind(input, props.SaveInto)
	div.AppendChild(input)
	return div
}

func (r *Renderer) dropdownField(node *domain.Node, state domain.StateReader) *html.Node {
	var props dropdownFieldProps
	r.decode(node, &props)

	current, bound := "", false
	if props.SaveInto != "" {
		current, bound = state.Get(props.SaveInto)
	}

	div := element(atom.Div, attr("class", string(domain.KindDropdownField)))
	div.AppendChild(label(props.Label))

	sel := element(atom.Select)
	bind(sel, props.SaveInto)
	for _, c := range props.Choices {
		opt := element(atom.Option, attr("value", c.Value))
		if bound && c.Value == current {
			opt.Attr = append(opt.Attr, attr("selected", "selected"))
		}
		opt.AppendChild(text(c.Label))
		sel.AppendChild(opt)
	}
	div.AppendChild(sel)
	return div
}

func (r *Renderer) button(node *domain.Node) *html.Node {
	var props buttonProps
	r.decode(node, &props)

	btn := element(atom.Button, attr("type", "button"), attr(AttrAction, ActionSubmit))
	btn.AppendChild(text(props.Label))
	return btn
}

func (r *Renderer) decode(node *domain.Node, out any) {
	if err := decodeProps(node.Props, out); err != nil {
		r.logger.Debug("Render: props partially decoded", "kind", node.Kind, "err", err)
	}
}

type noState struct{}

func (noState) Get(string) (string, bool) { return "", false }

func bind(n *html.Node, key string) {
	if key == "" {
		return
	}
	n.Attr = append(n.Attr, attr("name", key), attr(AttrBind, key))
}

func label(s string) *html.Node {
	l := element(atom.Label)
	l.AppendChild(text(s))
	return l
}

func unknown(kind string) *html.Node {
	return text("Unknown: " + kind)
}

func placeholder() *html.Node {
	return text("")
}

func element(tag atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// WriteHTML serializes an element tree.
func WriteHTML(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// HTML serializes an element tree to a string.
func HTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
