package domain

import "encoding/json"

// Node is one element of a SAIL tree.
// The absence node is represented by a nil *Node.
type Node struct {
	Kind  Kind           `json:"type" yaml:"type"`
	Props map[string]any `json:"props" yaml:"props"`
}

// NewNode builds a node of the given kind. Non-object configurations are
// tolerated and produce a node without props.
func NewNode(kind Kind, config any) *Node {
	props, _ := config.(map[string]any)
	return &Node{Kind: kind, Props: props}
}

// Prop returns a raw property value.
func (n *Node) Prop(key string) (any, bool) {
	if n == nil || n.Props == nil {
		return nil, false
	}
	v, ok := n.Props[key]
	return v, ok
}

// NodeFromObject converts an object of exactly the node shape, a string
// "type" with optional object "props" and no other keys, into a Node.
// Both the evaluator and JSON decoding use it, so a literal node and a
// constructed one are the same value.
func NodeFromObject(m map[string]any) (*Node, bool) {
	kind, ok := m["type"].(string)
	if !ok {
		return nil, false
	}
	for k := range m {
		if k != "type" && k != "props" {
			return nil, false
		}
	}
	props, ok := m["props"].(map[string]any)
	if !ok && m["props"] != nil && m["props"] != Undefined {
		return nil, false
	}
	return &Node{Kind: Kind(kind), Props: props}, true
}

// AsNode reports whether v renders as a node: a non-nil *Node, or any
// object carrying a string "type". Other keys of such an object are ignored
// and non-object props are dropped.
func AsNode(v any) (*Node, bool) {
	switch val := v.(type) {
	case *Node:
		return val, val != nil
	case map[string]any:
		kind, ok := val["type"].(string)
		if !ok {
			return nil, false
		}
		props, _ := val["props"].(map[string]any)
		return &Node{Kind: Kind(kind), Props: props}, true
	}
	return nil, false
}

// Children returns the nodes listed in "contents", in order.
// Entries that are not nodes are returned as nil.
func (n *Node) Children() []*Node {
	raw, ok := n.Prop(PropContents)
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	children := make([]*Node, len(items))
	for i, item := range items {
		if child, ok := AsNode(item); ok {
			children[i] = child
		}
	}
	return children
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Kind:  n.Kind,
		Props: cloneMap(n.Props),
	}
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(other *Node) bool {
	a, errA := json.Marshal(n)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

// UnmarshalJSON decodes a tree. Nested objects of the node shape become
// nodes again, so that a decoded tree clones, renders and dumps like the one
// that was encoded.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  Kind           `json:"type"`
		Props map[string]any `json:"props"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw.Props {
		raw.Props[k] = revive(v)
	}
	n.Kind, n.Props = raw.Kind, raw.Props
	return nil
}

func revive(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if node, ok := NodeFromObject(val); ok {
			for k, item := range node.Props {
				node.Props[k] = revive(item)
			}
			return node
		}
		for k, item := range val {
			val[k] = revive(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = revive(item)
		}
		return val
	}
	return v
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// undefined is the value of missing state keys and properties.
type undefined struct{}

// Undefined is distinct from nil (null) so that equality and truthiness can
// tell "missing" from "explicitly null".
var Undefined any = undefined{}

// MarshalJSON renders undefined as null.
func (undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (undefined) String() string { return "undefined" }
