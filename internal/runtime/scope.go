package runtime

import (
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
)

// Scope holds the bindings visible to one evaluation.
type Scope struct {
	bindings map[string]any
}

// builtins are shared by every scope; they hold no state.
var builtins = map[string]*Builtin{
	dsl.NameFormLayout:    constructor(dsl.NameFormLayout, dsl.FormLayout),
	dsl.NameTextField:     constructor(dsl.NameTextField, dsl.TextField),
	dsl.NameDropdownField: constructor(dsl.NameDropdownField, dsl.DropdownField),
	dsl.NameButton:        constructor(dsl.NameButton, dsl.Button),
	dsl.NameIf: {
		Name: dsl.NameIf,
		Call: func(args []any) any {
			return dsl.If(truthy(arg(args, 0)), arg(args, 1))
		},
	},
}

func constructor(name string, build func(any) *domain.Node) *Builtin {
	return &Builtin{
		Name: name,
		Call: func(args []any) any {
			return build(arg(args, 0))
		},
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return domain.Undefined
}

// NewScope binds the constructors and a read-only view of state.
// The state binding is a snapshot: evaluation cannot observe later writes.
func NewScope(state *domain.State) *Scope {
	s := &Scope{bindings: make(map[string]any, len(builtins)+1)}
	for name, fn := range builtins {
		s.bindings[name] = fn
	}
	view := make(map[string]any, state.Len())
	for k, v := range state.Snapshot() {
		view[k] = v
	}
	s.bindings[dsl.NameState] = view
	return s
}

// Lookup resolves a name.
func (s *Scope) Lookup(name string) (any, bool) {
	v, ok := s.bindings[name]
	return v, ok
}
