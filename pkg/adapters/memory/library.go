package memory

import (
	"context"
	"maps"
	"sort"

	"github.com/aretw0/sail/pkg/domain"
)

// Library implements ports.ExampleLibrary over a fixed set of snippets.
type Library struct {
	examples map[string]domain.Example
}

// NewLibrary creates a library holding the given examples.
func NewLibrary(examples ...domain.Example) *Library {
	l := &Library{examples: make(map[string]domain.Example, len(examples))}
	for _, ex := range examples {
		l.examples[ex.ID] = ex
	}
	return l
}

// List returns every example ordered by ID.
func (l *Library) List(ctx context.Context) ([]domain.Example, error) {
	out := make([]domain.Example, 0, len(l.examples))
	for _, ex := range l.examples {
		out = append(out, clone(ex))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns one example.
func (l *Library) Get(ctx context.Context, id string) (domain.Example, error) {
	ex, ok := l.examples[id]
	if !ok {
		return domain.Example{}, domain.ErrExampleNotFound
	}
	return clone(ex), nil
}

func clone(ex domain.Example) domain.Example {
	ex.State = maps.Clone(ex.State)
	return ex
}
