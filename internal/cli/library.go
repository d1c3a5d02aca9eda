package cli

import (
	"fmt"
	"os"

	loamAdapter "github.com/aretw0/sail/pkg/adapters/loam"
	"github.com/aretw0/sail/pkg/adapters/memory"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/aretw0/sail/pkg/ports"
)

// BuiltinExamples is the library used when no examples directory is configured.
func BuiltinExamples() []domain.Example {
	return []domain.Example{
		{
			ID:          "user-form",
			Title:       "User Form",
			Description: "The starter form: a text field, a role dropdown and a conditional admin field.",
			Source:      dsl.DefaultSource,
		},
	}
}

// OpenLibrary opens the snippet library in dir, or the built-in one when dir is empty.
func OpenLibrary(dir string) (ports.ExampleLibrary, error) {
	if dir == "" {
		return memory.NewLibrary(BuiltinExamples()...), nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("examples directory %s not found", dir)
	}
	lib, err := loamAdapter.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open examples at %s: %w", dir, err)
	}
	return lib, nil
}
