package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/sail/pkg/domain"
)

// Library adapts a Loam repository to ports.ExampleLibrary.
// Each document is one snippet: the body is SAIL source, the frontmatter
// carries title, description and initial state.
type Library struct {
	Repo *loam.TypedRepository[ExampleMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ExampleMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only repository at dir.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number; the library never writes.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ExampleMetadata](repo)), nil
}

// List returns every snippet ordered by ID.
func (l *Library) List(ctx context.Context) ([]domain.Example, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	examples := make([]domain.Example, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		title := doc.Data.Title
		if title == "" {
			title = id
		}
		examples = append(examples, domain.Example{
			ID:          id,
			Title:       title,
			Description: doc.Data.Description,
			Source:      strings.TrimSpace(doc.Content),
			State:       flattenState(doc.Data.State),
		})
	}
	sort.Slice(examples, func(i, j int) bool { return examples[i].ID < examples[j].ID })
	return examples, nil
}

// Get returns the snippet with the given ID (extension optional).
func (l *Library) Get(ctx context.Context, id string) (domain.Example, error) {
	examples, err := l.List(ctx)
	if err != nil {
		return domain.Example{}, err
	}
	want := trimExtension(id)
	for _, ex := range examples {
		if ex.ID == want {
			return ex, nil
		}
	}
	return domain.Example{}, fmt.Errorf("%w: %s", domain.ErrExampleNotFound, id)
}

// Watch implements ports.Watchable.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// flattenState converts frontmatter values to state strings.
// Nested values are not meaningful as field values and are skipped.
func flattenState(src map[string]any) map[string]string {
	if len(src) == 0 {
		return nil
	}
	res := make(map[string]string, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case string:
			res[k] = val
		case json.Number:
			res[k] = val.String()
		case bool, int, int64, float64:
			res[k] = fmt.Sprint(val)
		}
	}
	return res
}
