package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/internal/presentation/graph"
	"github.com/aretw0/sail/internal/presentation/tui"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/tidwall/gjson"
)

// Output formats of Eval.
const (
	FormatOutline = "outline"
	FormatJSON    = "json"
	FormatHTML    = "html"
	FormatDump    = "dump"
	FormatMermaid = "mermaid"
)

// ErrEvaluationFailed is returned when the document produced an error view.
var ErrEvaluationFailed = errors.New("document failed to evaluate")

// EvalOptions configures a one-shot evaluation.
type EvalOptions struct {
	Source string
	State  map[string]string
	Mode   sail.DumpMode
	Format string
	// Query is a gjson path applied to the JSON result.
	Query  string
	Logger *slog.Logger
}

// EvalResult is the JSON form of an evaluated document.
type EvalResult struct {
	Phase string                  `json:"phase"`
	AST   *domain.Node            `json:"ast"`
	Error *domain.EvaluationError `json:"error,omitempty"`
	HTML  string                  `json:"html"`
	State map[string]string       `json:"state"`
	Dump  string                  `json:"dump"`
}

// Eval runs a single cycle over the document and writes the result to w.
func Eval(ctx context.Context, w io.Writer, opts EvalOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	pg := sail.New(ctx, opts.Source,
		sail.WithLogger(logger),
		sail.WithInitialState(opts.State),
		sail.WithDumpMode(opts.Mode),
	)
	f := pg.Current()

	if opts.Query != "" {
		data, err := json.Marshal(resultOf(pg))
		if err != nil {
			return err
		}
		res := gjson.GetBytes(data, opts.Query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", opts.Query)
		}
		fmt.Fprintln(w, res.String())
		return failure(f)
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resultOf(pg)); err != nil {
			return err
		}
	case FormatHTML:
		fmt.Fprintln(w, f.HTML())
	case FormatDump:
		fmt.Fprintln(w, pg.Dump(""))
	case FormatMermaid:
		fmt.Fprint(w, graph.GenerateMermaid(f.Root, &graph.GraphOverlay{State: domain.NewState(f.State)}))
	case FormatOutline, "":
		printFrame(tui.NewPrinter(w), pg)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
	return failure(f)
}

func resultOf(pg *sail.Playground) EvalResult {
	f := pg.Current()
	return EvalResult{
		Phase: string(f.Phase),
		AST:   f.Root,
		Error: f.Err,
		HTML:  f.HTML(),
		State: f.State,
		Dump:  pg.Dump(""),
	}
}

func printFrame(p *tui.Printer, pg *sail.Playground) {
	f := pg.Current()
	if f.Err != nil {
		p.Error(f.Err)
		return
	}
	p.Outline(f.Root, domain.NewState(f.State))
}

func failure(f *sail.Frame) error {
	if f.Err != nil {
		return fmt.Errorf("%w: %s", ErrEvaluationFailed, f.Err.Error())
	}
	return nil
}
