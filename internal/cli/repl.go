package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/presentation/tui"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const (
	promptMain  = "sail> "
	promptCont  = "  ... "
	historyFile = ".sail_history"
)

const replHelp = `Commands:
  <document>          replace the document and re-render
  :set <key> <value>  type into the field bound to key
  :state              print the field values
  :history            print the recorded trees
  :dump [mode]        print the structure panel (history or latest)
  :html               print the rendered HTML
  :source             print the current document
  :load <path>        replace the document with a file's content
  :submit             press the button
  :refresh            re-run the cycle
  :reset              clear state and history
  :help               show this text
  :quit               leave`

// REPL drives one playground from line-oriented commands.
type REPL struct {
	pg      *sail.Playground
	out     io.Writer
	printer *tui.Printer
}

// NewREPL creates a REPL writing to out.
func NewREPL(pg *sail.Playground, out io.Writer) *REPL {
	return &REPL{pg: pg, out: out, printer: tui.NewPrinter(out)}
}

// Exec runs one entry. It reports whether the session should end.
func (r *REPL) Exec(ctx context.Context, entry string) (bool, error) {
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return false, nil
	}
	if !strings.HasPrefix(trimmed, ":") {
		r.pg.Edit(ctx, entry)
		r.show()
		return false, nil
	}

	cmd, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(r.out, replHelp)
	case ":set":
		key, value, _ := strings.Cut(arg, " ")
		if _, err := r.pg.Input(ctx, key, value); err != nil {
			return false, err
		}
		r.show()
	case ":state":
		r.printJSON(r.pg.State())
	case ":history":
		entries := r.pg.History()
		if len(entries) == 0 {
			r.printer.System("History is empty.")
			return false, nil
		}
		fmt.Fprintln(r.out, r.pg.Dump(sail.DumpHistory))
	case ":dump":
		var mode sail.DumpMode
		if arg != "" {
			m, err := sail.ParseDumpMode(arg)
			if err != nil {
				return false, err
			}
			mode = m
		}
		fmt.Fprintln(r.out, r.pg.Dump(mode))
	case ":html":
		fmt.Fprintln(r.out, r.pg.Current().HTML())
	case ":source":
		fmt.Fprintln(r.out, r.pg.Source())
	case ":load":
		if arg == "" {
			return false, errors.New("usage: :load <path>")
		}
		source, err := ReadSource(arg, nil)
		if err != nil {
			return false, err
		}
		r.pg.Edit(ctx, source)
		r.show()
	case ":submit":
		state := r.pg.Submit(ctx)
		fmt.Fprintln(r.out, "Button clicked!")
		r.printJSON(state)
	case ":refresh":
		r.pg.Refresh(ctx)
		r.show()
	case ":reset":
		r.pg.Reset(ctx)
		r.show()
	default:
		return false, fmt.Errorf("unknown command %s (try :help)", cmd)
	}
	return false, nil
}

// Show prints the current frame.
func (r *REPL) Show() { r.show() }

func (r *REPL) show() {
	f := r.pg.Current()
	if f.Err != nil {
		r.printer.Error(f.Err)
		return
	}
	if f.Root == nil {
		r.printer.System("Nothing to render.")
		return
	}
	r.printer.Outline(f.Root, domain.NewState(f.State))
}

func (r *REPL) printJSON(state map[string]string) {
	data, _ := json.MarshalIndent(state, "", "  ")
	fmt.Fprintln(r.out, string(data))
}

// Incomplete reports whether src has unclosed brackets or an unterminated
// string, meaning more lines should be read before evaluating.
func Incomplete(src string) bool {
	depth := 0
	var quote rune
	escaped := false
	for _, c := range src {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0 || quote != 0
}

// RunREPL reads entries until EOF or :quit. On a terminal it uses line
// editing with a persistent history; otherwise it reads lines from in.
func RunREPL(ctx context.Context, r *REPL, in *os.File) error {
	r.Show()
	if !term.IsTerminal(int(in.Fd())) {
		return runPlain(ctx, r, in)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for ctx.Err() == nil {
		entry, err := readEntry(ln)
		if errors.Is(err, liner.ErrPromptAborted) || isInterrupted(err) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
		quit, err := r.Exec(ctx, entry)
		if err != nil {
			r.printer.System("%v", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func readEntry(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !Incomplete(b.String()) {
			return b.String(), nil
		}
	}
}

func runPlain(ctx context.Context, r *REPL, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var b strings.Builder
	for ctx.Err() == nil && scanner.Scan() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(scanner.Text())
		if Incomplete(b.String()) {
			continue
		}
		entry := b.String()
		b.Reset()
		quit, err := r.Exec(ctx, entry)
		if err != nil {
			r.printer.System("%v", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}
