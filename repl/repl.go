package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/razeghi71/ask/lexer"
	"github.com/razeghi71/ask/output"
	"github.com/razeghi71/ask/session"
)

const Prompt = "ask> "

var commands = []string{":help", ":columns", ":preview", ":load", ":format", ":explain", "exit", "quit"}

// Options configure a REPL.
type Options struct {
	Format      string // output format, text when empty
	PreviewRows int
	HistoryFile string // defaults to .ask_history in the temp dir
}

// REPL reads questions from a terminal and answers them from a session.
type REPL struct {
	session     *session.Session
	out         io.Writer
	formatter   output.Formatter
	format      string
	previewRows int
	history     string
}

// New creates a REPL writing to out.
func New(s *session.Session, out io.Writer, opts Options) (*REPL, error) {
	if opts.Format == "" {
		opts.Format = "text"
	}
	f, err := output.New(opts.Format, out)
	if err != nil {
		return nil, err
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = 5
	}
	if opts.HistoryFile == "" {
		opts.HistoryFile = filepath.Join(os.TempDir(), ".ask_history")
	}
	return &REPL{
		session:     s,
		out:         out,
		formatter:   f,
		format:      opts.Format,
		previewRows: opts.PreviewRows,
		history:     opts.HistoryFile,
	}, nil
}

// Run prompts until exit, Ctrl+D or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(r.Complete)

	if f, err := os.Open(r.history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(r.history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	r.banner()

	for ctx.Err() == nil {
		input, err := line.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("cannot read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if r.Handle(input) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
	return nil
}

func (r *REPL) banner() {
	ds := r.session.Dataset()
	fmt.Fprintf(r.out, "Loaded %s: %d rows, columns: %s\n", r.session.Source(), ds.Len(), strings.Join(ds.Columns(), ", "))
	fmt.Fprintln(r.out, "Ask a question, e.g. \"salary of bilal khan\".")
	fmt.Fprintln(r.out, "Type ':help' for commands, 'exit' or Ctrl+D to quit")
	fmt.Fprintln(r.out)
}

// Handle processes one input line and reports whether the user asked to
// quit.
func (r *REPL) Handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return false
	case trimmed == "exit" || trimmed == "quit":
		return true
	case strings.HasPrefix(trimmed, ":"):
		r.command(trimmed)
		return false
	}

	result, err := r.session.Ask(trimmed)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return false
	}
	if err := r.formatter.Format(result); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
	return false
}

func (r *REPL) command(input string) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  :help             Show this help")
		fmt.Fprintln(r.out, "  :columns          List the dataset columns")
		fmt.Fprintln(r.out, "  :preview [n]      Show the first n rows")
		fmt.Fprintln(r.out, "  :load <file>      Load another dataset")
		fmt.Fprintln(r.out, "  :format <name>    Set the output format (text, csv, json, yaml)")
		fmt.Fprintln(r.out, "  :explain <query>  Show how a question would be answered")
		fmt.Fprintln(r.out, "  exit, quit        Leave")

	case ":columns":
		ds := r.session.Dataset()
		for _, col := range ds.Columns() {
			if col == ds.Identifier() {
				fmt.Fprintf(r.out, "%s (identifier)\n", col)
				continue
			}
			fmt.Fprintln(r.out, col)
		}

	case ":preview":
		n := r.previewRows
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v <= 0 {
				fmt.Fprintf(r.out, "invalid row count %q\n", arg)
				return
			}
			n = v
		}
		if err := output.Preview(r.out, r.session.Dataset().Table(), n); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}

	case ":load":
		if arg == "" {
			fmt.Fprintln(r.out, "usage: :load <file>")
			return
		}
		if err := r.session.LoadFile(arg); err != nil {
			fmt.Fprintf(r.out, "load error: %v\n", err)
			return
		}
		ds := r.session.Dataset()
		fmt.Fprintf(r.out, "Loaded %s: %d rows, columns: %s\n", arg, ds.Len(), strings.Join(ds.Columns(), ", "))

	case ":format":
		if arg == "" {
			fmt.Fprintln(r.out, r.format)
			return
		}
		f, err := output.New(arg, r.out)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return
		}
		r.formatter = f
		r.format = arg

	case ":explain":
		plan, err := r.session.Explain(arg)
		if err != nil {
			fmt.Fprintln(r.out, "usage: :explain <question>")
			return
		}
		fmt.Fprintln(r.out, plan.String())

	default:
		fmt.Fprintf(r.out, "Unknown command: %s (type :help for commands)\n", name)
	}
}

// Complete returns completions for the word being typed: commands at the
// start of the line, column names elsewhere. Each candidate is the whole
// line with the last word completed.
func (r *REPL) Complete(line string) []string {
	if strings.TrimSpace(line) == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		return nil
	}

	start := strings.LastIndexAny(line, " \t") + 1
	head, word := line[:start], line[start:]

	var candidates []string
	if start == 0 {
		candidates = commands
	}
	if !strings.HasPrefix(word, ":") {
		candidates = append(candidates[:len(candidates):len(candidates)], r.session.Dataset().Columns()...)
	}

	prefix := lexer.Fold(word)
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(lexer.Fold(c), prefix) {
			matches = append(matches, head+c)
		}
	}
	return matches
}
