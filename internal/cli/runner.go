package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reducer"
	"github.com/idilsaglam/tada/internal/script"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool   // list grouped by pending/done
	File   string // data file; empty means ./todos.json
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt = opt.withDefaults()
	r := &runner{opt: opt, out: opt.Stdout, errw: opt.Stderr}

	if len(args) == 0 {
		PrintHelp(r.out)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0

	case "ls":
		format := ""
		for i := 0; i < len(a); i++ {
			switch a[i] {
			case "-group", "--group":
				r.opt.Group = true
			case "-o", "--output":
				if i+1 >= len(a) {
					return r.usage("usage: todo ls [--group] [-o json|yaml]")
				}
				i++
				format = a[i]
			default:
				return r.usage("usage: todo ls [--group] [-o json|yaml]")
			}
		}
		return r.doList(format)

	case "count":
		return r.doCount()

	case "inc":
		return r.mutate("incremented", reducer.Increment{})

	case "dec":
		return r.mutate("decremented", reducer.Decrement{})

	case "add":
		if len(a) == 0 {
			return r.usage("usage: todo add <text...>")
		}
		return r.doAdd(strings.Join(a, " "))

	case "toggle", "done":
		if len(a) != 1 {
			return r.usage("usage: todo toggle <id>")
		}
		id, err := strconv.Atoi(a[0])
		if err != nil {
			return r.usage(cmd + ": not a number: " + a[0])
		}
		return r.doToggle(id)

	case "replay":
		if len(a) != 1 {
			return r.usage("usage: todo replay <script.yaml>")
		}
		return r.doReplay(a[0])

	case "tui":
		return r.doTUI()
	}

	ui.Fail(r.errw, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.errw)
	PrintHelp(r.errw)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny counter + todo CLI

Usage:
  todo [flags] <subcommand> [args]

Flags:
  -file <path>       Data file (default ./todos.json, env TADA_FILE)
  -theme <name>      classic, neon or mono (env TADA_THEME)
  -group             Group ls output by pending/done
  -v                 Debug logging (env TADA_DEBUG)

Subcommands:
  add <text...>      Add a new todo (text can be multiple words)
  toggle <id>        Toggle completion of the todo with that id (alias: done)
  ls [--group] [-o json|yaml]
                     List todos and the counter
  inc | dec          Increment or decrement the counter
  count              Print the counter
  replay <file>      Apply a YAML/JSON script of actions
  tui                Interactive list

Examples:
  todo add "Buy milk"
  todo ls
  todo toggle 2
  todo replay actions.yaml
`)
}

type runner struct {
	opt  Options
	out  io.Writer
	errw io.Writer
}

func (r *runner) usage(msg string) int {
	ui.Fail(r.errw, msg)
	return 2
}

func (r *runner) fail(msg string, err error) int {
	ui.Fail(r.errw, msg+": "+err.Error())
	r.opt.Logger.Debug(msg, "error", err)
	return 1
}

// -------------- state plumbing -----------------

func (r *runner) open() (*jsonstore.Store, *store.Store[model.State], error) {
	js, err := jsonstore.New(r.opt.File)
	if err != nil {
		return nil, nil, err
	}
	st, err := js.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}
	return js, store.New(reducer.Root, st, r.opt.Logger), nil
}

func (r *runner) save(js *jsonstore.Store, st model.State) error {
	if err := js.Save(st); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	r.opt.Logger.Debug("state saved", "path", js.Path(), "todos", len(st.Todos), "counter", st.Counter)
	return nil
}

// mutate runs one action through the store and persists the result.
func (r *runner) mutate(okMsg string, a reducer.Action) int {
	js, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	if err := r.save(js, s.Dispatch(a)); err != nil {
		return r.fail("write", err)
	}
	ui.OK(r.out, okMsg)
	return 0
}

// -------------- subcommand impls ----------------

func (r *runner) doAdd(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return r.usage("add: empty text")
	}
	js, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	id := model.NextID(s.State().Todos)
	if err := r.save(js, s.Dispatch(reducer.AddTodo{ID: id, Text: text})); err != nil {
		return r.fail("write", err)
	}
	ui.OK(r.out, fmt.Sprintf("added #%d", id))
	return 0
}

func (r *runner) doToggle(id int) int {
	js, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	// The reducer ignores unknown ids; tell the user instead of saving a no-op.
	if _, ok := model.Find(s.State().Todos, id); !ok {
		ui.Fail(r.errw, fmt.Sprintf("no todo with id %d", id))
		ui.Hint(r.errw, "run `todo ls` to see valid ids")
		return 2
	}
	next := s.Dispatch(reducer.ToggleTodo{ID: id})
	if err := r.save(js, next); err != nil {
		return r.fail("write", err)
	}
	t, _ := model.Find(next.Todos, id)
	if t.Completed {
		ui.OK(r.out, fmt.Sprintf("#%d done", id))
	} else {
		ui.OK(r.out, fmt.Sprintf("#%d pending", id))
	}
	return 0
}

func (r *runner) doCount() int {
	_, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	fmt.Fprintln(r.out, s.State().Counter)
	return 0
}

func (r *runner) doReplay(path string) int {
	actions, err := script.Load(path)
	if err != nil {
		return r.fail("replay", err)
	}
	js, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	for _, a := range actions {
		if _, ok := a.(reducer.Unknown); ok {
			r.opt.Logger.Warn("ignoring unknown action", "type", a.Type())
		}
		s.Dispatch(a)
	}
	if err := r.save(js, s.State()); err != nil {
		return r.fail("write", err)
	}
	ui.OK(r.out, fmt.Sprintf("replayed %d actions", len(actions)))
	return 0
}

func (r *runner) doTUI() int {
	js, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	final, err := tui.Run(s)
	if err != nil {
		return r.fail("tui", err)
	}
	if final.Changed() {
		if err := r.save(js, final.State()); err != nil {
			return r.fail("write", err)
		}
		ui.OK(r.out, "saved")
	}
	return 0
}

func (r *runner) doList(format string) int {
	_, s, err := r.open()
	if err != nil {
		return r.fail("open", err)
	}
	st := s.State()
	if st.Todos == nil {
		st.Todos = []model.Todo{}
	}

	switch format {
	case "":
	case "json":
		b, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return r.fail("json marshal", err)
		}
		fmt.Fprintln(r.out, string(b))
		return 0
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return r.fail("yaml encode", err)
		}
		if err := enc.Close(); err != nil {
			return r.fail("yaml encode", err)
		}
		return 0
	default:
		return r.usage("ls: unknown format: " + format)
	}

	t := ui.Current()
	d, p := model.Stats(st.Todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(st.Todos),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.opt.Group {
		lines = append(lines, groupLines(st.Todos)...)
	} else {
		lines = append(lines, flatLines(st.Todos)...)
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %d", t.Accent.Render("Counter"), st.Counter))
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.out, lines)
	return 0
}

// -------------- rendering helpers --------------

const maxTextWidth = 60

func flatLines(todos []model.Todo) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{t.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, it := range todos {
		idx := fmt.Sprintf("#%-3d", it.ID)
		box, style := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, style = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(idx), style.Render(box), ui.Truncate(it.Text, maxTextWidth)))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, it := range todos {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
