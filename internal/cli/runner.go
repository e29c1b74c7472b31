package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/idilsaglam/dailytasks/internal/config"
	"github.com/idilsaglam/dailytasks/internal/gui"
	"github.com/idilsaglam/dailytasks/internal/logging"
	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store/jsonstore"
	"github.com/idilsaglam/dailytasks/internal/tui"
	"github.com/idilsaglam/dailytasks/internal/ui"
)

// Options carry what the root flags and config resolved to.
type Options struct {
	Config config.Config
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// Without a subcommand it opens the desktop window.
func Run(args []string, opt Options) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) == 0 {
		return doGUI(ctx, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "gui":
		return doGUI(ctx, opt)

	case "tui":
		return doTUI(ctx, opt)

	case "ls":
		return doList(ctx, opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: dailytasks add <name...>")
			return 2
		}
		return doAdd(ctx, opt, strings.Join(a, " "))

	case "update":
		if len(a) < 2 {
			ui.Fail("usage: dailytasks update <index> <name...>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("update: not a number: " + a[0])
			return 2
		}
		return doUpdate(ctx, opt, n, strings.Join(a[1:], " "))

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: dailytasks rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(ctx, opt, n)

	case "rename":
		if len(a) != 2 {
			ui.Fail(`usage: dailytasks rename "<old name>" "<new name>"`)
			return 2
		}
		return doRename(ctx, opt, a[0], a[1])

	case "rm-name":
		if len(a) == 0 {
			ui.Fail("usage: dailytasks rm-name <name...>")
			return 2
		}
		return doRemoveByName(ctx, opt, strings.Join(a, " "))

	case "export":
		if len(a) != 1 {
			ui.Fail("usage: dailytasks export <file.json|file.yaml>")
			return 2
		}
		return doExport(ctx, opt, a[0])

	case "import":
		if len(a) != 1 {
			ui.Fail("usage: dailytasks import <file.json|file.yaml>")
			return 2
		}
		return doImport(ctx, opt, a[0])
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.ErrOut)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Out, `dailytasks - a small todo list

Usage:
  dailytasks [flags] [subcommand] [args]

Subcommands:
  gui                         Open the desktop window (default)
  tui                         Interactive list in the terminal
  add <name...>               Add a new item (name can be multiple words)
  ls                          List items
  update <index> <name...>    Rename the item at 1-based index
  rm <index>                  Remove the item at 1-based index
  rename <old> <new>          Rename every item named <old>
  rm-name <name...>           Remove every item with that name
  export <file>               Write all items to .json or .yaml
  import <file>               Add the names found in a .json or .yaml file

Flags:
  -db <path>                  Database file (default todo.db)
  -theme <classic|neon|mono>  Output theme
  -log-level <level>          debug, info, warn, error or off
  -log-file <path>            Append logs to a file
  -no-color                   Plain output

Examples:
  dailytasks add "Buy milk"
  dailytasks ls
  dailytasks update 1 "Buy oat milk"
  dailytasks rm 1
`)
}

// openSession builds a session and loads the stored items into its controller.
func openSession(ctx context.Context, opt Options, sink io.Writer) (*session, func(), bool) {
	s, cleanup, err := initializeSession(opt.Config, sink)
	if err != nil {
		ui.Fail("open: " + err.Error())
		return nil, nil, false
	}
	if err := s.ctrl.Load(ctx); err != nil {
		cleanup()
		ui.Fail(err.Error())
		return nil, nil, false
	}
	return s, cleanup, true
}

// -------------- subcommand impls ----------------

func doGUI(ctx context.Context, opt Options) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	a := fyneapp.NewWithID(gui.AppID)
	w := gui.New(ctx, a, s.ctrl, logging.Component(s.log, "gui"))
	// Ctrl-C in the launching terminal closes the window.
	stopWatch := gui.QuitOnDone(ctx, func() { fyne.Do(a.Quit) })
	defer stopWatch()
	w.Show()
	a.Run()
	return 0
}

func doTUI(ctx context.Context, opt Options) int {
	// The terminal belongs to the TUI; logs only go to a configured file.
	s, cleanup, ok := openSession(ctx, opt, nil)
	if !ok {
		return 1
	}
	defer cleanup()

	if err := tui.Run(ctx, s.ctrl, logging.Component(s.log, "tui")); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(ctx context.Context, opt Options) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	items := s.ctrl.Items()
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		ui.C(t.Title, "Daily Tasks"),
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, ""}
	lines = append(lines, flatLines(items)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `dailytasks add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(ctx context.Context, opt Options, name string) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	applied, err := s.ctrl.Add(ctx, name)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if !applied {
		ui.Fail("add: empty name")
		return 2
	}
	ui.OK("added")
	return 0
}

// selectIndex selects a 1-based position, reporting a usage error when out of range.
func selectIndex(s *session, userIndex int) bool {
	n := s.ctrl.Len()
	if userIndex < 1 || userIndex > n {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", n, userIndex))
		fmt.Fprintln(ui.ErrOut, ui.C(ui.Current().Muted, "Hint: run `dailytasks ls` to see valid indexes"))
		return false
	}
	s.ctrl.Select(userIndex - 1)
	return true
}

func doUpdate(ctx context.Context, opt Options, userIndex int, name string) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	if !selectIndex(s, userIndex) {
		return 2
	}
	applied, err := s.ctrl.Update(ctx, name)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if !applied {
		ui.Fail("update: empty name")
		return 2
	}
	ui.OK("updated")
	return 0
}

func doRemove(ctx context.Context, opt Options, userIndex int) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	if !selectIndex(s, userIndex) {
		return 2
	}
	if _, err := s.ctrl.Delete(ctx); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

func doRename(ctx context.Context, opt Options, oldName, newName string) int {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		ui.Fail("rename: empty name")
		return 2
	}
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	n, err := s.store.UpdateByName(ctx, oldName, newName)
	if err != nil {
		ui.Fail("rename: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("renamed %s", plural(n)))
	return 0
}

func doRemoveByName(ctx context.Context, opt Options, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		ui.Fail("rm-name: empty name")
		return 2
	}
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	n, err := s.store.DeleteByName(ctx, name)
	if err != nil {
		ui.Fail("rm-name: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("removed %s", plural(n)))
	return 0
}

func doExport(ctx context.Context, opt Options, path string) int {
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	items := s.ctrl.Items()
	if err := jsonstore.Save(path, items); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("exported %s to %s", plural(int64(len(items))), path))
	return 0
}

func doImport(ctx context.Context, opt Options, path string) int {
	// Load treats a missing file as empty; a named import file must exist.
	if _, err := os.Stat(path); err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	snap, err := jsonstore.Load(path)
	if err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	s, cleanup, ok := openSession(ctx, opt, ui.ErrOut)
	if !ok {
		return 1
	}
	defer cleanup()

	var n int64
	for _, name := range jsonstore.Names(snap) {
		if _, err := s.ctrl.Add(ctx, name); err != nil {
			ui.Fail(fmt.Sprintf("import: after %s: %v", plural(n), err))
			return 1
		}
		n++
	}
	ui.OK(fmt.Sprintf("imported %s", plural(n)))
	return 0
}

// -------------- rendering helpers --------------

func plural(n int64) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.C(t.Muted, idx),
			ui.C(t.Accent, t.Bullet),
			ui.Truncate(it.Name, 80),
			ui.C(t.Muted, fmt.Sprintf("#%d", it.ID)),
		))
	}
	return out
}
