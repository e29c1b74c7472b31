package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/dailytasks/internal/app"
	"github.com/idilsaglam/dailytasks/internal/model"
)

// listItem adapts a stored item to bubbles/list.Item
type listItem struct {
	model.Item
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Name }

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// Model is the Bubble Tea model of the terminal todo list.
// Every intent goes to the controller right away; nothing is saved on quit.
type Model struct {
	ctx  context.Context
	ctrl *app.Controller
	log  zerolog.Logger

	list   list.Model
	ti     textinput.Model // shared text input (used for add & edit)
	mode   mode
	status string // last storage error, shown under the list

	width, height int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+mutedStyle.Render(bullet)+" "+it.Name)
}

var (
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "update"))
	delBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// New builds the model over a loaded controller.
func New(ctx context.Context, ctrl *app.Controller, log zerolog.Logger) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.Title = "Daily Tasks"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.SetShowTitle(true)

	// Extend help with Add / Update / Delete bindings
	binds := func() []key.Binding { return []key.Binding{addBind, editBind, delBind} }
	l.AdditionalShortHelpKeys = binds
	l.AdditionalFullHelpKeys = binds

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add todo"
	ti.CharLimit = 200

	m := Model{ctx: ctx, ctrl: ctrl, log: log, list: l, ti: ti}
	m.refresh(-1) // unfiltered: no command to run
	return m
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, ctrl *app.Controller, log zerolog.Logger) error {
	p := tea.NewProgram(New(ctx, ctrl, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// refresh rebuilds the list from the controller and moves the cursor to sel.
// Under a filter the returned command re-applies it and must reach the runtime.
func (m *Model) refresh(sel int) tea.Cmd {
	items := m.ctrl.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	cmd := m.list.SetItems(li)
	if m.list.FilterState() == list.Unfiltered && sel >= 0 && sel < len(li) {
		m.list.Select(sel)
	}
	return cmd
}

// clampCursor keeps the cursor on a visible item after the filtered set shrinks.
func (m *Model) clampCursor() {
	n := len(m.list.VisibleItems())
	if n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

// selectCurrent tells the controller which stored item the cursor is on.
func (m *Model) selectCurrent() bool {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		m.ctrl.Unselect()
		return false
	}
	for i, c := range m.ctrl.Items() {
		if c.ID == it.ID {
			m.ctrl.Select(i)
			return true
		}
	}
	m.ctrl.Unselect()
	return false
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
}

// Update and View implement Bubble Tea's Model
func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != browsing {
		return m.updateInput(msg)
	}

	// Keys belong to the filter prompt while it is open.
	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc":
			m.log.Debug().Msg("quit")
			return m, tea.Quit
		case "a":
			m.mode = adding
			m.ti.SetValue("")
			m.ti.Placeholder = "Add todo"
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		case "e":
			if !m.selectCurrent() {
				return m, nil
			}
			i, _ := m.ctrl.Selected()
			it, _ := m.ctrl.Item(i)
			m.mode = editing
			m.ti.SetValue(it.Name)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Update todo"
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		case "d":
			if !m.selectCurrent() {
				return m, nil
			}
			i, _ := m.ctrl.Selected()
			applied, err := m.ctrl.Delete(m.ctx)
			m.report(err)
			if applied {
				if i >= m.ctrl.Len() {
					i = m.ctrl.Len() - 1
				}
				cmd := m.refresh(i)
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			var (
				applied bool
				err     error
			)
			if m.mode == adding {
				applied, err = m.ctrl.Add(m.ctx, m.ti.Value())
			} else {
				applied, err = m.ctrl.Update(m.ctx, m.ti.Value())
			}
			m.report(err)
			if !applied {
				// Blank input or a failed write: keep the prompt open.
				return m, nil
			}
			sel := m.ctrl.Len() - 1
			if m.mode == editing {
				sel, _ = m.ctrl.Selected()
			}
			m.closeInput()
			cmd := m.refresh(sel)
			m.resize()
			return m, cmd
		case "esc":
			m.closeInput()
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	if m.status != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != browsing {
		title := "Add todo"
		if m.mode == editing {
			title = "Update todo"
		}
		inputLine := accentStyle.Render(title) + "\n" + m.ti.View()
		content += "\n" + frameStyle.Render(inputLine)
	}
	if m.status != "" {
		content += "\n" + errorStyle.Render("✖ "+m.status)
	}
	return frameStyle.Render(strings.TrimRight(content, "\n"))
}
