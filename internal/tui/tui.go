package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reducer"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// listItem adapts a model.Todo to bubbles/list.Item
type listItem struct {
	todo model.Todo
}

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := it.todo.Text
	if it.todo.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	id := t.Muted.Render(fmt.Sprintf("#%d", it.todo.ID))
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, text, id)
}

var keys = struct {
	Toggle, Add, Inc, Dec, Quit key.Binding
}{
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Inc:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "increment")),
	Dec:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "decrement")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model. Every edit is dispatched as a reducer
// action into the shared store; the list is rebuilt from the new state.
type Model struct {
	store   *store.Store[model.State]
	list    list.Model
	changed bool

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

// New builds a Model over s.
func New(s *store.Store[model.State]) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	extra := func() []key.Binding { return []key.Binding{keys.Toggle, keys.Add, keys.Inc, keys.Dec} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 200

	m := Model{store: s, list: l, ti: ti, width: 80, height: 24}
	m.resize()
	m.sync()
	return m
}

// Changed reports whether any action altered state during the session.
func (m Model) Changed() bool { return m.changed }

// State is the store's current state.
func (m Model) State() model.State { return m.store.State() }

// dispatch returns the list's refilter command; with a filter applied the
// visible items stay empty until it runs.
func (m *Model) dispatch(a reducer.Action) tea.Cmd {
	m.store.Dispatch(a)
	m.changed = true
	return m.sync()
}

// sync rebuilds list items and the header from the store.
func (m *Model) sync() tea.Cmd {
	st := m.store.State()
	items := make([]list.Item, 0, len(st.Todos))
	for _, t := range st.Todos {
		items = append(items, listItem{todo: t})
	}
	cmd := m.list.SetItems(items)

	th := ui.Current()
	done, pending := model.Stats(st.Todos)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), len(st.Todos),
		th.Accent.Render("Counter"), st.Counter,
	)
	return cmd
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
	}

	// refilter results belong to the list whatever mode we are in
	if fm, ok := msg.(list.FilterMatchesMsg); ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(fm)
		return m, cmd
	}

	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				text := strings.TrimSpace(m.ti.Value())
				if text == "" {
					m.addErr = "Text cannot be empty"
					return m, nil
				}
				st := m.store.State()
				cmd := m.dispatch(reducer.AddTodo{ID: model.NextID(st.Todos), Text: text})
				if m.list.FilterState() == list.Unfiltered {
					m.list.Select(len(m.list.Items()) - 1)
				}
				m.stopAdding()
				return m, cmd
			case "esc":
				m.stopAdding()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// while the filter prompt is open every key belongs to it
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.String() == "esc" && m.list.FilterState() != list.Unfiltered:
			// esc clears an applied filter; the list handles that below
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			if it, ok := m.list.SelectedItem().(listItem); ok {
				cmd := m.dispatch(reducer.ToggleTodo{ID: it.todo.ID})
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, keys.Inc):
			cmd := m.dispatch(reducer.Increment{})
			return m, cmd
		case key.Matches(msg, keys.Dec):
			cmd := m.dispatch(reducer.Decrement{})
			return m, cmd
		case key.Matches(msg, keys.Add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			cmd := m.ti.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 8
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m Model) View() string {
	m.resize()
	content := m.list.View()
	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += " · " + ui.Current().Error.Render(m.addErr)
		}
		content += "\n" + ui.Frame(title+"\n"+m.ti.View())
	}
	return ui.Frame(content)
}

// Run starts the interactive list in the alternate screen and returns the
// final model so the caller can persist when Changed.
func Run(s *store.Store[model.State]) (Model, error) {
	p := tea.NewProgram(New(s), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected model %T", final)
	}
	return fm, nil
}
