// Package tui is the interactive todo list. Every change is applied to the
// store immediately, so quitting never loses work.
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

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todo"
)

// Store is what the TUI needs from the todo store.
type Store interface {
	Add(ctx context.Context, title string) error
	Toggle(ctx context.Context, id int) error
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]model.Task, error)
}

// listItem adapts a task to bubbles/list.Item. ID is the task's position.
type listItem struct {
	ID   int
	Text string
	Done bool
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// itemDelegate renders one task per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Done {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, mutedStyle.Render(fmt.Sprintf("%2d.", it.ID)), box, text)
}

// Model is the Bubble Tea model for the list.
type Model struct {
	ctx   context.Context
	store Store
	list  list.Model

	// Inline add
	adding bool
	ti     textinput.Model

	status string // result of the last action
	failed bool

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	removeBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
)

// New loads the list from s.
func New(ctx context.Context, s Store) (Model, error) {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = 0 // no limit

	m := Model{ctx: ctx, store: s, list: l, ti: ti, width: 80, height: 24}
	if err := m.reload(); err != nil {
		return Model{}, err
	}
	m.resize()
	return m, nil
}

// Run starts the program on the alternate screen.
func Run(ctx context.Context, s Store) error {
	m, err := New(ctx, s)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// reload replaces the list contents with the stored tasks, keeping the
// cursor in place where possible.
func (m *Model) reload() error {
	tasks, err := m.store.List(m.ctx)
	if err != nil {
		return err
	}
	items := make([]list.Item, 0, len(tasks))
	done := 0
	for i, t := range tasks {
		items = append(items, listItem{ID: i + 1, Text: t.Title, Done: t.Done})
		if t.Done {
			done++
		}
	}
	cursor := m.list.Index()
	m.list.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(tasks)-done,
		accentStyle.Render("Total"), len(tasks),
	)
	return nil
}

// apply runs op against the store and reloads, recording the outcome.
func (m *Model) apply(okMsg string, op func() error) {
	if err := op(); err != nil {
		m.status = fmt.Sprintf("%s: %v", todo.ErrorKind(err), err)
		m.failed = true
		return
	}
	if err := m.reload(); err != nil {
		m.status = err.Error()
		m.failed = true
		return
	}
	m.status = okMsg
	m.failed = false
}

func (m *Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 3
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				title := m.ti.Value()
				m.apply("added", func() error { return m.store.Add(m.ctx, title) })
				if m.failed {
					return m, nil
				}
				m.ti.SetValue("")
				m.ti.Blur()
				m.adding = false
				m.resize()
				m.list.Select(len(m.list.Items()) - 1)
				return m, nil
			case "esc":
				m.adding = false
				m.ti.SetValue("")
				m.ti.Blur()
				m.resize()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// keys go to the filter input while the user is typing a filter
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				return m, tea.Quit
			}
		case " ":
			if it, ok := m.selected(); ok {
				m.apply("toggled", func() error { return m.store.Toggle(m.ctx, it.ID) })
			}
			return m, nil
		case "d":
			if it, ok := m.selected(); ok {
				m.apply("removed", func() error { return m.store.Remove(m.ctx, it.ID) })
			}
			return m, nil
		case "a":
			m.adding = true
			m.status = ""
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		title := "Add new task"
		if m.failed && m.status != "" {
			title += " - " + errorStyle.Render(m.status)
		}
		content += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	} else if m.status != "" {
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		content += "\n" + style.Render(strings.TrimSpace(m.status))
	}
	return frameStyle.Render(content)
}
