package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/formatter"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/tasks"
)

// Mode is the input mode of the TUI.
type Mode int

const (
	BrowseMode Mode = iota
	AddMode
	EditMode
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	sync   *tasks.Synchronizer
	logger *log.Logger
	mode   Mode
	editID string
	loaded bool
	status string
	width  int
	height int
	list   list.Model
	input  textinput.Model
	help   help.Model
	keys   keyMap
	copy   func(string) error
}

// NewModel creates a TUI over sync. Errors from operations are logged to logger and otherwise ignored.
func NewModel(ctx context.Context, sync *tasks.Synchronizer, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("task", "tasks")

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 500

	m := &Model{
		ctx:    ctx,
		sync:   sync,
		logger: logger,
		list:   l,
		input:  input,
		help:   help.New(),
		keys:   newKeyMap(),
		copy:   clipboard.WriteAll,
	}
	m.refresh()
	return m
}

// Init loads the task list.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if m.mode != BrowseMode {
			return m.handleInputKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, the input line when adding or editing, the counts footer and help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.list.View())
	b.WriteString("\n")

	switch m.mode {
	case AddMode:
		fmt.Fprintf(&b, "%s %s\n", styles.ok.Render("New:"), m.input.View())
	case EditMode:
		fmt.Fprintf(&b, "%s %s\n", styles.warn.Render("Edit:"), m.input.View())
	}

	footer := formatter.FormatCounts(m.sync.Counts())
	if m.status != "" {
		footer += " • " + m.status
	}
	b.WriteString(styles.footer.Render(footer))
	b.WriteString("\n")

	if m.mode == BrowseMode {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.cancel}))
	}
	return b.String()
}

// Mode reports whether the user is browsing, adding or editing.
func (m *Model) Mode() Mode { return m.mode }

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLoaded:
		m.loaded = true
	case MsgCopied:
		if msg.err == nil {
			m.status = "copied"
		}
	}

	if msg.err != nil {
		m.logger.Debug("operation failed", "op", msg.op, "kind", tasks.Classify(msg.err), "err", msg.err)
	}
	return m, m.refresh()
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selected(); ok {
			return m, m.mutate("toggle", func() error {
				_, err := m.sync.Toggle(m.ctx, t.ID)
				return err
			})
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.mode = AddMode
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.edit):
		if t, ok := m.selected(); ok {
			m.mode = EditMode
			m.editID = t.ID
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if t, ok := m.selected(); ok {
			return m, m.mutate("remove", func() error { return m.sync.Remove(m.ctx, t.ID) })
		}
		return m, nil
	case key.Matches(msg, m.keys.filter):
		return m, m.setFilter(m.sync.Filter().Next())
	case key.Matches(msg, m.keys.all):
		return m, m.setFilter(models.FilterAll)
	case key.Matches(msg, m.keys.active):
		return m, m.setFilter(models.FilterActive)
	case key.Matches(msg, m.keys.completed):
		return m, m.setFilter(models.FilterCompleted)
	case key.Matches(msg, m.keys.copy):
		if t, ok := m.selected(); ok {
			text := t.Text
			return m, func() tea.Msg { return copiedMsg(m.copy(text)) }
		}
		return m, nil
	case key.Matches(msg, m.keys.reload):
		return m, m.load()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.exitInput()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		text, mode, id := m.input.Value(), m.mode, m.editID
		m.exitInput()

		if mode == AddMode {
			return m, m.mutate("create", func() error {
				_, err := m.sync.Create(m.ctx, text)
				return err
			})
		}
		return m, m.mutate("edit", func() error {
			_, err := m.sync.Edit(m.ctx, id, text)
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) exitInput() {
	m.mode = BrowseMode
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg { return loadedMsg(m.sync.Load(m.ctx)) }
}

// mutate runs fn off the update loop; its result arrives as a [MsgMutated].
func (m *Model) mutate(op string, fn func() error) tea.Cmd {
	return func() tea.Msg { return mutatedMsg(op, fn()) }
}

func (m *Model) setFilter(f models.Filter) tea.Cmd {
	if err := m.sync.SetFilter(f); err != nil {
		m.logger.Warn("failed to set filter", "filter", f, "err", err)
		return nil
	}
	return m.refresh()
}

// refresh rebuilds the list from the synchronizer's current view.
func (m *Model) refresh() tea.Cmd {
	m.list.Title = fmt.Sprintf("todox • %s", m.sync.Filter())
	return m.list.SetItems(toItems(m.sync.View()))
}

func (m *Model) selected() (models.Task, bool) {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return models.Task{}, false
	}
	return item.task, true
}
