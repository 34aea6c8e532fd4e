// Package tui is a terminal presentation of the application core. Intents are
// applied in order by a single worker off the event loop; view changes arrive
// as messages.
package tui

import (
	"strings"

	"starfolk-client/internal/app"
	"starfolk-client/internal/coordinator"
	"starfolk-client/internal/models"
	"starfolk-client/internal/navigation"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Core is the part of app.App the browser drives.
type Core interface {
	Start()
	View() app.View
	Navigate(path string)
	Back() bool
	SearchTextChanged(text string)
	SubmitSearch()
	ClearSearch()
	ItemSelected(id int)
	ReloadFeatured()
}

// viewMsg carries the presented state after a change.
type viewMsg app.View

// Model is the browser state.
type Model struct {
	core     Core
	queue    *intentQueue
	view     app.View
	ready    bool
	input    textinput.Model
	spinner  spinner.Model
	spinning bool
	help     help.Model
	keys     keyMap
	selected int
	width    int
}

// New creates a browser over core.
func New(core Core) *Model {
	in := textinput.New()
	in.Placeholder = "Search characters"
	in.Prompt = "› "
	in.CharLimit = 100
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	return &Model{
		core:    core,
		queue:   newIntentQueue(),
		input:   in,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

// Init queues the start of the core ahead of any intent.
func (m *Model) Init() tea.Cmd {
	core := m.core
	started := m.queue.push(core.Start)
	return func() tea.Msg {
		<-started
		return viewMsg(core.View())
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = app.View(msg)
		m.ready = true
		m.clampSelection()
		if m.loading() && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	emptyInput := m.input.Value() == ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows())-1 {
			m.selected++
		}
		return nil
	case key.Matches(msg, m.keys.Enter):
		return m.enter()
	case key.Matches(msg, m.keys.Reload):
		m.intent(m.core.ReloadFeatured)
		return nil
	case emptyInput && key.Matches(msg, m.keys.About):
		m.intent(func() { m.core.Navigate(navigation.AboutPath) })
		return nil
	case emptyInput && key.Matches(msg, m.keys.Back):
		m.intent(func() { m.core.Back() })
		return nil
	case msg.String() == "esc":
		m.input.Reset()
		m.intent(m.core.ClearSearch)
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.intent(func() { m.core.SearchTextChanged(after) })
	}
	return cmd
}

func (m *Model) enter() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text != "" && text != m.view.Query {
		m.intent(m.core.SubmitSearch)
		return nil
	}
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return nil
	}
	id := rows[m.selected].ID
	m.intent(func() { m.core.ItemSelected(id) })
	return nil
}

// intent queues fn for the worker. The core publishes on the calling goroutine,
// and its subscriber sends to this program, so fn must not run inside Update.
func (m *Model) intent(fn func()) {
	m.queue.push(fn)
}

// rows are the selectable characters of the current view.
func (m *Model) rows() []models.Character {
	if m.view.Route != navigation.Home.String() {
		return nil
	}
	if m.view.ShowList {
		return m.view.List.Items
	}
	return m.view.Featured.Items
}

func (m *Model) clampSelection() {
	n := len(m.rows())
	switch {
	case n == 0:
		m.selected = 0
	case m.selected >= n:
		m.selected = n - 1
	}
}

func (m *Model) loading() bool {
	v := m.view
	return v.List.State == coordinator.Loading ||
		v.Detail.State == coordinator.Loading ||
		v.Featured.State == coordinator.Loading
}
