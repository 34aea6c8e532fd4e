package tui

import (
	"strconv"
	"sync"
	"testing"

	"starfolk-client/internal/app"
	"starfolk-client/internal/coordinator"
	"starfolk-client/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type fakeCore struct {
	mu    sync.Mutex
	calls []string
	view  app.View
}

func (f *fakeCore) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeCore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCore) Start()                     { f.record("start") }
func (f *fakeCore) View() app.View             { return f.view }
func (f *fakeCore) Navigate(path string)       { f.record("navigate " + path) }
func (f *fakeCore) Back() bool                 { f.record("back"); return true }
func (f *fakeCore) SearchTextChanged(t string) { f.record("text " + t) }
func (f *fakeCore) SubmitSearch()              { f.record("submit") }
func (f *fakeCore) ClearSearch()               { f.record("clear") }
func (f *fakeCore) ItemSelected(id int)        { f.record("select " + strconv.Itoa(id)) }
func (f *fakeCore) ReloadFeatured()            { f.record("reload") }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msg to m, applies the intents it queued and runs the command it
// returns, if any.
func press(t *testing.T, m *Model, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	m.queue.drain()
	if cmd == nil {
		return nil
	}
	return cmd()
}

func homeView(query string, items ...models.Character) app.View {
	v := app.View{
		Route:    "home",
		Path:     "/",
		Query:    query,
		ShowList: query != "",
		Featured: app.ListView{State: coordinator.Loaded, Items: []models.Character{}},
		List:     app.ListView{State: coordinator.Idle, Items: []models.Character{}},
	}
	if query != "" {
		v.List = app.ListView{State: coordinator.Loaded, Items: items}
	} else {
		v.Featured.Items = items
	}
	return v
}

func TestModel_InitStartsCore(t *testing.T) {
	core := &fakeCore{view: homeView("")}
	m := New(core)

	cmd := m.Init()
	require.Empty(t, core.Calls())
	require.Equal(t, 1, m.queue.drain())
	msg := cmd()
	require.Equal(t, []string{"start"}, core.Calls())
	require.IsType(t, viewMsg{}, msg)

	press(t, m, msg)
	require.Contains(t, m.View(), "Featured")
}

func TestModel_TypingReportsText(t *testing.T) {
	core := &fakeCore{}
	m := New(core)
	press(t, m, viewMsg(homeView("")))

	press(t, m, runes("l"))
	press(t, m, runes("u"))
	require.Equal(t, []string{"text l", "text lu"}, core.Calls())

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "submit", core.Calls()[2])
}

func TestModel_EnterOpensHighlightedRow(t *testing.T) {
	core := &fakeCore{}
	m := New(core)
	m.input.SetValue("sky")
	press(t, m, viewMsg(homeView("sky",
		models.Character{ID: 1, Name: "Luke Skywalker"},
		models.Character{ID: 2, Name: "Anakin Skywalker"},
	)))

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.selected)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"select 2"}, core.Calls())
	require.Contains(t, m.View(), "Anakin Skywalker")
}

func TestModel_EmptyInputKeys(t *testing.T) {
	core := &fakeCore{}
	m := New(core)
	press(t, m, viewMsg(homeView("")))

	press(t, m, runes("?"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, []string{"navigate /about", "back", "back", "reload"}, core.Calls())
}

func TestModel_EscClearsText(t *testing.T) {
	core := &fakeCore{}
	m := New(core)
	press(t, m, viewMsg(homeView("")))

	press(t, m, runes("le"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, m.input.Value())
	require.Equal(t, []string{"text le", "clear"}, core.Calls())
}

func TestModel_QuestionMarkIsTextWhileTyping(t *testing.T) {
	core := &fakeCore{}
	m := New(core)
	press(t, m, viewMsg(homeView("")))

	press(t, m, runes("r"))
	press(t, m, runes("?"))
	require.Equal(t, "r?", m.input.Value())
	require.Equal(t, []string{"text r", "text r?"}, core.Calls())
}

func TestModel_Quit(t *testing.T) {
	m := New(&fakeCore{})
	require.Equal(t, tea.QuitMsg{}, press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC}))
}

func TestModel_RendersDetailStates(t *testing.T) {
	m := New(&fakeCore{})
	faction := models.FactionEmpire
	press(t, m, viewMsg(app.View{
		Route:  "detail",
		Path:   "/character/3",
		ID:     3,
		Detail: app.DetailView{State: coordinator.Loaded, Character: &models.Character{ID: 3, Name: "Darth Vader", Faction: &faction}},
	}))
	out := m.View()
	require.Contains(t, out, "Darth Vader")
	require.Contains(t, out, "empire")
	require.Contains(t, out, "unknown")

	press(t, m, viewMsg(app.View{
		Route:  "detail",
		Path:   "/character/3",
		ID:     3,
		Detail: app.DetailView{State: coordinator.Failed, Error: app.DetailErrorMessage},
	}))
	require.Contains(t, m.View(), app.DetailErrorMessage)
}

func TestModel_RendersListFailureAndEmpty(t *testing.T) {
	m := New(&fakeCore{})
	v := homeView("zz")
	v.List = app.ListView{State: coordinator.Failed, Items: []models.Character{}, Error: app.ListErrorMessage}
	press(t, m, viewMsg(v))
	require.Contains(t, m.View(), app.ListErrorMessage)

	press(t, m, viewMsg(homeView("zz")))
	require.Contains(t, m.View(), "No characters found.")
}

func TestModel_SpinnerStartsOnLoading(t *testing.T) {
	m := New(&fakeCore{})
	v := homeView("lu")
	v.List.State = coordinator.Loading

	_, cmd := m.Update(viewMsg(v))
	require.NotNil(t, cmd)
	require.True(t, m.spinning)

	_, cmd = m.Update(viewMsg(v))
	require.Nil(t, cmd)
}
