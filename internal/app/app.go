// Package app is the root view: it owns the router and the view coordinators
// and decides which coordinator is active for the current route and query.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"starfolk-client/internal/coordinator"
	"starfolk-client/internal/fetch"
	"starfolk-client/internal/models"
	"starfolk-client/internal/navigation"

	"go.trai.ch/zerr"
)

// Options tunes an App.
type Options struct {
	InitialPath    string
	MinQueryLength int
	Debounce       time.Duration
	Logger         *slog.Logger
}

// App applies user intents one at a time and reports every visible change to
// its subscribers.
type App struct {
	history  *navigation.MemoryHistory
	router   *navigation.Router
	search   *coordinator.Search
	detail   *coordinator.Detail
	featured *coordinator.Featured
	input    *coordinator.SearchInput
	logger   *slog.Logger

	// serial orders intents, route changes and debounced queries.
	serial  sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	stateMu sync.Mutex
	query   string

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New builds a stopped App over catalog.
func New(catalog coordinator.Catalog, opts Options) *App {
	a := &App{
		logger: opts.Logger,
		subs:   make(map[int]func(Event)),
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.history = navigation.NewMemoryHistory(opts.InitialPath)
	a.router = navigation.New(a.history, a.handleRoute)
	a.search = coordinator.NewSearch(catalog, opts.MinQueryLength, func(s coordinator.Snapshot[[]models.Character]) {
		a.reportFailure("search", s.Err)
		a.publish(EventSearch)
	})
	a.detail = coordinator.NewDetail(catalog, func(s coordinator.Snapshot[*models.Character]) {
		a.reportFailure("detail", s.Err)
		a.publish(EventDetail)
	})
	a.featured = coordinator.NewFeatured(catalog, func(s coordinator.Snapshot[[]models.Character]) {
		a.reportFailure("featured", s.Err)
		a.publish(EventFeatured)
	})
	a.input = coordinator.NewSearchInput(opts.Debounce, a.onSearch)
	return a
}

// Start evaluates the current location and loads the featured set.
func (a *App) Start() {
	a.serial.Lock()
	defer a.serial.Unlock()

	if a.started {
		return
	}
	if a.ctx.Err() != nil {
		a.ctx, a.cancel = context.WithCancel(context.Background())
	}
	a.started = true
	a.router.Start()
	a.featured.Load(a.ctx)
}

// Stop ends route observation, drops a pending query and cancels every request in flight.
func (a *App) Stop() {
	a.serial.Lock()
	defer a.serial.Unlock()

	if !a.started {
		return
	}
	a.started = false
	a.router.Stop()
	a.input.Stop()
	a.cancel()
}

// Wait blocks until every request started by the coordinators has returned.
func (a *App) Wait() {
	a.search.Wait()
	a.detail.Wait()
	a.featured.Wait()
}

// Navigate moves to path.
func (a *App) Navigate(path string) {
	a.serial.Lock()
	defer a.serial.Unlock()
	a.router.Navigate(path)
}

// Back moves one history entry back. It reports false at the first entry.
func (a *App) Back() bool {
	a.serial.Lock()
	defer a.serial.Unlock()
	return a.history.Back()
}

// Forward moves one history entry forward. It reports false at the last entry.
func (a *App) Forward() bool {
	a.serial.Lock()
	defer a.serial.Unlock()
	return a.history.Forward()
}

// ItemSelected opens the profile of character id.
func (a *App) ItemSelected(id int) {
	a.Navigate(navigation.DetailPath(id))
}

// SearchTextChanged records the search box content; the query follows after the debounce window.
func (a *App) SearchTextChanged(text string) {
	a.input.TextChanged(text)
	a.publish(EventSearch)
}

// SubmitSearch applies the search box content immediately.
func (a *App) SubmitSearch() {
	a.input.Submit()
}

// ClearSearch empties the search box and the query.
func (a *App) ClearSearch() {
	a.input.Clear()
}

// ReloadFeatured fetches the featured set again.
func (a *App) ReloadFeatured() {
	a.serial.Lock()
	defer a.serial.Unlock()
	a.featured.Reload(a.ctx)
}

// Route returns the active route.
func (a *App) Route() navigation.Route {
	return a.router.Current()
}

// History exposes the back/forward stack.
func (a *App) History() *navigation.MemoryHistory {
	return a.history
}

// onSearch receives emitted queries from the search input.
func (a *App) onSearch(q string) {
	a.serial.Lock()
	defer a.serial.Unlock()

	a.stateMu.Lock()
	a.query = q
	a.stateMu.Unlock()

	route := a.router.Current()
	hasQuery := q != ""
	switch {
	case hasQuery && route.Kind != navigation.Home:
		// typing from another view brings the list back in place of that view
		a.router.Navigate("/", navigation.WithReplace())
	case !hasQuery && route.Kind == navigation.Detail:
		a.router.Navigate("/")
	default:
		a.refreshList(route)
	}
	a.publish(EventSearch)
}

// handleRoute runs with serial held: route changes only come from intents.
func (a *App) handleRoute(route navigation.Route) {
	a.logger.Debug("route changed", "route", route.String())

	if route.Kind == navigation.Detail {
		a.detail.Show(a.ctx, route.ID)
	} else {
		a.detail.Deactivate()
	}
	a.refreshList(route)
	a.publish(EventRoute)
}

func (a *App) refreshList(route navigation.Route) {
	q := a.currentQuery()
	if showList(route, q) {
		a.search.SetQuery(a.ctx, q)
		return
	}
	a.search.Deactivate()
}

func (a *App) currentQuery() string {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return a.query
}

func (a *App) reportFailure(view string, err error) {
	if err == nil {
		return
	}
	// completions arrive on their own goroutines; a.ctx belongs to the intent path
	zerr.Log(context.Background(), a.logger, zerr.With(zerr.Wrap(err, view+" failed"), "kind", fetch.KindOf(err).String()))
}

// Subscribe registers fn for every Event. fn runs on the goroutine that caused the
// change and must not call back into the App.
func (a *App) Subscribe(fn func(Event)) (unsubscribe func()) {
	a.subMu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	a.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.subMu.Lock()
			delete(a.subs, id)
			a.subMu.Unlock()
		})
	}
}

func (a *App) publish(t EventType) {
	a.subMu.Lock()
	if len(a.subs) == 0 {
		a.subMu.Unlock()
		return
	}
	fns := make([]func(Event), 0, len(a.subs))
	for _, fn := range a.subs {
		fns = append(fns, fn)
	}
	a.subMu.Unlock()

	ev := Event{Type: t, View: a.View()}
	for _, fn := range fns {
		fn(ev)
	}
}
