package navigation

import "sync"

// Router is the single source of truth for the active route. It is the only
// writer of its History and reports every route change through onRoute.
type Router struct {
	history History
	onRoute func(Route)

	mu       sync.Mutex
	current  Route
	unlisten func()
}

// New builds a Router over history. onRoute is called synchronously on every emission.
func New(history History, onRoute func(Route)) *Router {
	if onRoute == nil {
		onRoute = func(Route) {}
	}
	return &Router{
		history: history,
		onRoute: onRoute,
		current: ParsePath(history.Location()),
	}
}

type navigateOptions struct {
	replace bool
}

// NavigateOption tunes a single Navigate call.
type NavigateOption func(*navigateOptions)

// WithReplace replaces the current history entry instead of pushing a new one.
func WithReplace() NavigateOption {
	return func(o *navigateOptions) { o.replace = true }
}

// Start observes back/forward moves and emits the route of the current location.
// Calling Start twice without Stop is not supported.
func (r *Router) Start() {
	unlisten := r.history.Listen(func(string) { r.sync() })
	r.mu.Lock()
	r.unlisten = unlisten
	r.mu.Unlock()
	r.sync()
}

// Stop ends observation. Navigate still moves the history but emits nothing.
func (r *Router) Stop() {
	r.mu.Lock()
	unlisten := r.unlisten
	r.unlisten = nil
	r.mu.Unlock()
	if unlisten != nil {
		unlisten()
	}
}

// Navigate moves to path and emits the new route. A path equal to the current
// location is ignored.
func (r *Router) Navigate(path string, opts ...NavigateOption) {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	if path == "" {
		path = "/"
	}
	if r.history.Location() == path {
		return
	}
	if o.replace {
		r.history.Replace(path)
	} else {
		r.history.Push(path)
	}
	r.sync()
}

// Current returns the route of the current location.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) sync() {
	route := ParsePath(r.history.Location())
	r.mu.Lock()
	r.current = route
	active := r.unlisten != nil
	r.mu.Unlock()
	if active {
		r.onRoute(route)
	}
}
