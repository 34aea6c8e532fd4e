package app

import (
	"starfolk-client/internal/coordinator"
	"starfolk-client/internal/models"
	"starfolk-client/internal/navigation"
)

// Messages shown for a failed view. Failure kinds are not told apart.
const (
	ListErrorMessage     = "Failed to load characters."
	DetailErrorMessage   = "Could not load character."
	FeaturedErrorMessage = "Could not load featured characters."
)

// EventType names the part of the view that changed.
type EventType string

const (
	EventRoute    EventType = "route"
	EventSearch   EventType = "search"
	EventDetail   EventType = "detail"
	EventFeatured EventType = "featured"
)

// Event reports a change together with the view as it is after the change.
type Event struct {
	Type EventType `json:"type"`
	View View      `json:"view"`
}

// ListView is the presented state of a character list.
type ListView struct {
	State coordinator.State  `json:"state"`
	Items []models.Character `json:"items"`
	Error string             `json:"error,omitempty"`
}

// DetailView is the presented state of the character profile.
type DetailView struct {
	State     coordinator.State `json:"state"`
	Character *models.Character `json:"character"`
	Error     string            `json:"error,omitempty"`
}

// View is everything a presentation layer needs to render the application.
type View struct {
	Route      string     `json:"route"`
	Path       string     `json:"path"`
	ID         int        `json:"id,omitempty"`
	SearchText string     `json:"search_text"`
	Query      string     `json:"query"`
	ShowList   bool       `json:"show_list"`
	List       ListView   `json:"list"`
	Detail     DetailView `json:"detail"`
	Featured   ListView   `json:"featured"`
}

func listView(snap coordinator.Snapshot[[]models.Character], failMsg string) ListView {
	v := ListView{State: snap.State, Items: snap.Data}
	if v.Items == nil {
		v.Items = []models.Character{}
	}
	if snap.State == coordinator.Failed {
		v.Error = failMsg
	}
	return v
}

func detailView(snap coordinator.Snapshot[*models.Character]) DetailView {
	v := DetailView{State: snap.State, Character: snap.Data}
	if snap.State == coordinator.Failed {
		v.Error = DetailErrorMessage
	}
	return v
}

// View returns the presented state.
func (a *App) View() View {
	route := a.router.Current()
	query := a.currentQuery()
	return View{
		Route:      route.Kind.String(),
		Path:       route.Path(),
		ID:         route.ID,
		SearchText: a.input.Text(),
		Query:      query,
		ShowList:   showList(route, query),
		List:       listView(a.search.Snapshot(), ListErrorMessage),
		Detail:     detailView(a.detail.Snapshot()),
		Featured:   listView(a.featured.Snapshot(), FeaturedErrorMessage),
	}
}

func showList(route navigation.Route, query string) bool {
	return route.Kind == navigation.Home && query != ""
}
