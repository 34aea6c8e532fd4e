package handlers

import (
	"starfolk-client/internal/app"

	"go.trai.ch/zerr"
)

var (
	// ErrUnknownIntent is returned for an intent type the core does not handle.
	ErrUnknownIntent = zerr.New("unknown intent")
	// ErrInvalidIntent is returned when a known intent lacks a required field.
	ErrInvalidIntent = zerr.New("invalid intent")
)

// Intent types accepted from remote presentation clients.
const (
	IntentNavigate          = "navigate"
	IntentBack              = "back"
	IntentForward           = "forward"
	IntentSearchTextChanged = "search_text_changed"
	IntentSubmitSearch      = "submit_search"
	IntentClearSearch       = "clear_search"
	IntentItemSelected      = "item_selected"
	IntentReloadFeatured    = "reload_featured"
)

// Intent is one user action sent by a remote client.
type Intent struct {
	Type string `json:"type" binding:"required"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
	ID   int    `json:"id,omitempty"`
}

// ApplyIntent forwards in to a.
func ApplyIntent(a *app.App, in Intent) error {
	switch in.Type {
	case IntentNavigate:
		a.Navigate(in.Path)
	case IntentBack:
		a.Back()
	case IntentForward:
		a.Forward()
	case IntentSearchTextChanged:
		a.SearchTextChanged(in.Text)
	case IntentSubmitSearch:
		a.SubmitSearch()
	case IntentClearSearch:
		a.ClearSearch()
	case IntentItemSelected:
		if in.ID <= 0 {
			return zerr.With(zerr.Wrap(ErrInvalidIntent, "item_selected needs a positive id"), "id", in.ID)
		}
		a.ItemSelected(in.ID)
	case IntentReloadFeatured:
		a.ReloadFeatured()
	default:
		return zerr.With(zerr.Wrap(ErrUnknownIntent, "applying intent"), "type", in.Type)
	}
	return nil
}
