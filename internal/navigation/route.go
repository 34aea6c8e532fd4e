// Package navigation maps address paths to the active logical view and keeps
// them in step with a history stack.
package navigation

import (
	"strconv"
	"strings"
)

// Kind identifies the logical view selected by a route.
type Kind int

const (
	Home Kind = iota
	About
	Detail
)

func (k Kind) String() string {
	switch k {
	case About:
		return "about"
	case Detail:
		return "detail"
	default:
		return "home"
	}
}

// Route is the active logical view. ID is set only for Detail.
type Route struct {
	Kind Kind
	ID   int
}

// Canonical paths of the fixed routes.
const (
	HomePath  = "/"
	AboutPath = "/about"
)

const detailPrefix = "/character/"

// ParsePath derives a Route from a path. It is total: anything it does not
// recognize is Home.
func ParsePath(path string) Route {
	switch path {
	case "", HomePath:
		return Route{Kind: Home}
	case AboutPath:
		return Route{Kind: About}
	}

	rest, ok := strings.CutPrefix(path, detailPrefix)
	if !ok || rest == "" {
		return Route{Kind: Home}
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return Route{Kind: Home}
		}
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return Route{Kind: Home}
	}
	return Route{Kind: Detail, ID: id}
}

// DetailPath is the canonical path of a character's detail view.
func DetailPath(id int) string {
	return detailPrefix + strconv.Itoa(id)
}

// Path renders the canonical path of r.
func (r Route) Path() string {
	switch r.Kind {
	case About:
		return AboutPath
	case Detail:
		return DetailPath(r.ID)
	default:
		return HomePath
	}
}

func (r Route) String() string {
	if r.Kind == Detail {
		return "detail(" + strconv.Itoa(r.ID) + ")"
	}
	return r.Kind.String()
}
