package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/minaorangina/spades/cx"
	"github.com/minaorangina/spades/deck"
	"github.com/minaorangina/spades/router"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pages = []string{"welcome", "placeholder", "notfound"}

// Detail is a labelled value shown on a placeholder screen
type Detail struct {
	Name  string
	Value string
}

type footer struct {
	Class   string
	Version string
}

type welcomePage struct {
	Title    string
	Subtitle string
	Menu     []router.MenuItem
	Footer   footer
}

type placeholderPage struct {
	Title   string
	Class   string
	Stub    string
	Details []Detail
	Footer  footer
}

type notFoundPage struct {
	Title  string
	Path   string
	Footer footer
}

type cardFragment struct {
	Card  deck.Card
	Width int
	Class string
}

// Renderer renders the game's screens
type Renderer struct {
	version string
	pages   map[string]*template.Template
}

// New parses the embedded templates. version is shown in every footer.
func New(version string) (*Renderer, error) {
	r := &Renderer{
		version: version,
		pages:   map[string]*template.Template{},
	}

	for _, page := range pages {
		tmpl, err := template.New(page).
			Funcs(template.FuncMap{"cx": cx.Cx}).
			ParseFS(templateFS, "templates/layout.tmpl", "templates/"+page+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Menu renders a menu screen. items replaces the route's own menu when non-nil.
func (r *Renderer) Menu(w io.Writer, route router.Route, subtitle string, items []router.MenuItem) error {
	if items == nil {
		items = route.Menu
	}

	return r.pages["welcome"].ExecuteTemplate(w, "layout", welcomePage{
		Title:    route.Title,
		Subtitle: subtitle,
		Menu:     items,
		Footer:   footer{Class: "WelcomeScreen-footer", Version: r.version},
	})
}

// Placeholder renders a screen that has no content yet
func (r *Renderer) Placeholder(w io.Writer, route router.Route, details ...Detail) error {
	return r.pages["placeholder"].ExecuteTemplate(w, "layout", placeholderPage{
		Title:   route.Title,
		Class:   "Placeholder-" + route.Screen,
		Stub:    route.Title + " Stub",
		Details: details,
		Footer:  footer{Class: "Placeholder-footer", Version: r.version},
	})
}

// NotFound renders the page for unrouted paths
func (r *Renderer) NotFound(w io.Writer, path string) error {
	return r.pages["notfound"].ExecuteTemplate(w, "layout", notFoundPage{
		Title:  "Not found",
		Path:   path,
		Footer: footer{Class: "NotFound-footer", Version: r.version},
	})
}

// Card renders a single card image
func (r *Renderer) Card(w io.Writer, card deck.Card, width int, class string) error {
	return r.pages["welcome"].ExecuteTemplate(w, "card", cardFragment{
		Card:  card,
		Width: width,
		Class: class,
	})
}
