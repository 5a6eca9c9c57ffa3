package router

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound      = errors.New("no route for path")
	ErrDuplicatePath = errors.New("path routed more than once")
	ErrMissingScreen = errors.New("route has no screen")
)

//go:embed screens.yaml
var defaultScreens []byte

// MenuItem is a link on a menu screen
type MenuItem struct {
	Label string `yaml:"label"`
	To    string `yaml:"to"`
}

// Route maps a path to the screen rendered for it
type Route struct {
	Path   string     `yaml:"path"`
	Screen string     `yaml:"screen"`
	Title  string     `yaml:"title"`
	Menu   []MenuItem `yaml:"menu"`
}

// Router resolves locations to routes
type Router struct {
	routes []Route
	byPath map[string]int
}

type table struct {
	Routes []Route `yaml:"routes"`
}

// New builds a Router from a YAML route table
func New(data []byte) (*Router, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}

	r := &Router{
		routes: t.Routes,
		byPath: make(map[string]int, len(t.Routes)),
	}

	for i, route := range t.Routes {
		if route.Screen == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingScreen, route.Path)
		}
		path := Normalize(route.Path)
		if _, exists := r.byPath[path]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, path)
		}
		r.routes[i].Path = path
		r.byPath[path] = i
	}

	return r, nil
}

// Default returns the Router for the built-in screens
func Default() (*Router, error) {
	return New(defaultScreens)
}

// Routes returns every route in table order
func (r *Router) Routes() []Route {
	routes := make([]Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// Resolve finds the route for a path or hash fragment
func (r *Router) Resolve(location string) (Route, error) {
	path := Normalize(location)

	i, ok := r.byPath[path]
	if !ok {
		return Route{}, fmt.Errorf("%w %q", ErrNotFound, path)
	}
	return r.routes[i], nil
}

// Normalize turns a path or hash fragment into a route path.
// "", "#" and "#/" all resolve to "/"; query strings are dropped.
func Normalize(location string) string {
	path := strings.TrimPrefix(location, "#")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
