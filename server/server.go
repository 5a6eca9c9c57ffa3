package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/spades/config"
	"github.com/minaorangina/spades/deck"
	"github.com/minaorangina/spades/params"
	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/router"
	"github.com/minaorangina/spades/setup"
	"github.com/minaorangina/spades/store"
	"github.com/minaorangina/spades/views"
)

var (
	playParams = params.Schema{
		"variant": {Validate: params.Matches(`^(standard|whiz|suicide|free_for_all)$`)},
		"level":   {Validate: params.Matches(`^[1-5]$`), Parse: params.Int},
	}
	cardParams = params.Schema{
		"width": {Validate: params.Matches(`^[0-9]{1,3}$`), Parse: params.Int},
	}
)

type NewSessionRes struct {
	SessionID string                   `json:"session_id"`
	State     protocol.OutboundMessage `json:"state"`
}

// ServerOpts configures a GameServer
type ServerOpts struct {
	Config    config.Config
	Store     store.SessionStore
	SetupOpts func() setup.Opts
	LogOutput io.Writer
}

// GameServer serves the game's screens and live sessions
type GameServer struct {
	store     store.SessionStore
	routes    *router.Router
	views     *views.Renderer
	upgrader  websocket.Upgrader
	setupOpts func() setup.Opts
	cfg       config.Config
	http.Server
}

func unknownSessionIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown session ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) (*GameServer, error) {
	routes, err := router.Default()
	if err != nil {
		return nil, err
	}

	renderer, err := views.New(opts.Config.Version)
	if err != nil {
		return nil, err
	}

	s := &GameServer{
		store:     opts.Store,
		routes:    routes,
		views:     renderer,
		setupOpts: opts.SetupOpts,
		cfg:       opts.Config,
	}
	if s.store == nil {
		s.store = store.NewInMemorySessionStore()
	}
	if s.setupOpts == nil {
		s.setupOpts = func() setup.Opts {
			return setup.Opts{HandSize: opts.Config.HandSize}
		}
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins(opts.Config.AllowedOrigins)),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	mux := http.NewServeMux()

	mux.Handle("/", http.HandlerFunc(s.HandleScreen))
	mux.Handle("/card/", http.HandlerFunc(s.HandleCard))
	mux.Handle("/imgs/", http.FileServer(http.Dir(opts.Config.AssetsDir)))
	mux.Handle("/session", cors(http.HandlerFunc(s.HandleNewSession)))
	mux.Handle("/session/", cors(http.HandlerFunc(s.HandleSession)))
	mux.Handle("/ws", http.HandlerFunc(s.HandleWS))

	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stdout
	}

	s.Addr = opts.Config.Addr
	s.Handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(logOutput, mux),
	)

	return s, nil
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleScreen renders the screen routed for the request path
func (g *GameServer) HandleScreen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	route, err := g.routes.Resolve(r.URL.Path)
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := g.views.NotFound(w, r.URL.Path); err != nil {
			log.Println(err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch route.Screen {
	case "select_level":
		err = g.renderSelectLevel(w, r, route)
	case "play":
		err = g.renderPlay(w, r, route)
	default:
		if len(route.Menu) > 0 {
			err = g.views.Menu(w, route, "", nil)
		} else {
			err = g.views.Placeholder(w, route)
		}
	}

	if err != nil {
		log.Println(err.Error())
		http.Error(w, fmt.Sprintf("problem rendering %s: %s", route.Screen, err.Error()), http.StatusInternalServerError)
	}
}

func (g *GameServer) renderSelectLevel(w io.Writer, r *http.Request, route router.Route) error {
	variant, ok, err := playParams.String(r.URL.Query(), "variant")
	if err != nil || !ok {
		return g.views.Menu(w, route, "", nil)
	}

	items := make([]router.MenuItem, 0, len(route.Menu))
	for _, item := range route.Menu {
		items = append(items, router.MenuItem{
			Label: item.Label,
			To:    withQuery(item.To, "variant", variant),
		})
	}

	return g.views.Menu(w, route, setup.Variant(variant).Label(), items)
}

func (g *GameServer) renderPlay(w io.Writer, r *http.Request, route router.Route) error {
	query := r.URL.Query()
	details := []views.Detail{}

	if variant, ok, err := playParams.String(query, "variant"); err == nil && ok {
		details = append(details, views.Detail{Name: "Variant", Value: setup.Variant(variant).Label()})
	}
	if level, ok, err := playParams.Int(query, "level"); err == nil && ok {
		details = append(details, views.Detail{Name: "Level", Value: fmt.Sprint(level)})
	}

	return g.views.Placeholder(w, route, details...)
}

// HandleCard renders a single card image, e.g. /card/sa?width=120
func (g *GameServer) HandleCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/card/")
	card, err := deck.ParseCode(code)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(err.Error()))
		return
	}

	width := setup.DefaultCardWidth
	if n, ok, err := cardParams.Int(r.URL.Query(), "width"); err == nil && ok && n > 0 {
		width = n
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := g.views.Card(w, card, width, ""); err != nil {
		log.Println(err.Error())
	}
}

// HandleNewSession creates a new session
func (g *GameServer) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	session, err := store.NewSession(store.NewID(), g.setupOpts())
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddSession(session); err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, NewSessionRes{
		SessionID: session.ID(),
		State:     session.Snapshot(),
	})
}

// HandleSession returns or deletes an existing session
func (g *GameServer) HandleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/session/")
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing session ID"))
		return
	}

	session := g.store.FindSession(sessionID)
	if session == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownSessionIDMsg(sessionID)))
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Snapshot())
	case http.MethodDelete:
		if err := g.store.RemoveSession(sessionID); err != nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// HandleWS upgrades to a websocket carrying actions in and snapshots out
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing session ID"))
		return
	}

	session := g.store.FindSession(sessionID)
	if session == nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(unknownSessionIDMsg(sessionID)))
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		log.Println(err)
		return
	}

	newClient(conn, session, g.cfg.WriteTimeout).run()
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range allowedOrigins(g.cfg.AllowedOrigins) {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func withQuery(to, key, value string) string {
	u, err := url.Parse(to)
	if err != nil {
		return to
	}

	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()

	return u.String()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
