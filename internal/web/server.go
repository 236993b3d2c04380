package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/rs/zerolog"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/logging"
)

// Options tune the HTTP layer.
type Options struct {
    Logger    zerolog.Logger
    Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment as the service's broadcast payload.
func NewServer(s *app.Service, opts Options) http.Handler {
    if opts.Heartbeat <= 0 {
        opts.Heartbeat = 15 * time.Second
    }
    h := &handlers{svc: s, tpl: loadTemplates(), log: opts.Logger, heartbeat: opts.Heartbeat}
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(middleware.Recoverer)
    r.Use(logging.Middleware(opts.Logger))
    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/join", h.join)
        r.Post("/play", h.play)
        r.Get("/events", h.events)
        r.Get("/ws", h.stream)
    })
    r.Route("/api", func(r chi.Router) {
        r.Get("/game/{id}", h.apiGame)
        r.Post("/minimax", h.apiMinimax)
        r.Post("/result", h.apiResult)
    })
    return r
}
