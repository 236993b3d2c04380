package app

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/rs/zerolog"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/search"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
    ErrBadSide     = errors.New("side must be X or O")
)

// Mode selects who fills the second seat.
type Mode uint8

const (
    TwoPlayer Mode = iota
    VsComputer
)

// GameState is the in-memory state tracked per game. Turn, winner and
// game-over are all derived from Board.
type GameState struct {
    ID       string
    Board    domain.Board
    Mode     Mode
    Computer domain.Cell
    X        string
    O        string
    Last     domain.Action
    HasLast  bool
    Created  time.Time
    Updated  time.Time
}

// Turn is the side to move.
func (gs GameState) Turn() domain.Cell { return domain.Player(gs.Board) }

// Winner is the side owning a full line, or Empty.
func (gs GameState) Winner() domain.Cell { return domain.Winner(gs.Board) }

// Over reports whether the game has ended.
func (gs GameState) Over() bool { return domain.Terminal(gs.Board) }

// Moves counts the marks on the board.
func (gs GameState) Moves() int { return gs.Board.Filled() }

// Status is a short human-readable summary.
func (gs GameState) Status() string {
    switch {
    case gs.Winner() != domain.Empty:
        return gs.Winner().String() + " wins"
    case gs.Over():
        return "draw"
    default:
        return gs.Turn().String() + " to move"
    }
}

// Seat returns the player ID holding side.
func (gs GameState) Seat(side domain.Cell) string {
    switch side {
    case domain.X:
        return gs.X
    case domain.O:
        return gs.O
    }
    return ""
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte
    engine *search.Engine
    mover  Mover
    log    zerolog.Logger
}

// Mover picks the computer's move. *search.Engine satisfies it.
type Mover interface {
    Minimax(b domain.Board) (domain.Action, error)
}

// Option configures a Service.
type Option func(*Service)

// WithEngine sets the engine that plays the computer seat.
func WithEngine(e *search.Engine) Option {
    return func(s *Service) {
        if e != nil {
            s.engine = e
        }
    }
}

// WithMover overrides the move source for the computer seat. The engine
// returned by Engine is unaffected.
func WithMover(m Mover) Option {
    return func(s *Service) { s.mover = m }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
    return func(s *Service) { s.log = l }
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(opts ...Option) *Service { return NewServiceWithRenderer(nil, opts...) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte, opts ...Option) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    s := &Service{
        games:  make(map[string]*GameState),
        subs:   make(map[string]map[*subscriber]struct{}),
        render: renderer,
        log:    zerolog.Nop(),
    }
    for _, opt := range opts {
        opt(s)
    }
    if s.engine == nil {
        s.engine = search.New(nil)
    }
    if s.mover == nil {
        s.mover = s.engine
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// Engine returns the engine playing the computer seat.
func (s *Service) Engine() *search.Engine { return s.engine }

// CreateGame creates and registers a new game. In VsComputer mode human is the
// side left for people; the engine takes the other seat and, as X, opens
// immediately.
func (s *Service) CreateGame(mode Mode, human domain.Cell) (*GameState, error) {
    now := time.Now()
    gs := &GameState{ID: newGameID(), Mode: mode, Created: now, Updated: now}
    if mode == VsComputer {
        if human != domain.X && human != domain.O {
            return nil, ErrBadSide
        }
        gs.Computer = human.Opponent()
        if gs.Computer == domain.X {
            gs.X = ComputerID
        } else {
            gs.O = ComputerID
        }
        if a, think, err := s.decide(*gs); err != nil {
            return nil, err
        } else if think {
            if err := s.applyReply(gs, a); err != nil {
                return nil, err
            }
        }
    }

    s.mu.Lock()
    defer s.mu.Unlock()
    s.games[gs.ID] = gs
    s.log.Info().Str("game", gs.ID).Str("mode", mode.String()).Str("computer", gs.Computer.String()).Msg("game created")
    cp := *gs
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := *gs
    return &cp, true
}

// Join assigns a seat to the player if available; returns Empty for spectators.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return domain.Empty, nil, ErrNotFound
    }
    side := domain.Empty
    if gs.X == "" || gs.X == playerID {
        gs.X = playerID
        side = domain.X
    } else if gs.O == "" || gs.O == playerID {
        gs.O = playerID
        side = domain.O
    }
    gs.Updated = time.Now()
    cp := *gs
    return side, &cp, nil
}

// Play validates seat and turn, applies a move, lets the computer answer,
// updates timestamps, and broadcasts. The computer's search runs without the
// service lock.
func (s *Service) Play(id, playerID string, r, c int) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    // Validate player is seated
    var seat domain.Cell
    if gs.X == playerID {
        seat = domain.X
    } else if gs.O == playerID {
        seat = domain.O
    } else {
        s.mu.Unlock()
        return nil, ErrNotAPlayer
    }
    if gs.Over() {
        s.mu.Unlock()
        return nil, domain.ErrGameOver
    }
    // Validate turn
    if seat != gs.Turn() {
        s.mu.Unlock()
        return nil, ErrNotYourTurn
    }
    // Apply move
    a := domain.Action{Row: r, Col: c}
    next, err := domain.Result(gs.Board, a)
    if err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Board, gs.Last, gs.HasLast = next, a, true
    gs.Updated = time.Now()
    snapshot := *gs
    s.mu.Unlock()
    s.log.Debug().Str("game", id).Str("side", seat.String()).Stringer("action", a).Msg("move played")

    reply, think, replyErr := s.decide(snapshot)

    s.mu.Lock()
    defer s.mu.Unlock()
    // Only the computer can move now, so a changed board means a second
    // reply already landed.
    if think && replyErr == nil && gs.Board == snapshot.Board {
        replyErr = s.applyReply(gs, reply)
        gs.Updated = time.Now()
    }
    if gs.Over() {
        s.log.Info().Str("game", id).Str("status", gs.Status()).Msg("game finished")
    }
    cp := *gs
    s.broadcastLocked(id, s.render(cp))
    if replyErr != nil {
        return nil, replyErr
    }
    return &cp, nil
}

// decide runs the engine when the computer is to move on gs.
func (s *Service) decide(gs GameState) (domain.Action, bool, error) {
    if gs.Computer == domain.Empty || gs.Over() || gs.Turn() != gs.Computer {
        return domain.Action{}, false, nil
    }
    a, err := s.mover.Minimax(gs.Board)
    if err != nil {
        return domain.Action{}, true, fmt.Errorf("computer move: %w", err)
    }
    return a, true, nil
}

func (s *Service) applyReply(gs *GameState, a domain.Action) error {
    next, err := domain.Result(gs.Board, a)
    if err != nil {
        return fmt.Errorf("computer move %v: %w", a, err)
    }
    gs.Board, gs.Last, gs.HasLast = next, a, true
    s.log.Debug().Str("game", gs.ID).Str("side", gs.Computer.String()).Stringer("action", a).Msg("computer moved")
    return nil
}

// broadcastLocked fans payload out to the game's subscribers, closing and
// dropping any whose buffer is full. Channels are only closed under s.mu, so a
// send never races a close.
func (s *Service) broadcastLocked(id string, payload []byte) {
    set := s.subs[id]
    dropped := 0
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            delete(set, sub)
            dropped++
        }
    }
    if dropped > 0 {
        s.log.Debug().Str("game", id).Int("dropped", dropped).Msg("slow subscribers dropped")
    }
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 1)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            defer s.mu.Unlock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
                if len(set) == 0 {
                    delete(s.subs, id)
                }
            }
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}

func (m Mode) String() string {
    if m == VsComputer {
        return "computer"
    }
    return "two-player"
}

// ParseMode accepts "computer" or "two-player".
func ParseMode(s string) (Mode, error) {
    switch s {
    case "computer", "":
        return VsComputer, nil
    case "two-player", "pvp":
        return TwoPlayer, nil
    }
    return TwoPlayer, fmt.Errorf("unknown mode %q", s)
}
