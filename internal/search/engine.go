package search

import (
    "math/rand"
    "sync"
    "time"

    "golang.org/x/sync/errgroup"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

// Openings are the corners and the center: every first move is equivalent to
// one of them under the board's symmetries, and all of them draw.
var Openings = [5]domain.Action{
    {Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 2},
}

// Chooser picks a uniform index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
    Intn(n int) int
}

// Engine decides moves. It is safe for concurrent use.
type Engine struct {
    mu       sync.Mutex
    chooser  Chooser
    parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallel evaluates root moves concurrently. Results are identical to the
// sequential search.
func WithParallel(on bool) Option {
    return func(e *Engine) { e.parallel = on }
}

// New returns an engine drawing opening moves from chooser. A nil chooser
// means a time-seeded source.
func New(chooser Chooser, opts ...Option) *Engine {
    if chooser == nil {
        chooser = rand.New(rand.NewSource(time.Now().UnixNano()))
    }
    e := &Engine{chooser: chooser}
    for _, opt := range opts {
        opt(e)
    }
    return e
}

// NewSeeded returns an engine with a deterministic opening source.
func NewSeeded(seed int64, opts ...Option) *Engine {
    return New(rand.New(rand.NewSource(seed)), opts...)
}

// Parallel reports whether root moves are searched concurrently.
func (e *Engine) Parallel() bool { return e.parallel }

// Evaluate scores every legal action of b, in the order domain.Actions
// yields them. The value of each entry is computed from the successor board
// with the opponent to move.
func (e *Engine) Evaluate(b domain.Board) ([]Scored, error) {
    if domain.Terminal(b) {
        return nil, domain.ErrGameOver
    }
    return e.evaluate(b, domain.Actions(b))
}

// evaluate scores actions in the given order.
func (e *Engine) evaluate(b domain.Board, actions []domain.Action) ([]Scored, error) {
    value := MinValue
    if domain.Player(b) == domain.O {
        value = MaxValue
    }
    scores := make([]Scored, len(actions))
    if !e.parallel {
        for i, a := range actions {
            next, err := domain.Result(b, a)
            if err != nil {
                return nil, err
            }
            scores[i] = Scored{Action: a, Value: value(next)}
        }
        return scores, nil
    }

    var g errgroup.Group
    for i, a := range actions {
        i, a := i, a
        g.Go(func() error {
            next, err := domain.Result(b, a)
            if err != nil {
                return err
            }
            scores[i] = Scored{Action: a, Value: value(next)}
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        return nil, err
    }
    return scores, nil
}

// Minimax returns the optimal action for the side to move on b. The empty
// board is answered with a random entry from Openings instead of a search.
func (e *Engine) Minimax(b domain.Board) (domain.Action, error) {
    if domain.Terminal(b) {
        return domain.Action{}, domain.ErrGameOver
    }
    if b == domain.InitialState() {
        return e.opening(), nil
    }
    scores, err := e.Evaluate(b)
    if err != nil {
        return domain.Action{}, err
    }
    act, _, _ := Best(domain.Player(b), scores)
    return act, nil
}

func (e *Engine) opening() domain.Action {
    e.mu.Lock()
    defer e.mu.Unlock()
    return Openings[e.chooser.Intn(len(Openings))]
}

var defaultEngine = New(nil)

// Minimax decides with a shared time-seeded engine.
func Minimax(b domain.Board) (domain.Action, error) {
    return defaultEngine.Minimax(b)
}
