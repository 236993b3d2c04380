// Package search implements exhaustive minimax over tic-tac-toe boards.
//
// X is the maximizing player and O the minimizing one. There is no pruning,
// caching or depth limit; the 3x3 board bounds the tree at nine plies.
package search

import (
    "math"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

// MaxValue is the best outcome X can force from b.
func MaxValue(b domain.Board) int {
    if domain.Terminal(b) {
        u, _ := domain.Utility(b)
        return u
    }
    v := math.MinInt
    for _, a := range domain.Actions(b) {
        next, _ := domain.Result(b, a)
        v = max(v, MinValue(next))
    }
    return v
}

// MinValue is the best outcome O can force from b.
func MinValue(b domain.Board) int {
    if domain.Terminal(b) {
        u, _ := domain.Utility(b)
        return u
    }
    v := math.MaxInt
    for _, a := range domain.Actions(b) {
        next, _ := domain.Result(b, a)
        v = min(v, MaxValue(next))
    }
    return v
}

// Scored pairs a legal action with the minimax value of the board it leads to.
type Scored struct {
    Action domain.Action `json:"action"`
    Value  int           `json:"value"`
}

// Best picks the action optimal for player among scores. Ties go to the last
// candidate that is >= (X) or <= (O) the running best.
func Best(player domain.Cell, scores []Scored) (domain.Action, int, bool) {
    if len(scores) == 0 {
        return domain.Action{}, 0, false
    }
    var act domain.Action
    if player == domain.X {
        v := math.MinInt
        for _, s := range scores {
            if s.Value >= v {
                v = s.Value
                act = s.Action
            }
        }
        return act, v, true
    }
    v := math.MaxInt
    for _, s := range scores {
        if s.Value <= v {
            v = s.Value
            act = s.Action
        }
    }
    return act, v, true
}
