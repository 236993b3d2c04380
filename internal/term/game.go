package term

import (
    "bufio"
    "errors"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/search"
)

// ErrQuit is returned when the player ends input early.
var ErrQuit = errors.New("quit")

// ParseMove reads a cell number 1-9, or a "row col" pair counted from 0.
func ParseMove(s string) (domain.Action, error) {
    f := strings.Fields(s)
    switch len(f) {
    case 1:
        n, err := strconv.Atoi(f[0])
        if err != nil || n < 1 || n > 9 {
            return domain.Action{}, fmt.Errorf("%q: want a cell number 1-9", s)
        }
        return domain.Action{Row: (n - 1) / 3, Col: (n - 1) % 3}, nil
    case 2:
        r, err1 := strconv.Atoi(f[0])
        c, err2 := strconv.Atoi(f[1])
        if err1 != nil || err2 != nil {
            return domain.Action{}, fmt.Errorf("%q: want \"row col\"", s)
        }
        a := domain.Action{Row: r, Col: c}
        if !a.Valid() {
            return domain.Action{}, domain.ErrOutOfBounds
        }
        return a, nil
    }
    return domain.Action{}, fmt.Errorf("%q: want a cell number 1-9 or \"row col\"", s)
}

// Play runs a human against eng until the game ends. The human moves as side
// and types moves on in; "q" quits with ErrQuit.
func Play(in io.Reader, out io.Writer, r *Renderer, eng *search.Engine, side domain.Cell) (domain.Board, error) {
    b := domain.InitialState()
    sc := bufio.NewScanner(in)
    for !domain.Terminal(b) {
        fmt.Fprint(out, r.Render(b))
        if domain.Player(b) != side {
            a, err := eng.Minimax(b)
            if err != nil {
                return b, err
            }
            if b, err = domain.Result(b, a); err != nil {
                return b, err
            }
            fmt.Fprintf(out, "computer plays %d\n\n", a.Index()+1)
            continue
        }
        fmt.Fprintf(out, "%v to move> ", side)
        if !sc.Scan() {
            if err := sc.Err(); err != nil {
                return b, err
            }
            return b, ErrQuit
        }
        line := strings.TrimSpace(sc.Text())
        if line == "q" || line == "quit" {
            return b, ErrQuit
        }
        a, err := ParseMove(line)
        if err != nil {
            fmt.Fprintf(out, "invalid move: %v\n", err)
            continue
        }
        next, err := domain.Result(b, a)
        if err != nil {
            fmt.Fprintf(out, "invalid move: %v\n", err)
            continue
        }
        b = next
    }
    fmt.Fprint(out, r.Render(b))
    fmt.Fprintln(out, r.Outcome(b))
    return b, nil
}

// SelfPlay lets eng play both sides from the empty board and returns the final
// board with the moves in order.
func SelfPlay(eng *search.Engine) (domain.Board, []domain.Action, error) {
    b := domain.InitialState()
    var moves []domain.Action
    for !domain.Terminal(b) {
        a, err := eng.Minimax(b)
        if err != nil {
            return b, moves, err
        }
        if b, err = domain.Result(b, a); err != nil {
            return b, moves, err
        }
        moves = append(moves, a)
    }
    return b, moves, nil
}
