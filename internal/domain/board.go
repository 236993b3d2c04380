package domain

import (
    "errors"
    "fmt"
    "strings"
)

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return "."
    }
}

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

// ParseCell accepts "X", "O" (any case) and returns the matching player.
func ParseCell(s string) (Cell, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "X":
        return X, nil
    case "O":
        return O, nil
    }
    return Empty, fmt.Errorf("unknown side %q", s)
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Action names the cell at Row, Col (0..2) to be filled by the side to move.
type Action struct {
    Row int `json:"row"`
    Col int `json:"col"`
}

// Valid reports whether the action lies on the board.
func (a Action) Valid() bool {
    return a.Row >= 0 && a.Row <= 2 && a.Col >= 0 && a.Col <= 2
}

// Index is the row-major offset of the action.
func (a Action) Index() int { return a.Row*3 + a.Col }

func (a Action) String() string { return fmt.Sprintf("(%d,%d)", a.Row, a.Col) }

// Errors returned by domain operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
    ErrGameOver    = errors.New("game over")
    ErrNotTerminal = errors.New("game not over")
    ErrBadBoard    = errors.New("malformed board")
)

// InitialState returns the empty board.
func InitialState() Board {
    return Board{}
}

// At returns the cell at row r, column c.
func (b Board) At(r, c int) Cell { return b[r*3+c] }

// Filled counts occupied cells.
func (b Board) Filled() int {
    n := 0
    for _, c := range b {
        if c != Empty {
            n++
        }
    }
    return n
}

// String encodes the board as nine characters, row-major, using X, O and '.'.
func (b Board) String() string {
    var sb strings.Builder
    sb.Grow(9)
    for _, c := range b {
        sb.WriteString(c.String())
    }
    return sb.String()
}

// ParseBoard decodes the format produced by Board.String. Spaces, newlines and
// '|' separators are ignored; '-', '_' and '.' all mean an empty cell.
func ParseBoard(s string) (Board, error) {
    var b Board
    i := 0
    for _, r := range s {
        var c Cell
        switch r {
        case ' ', '\t', '\n', '\r', '|':
            continue
        case 'x', 'X':
            c = X
        case 'o', 'O':
            c = O
        case '.', '-', '_':
            c = Empty
        default:
            return Board{}, fmt.Errorf("%w: unexpected %q", ErrBadBoard, r)
        }
        if i == len(b) {
            return Board{}, fmt.Errorf("%w: more than 9 cells", ErrBadBoard)
        }
        b[i] = c
        i++
    }
    if i != len(b) {
        return Board{}, fmt.Errorf("%w: got %d cells, want 9", ErrBadBoard, i)
    }
    return b, nil
}
