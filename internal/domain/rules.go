package domain

// Lines lists every winning line as row-major indices, in scan order:
// rows, columns, main diagonal, anti-diagonal.
var Lines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// Player returns the side to move. Turn is never stored: an even number of
// filled cells means X moves, odd means O.
func Player(b Board) Cell {
    if b.Filled()%2 == 0 {
        return X
    }
    return O
}

// Actions returns every empty cell in row-major order. Treat the result as a
// set; nothing downstream may depend on the ordering for correctness.
func Actions(b Board) []Action {
    out := make([]Action, 0, 9-b.Filled())
    for i, c := range b {
        if c == Empty {
            out = append(out, Action{Row: i / 3, Col: i % 3})
        }
    }
    return out
}

// Result returns a copy of b with the side to move placed at a. The input is
// never modified.
func Result(b Board, a Action) (Board, error) {
    if !a.Valid() {
        return b, ErrOutOfBounds
    }
    idx := a.Index()
    if b[idx] != Empty {
        return b, ErrOccupied
    }
    b[idx] = Player(b)
    return b, nil
}

// WinningLine returns the first fully owned line under the Lines scan order.
func WinningLine(b Board) ([3]int, bool) {
    for _, ln := range Lines {
        if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
            return ln, true
        }
    }
    return [3]int{}, false
}

// Winner returns the owner of the first completed line, or Empty.
func Winner(b Board) Cell {
    if ln, ok := WinningLine(b); ok {
        return b[ln[0]]
    }
    return Empty
}

// Terminal reports whether someone has won or the board is full.
func Terminal(b Board) bool {
    return Winner(b) != Empty || b.Filled() == len(b)
}

// Utility scores a terminal board: +1 X won, -1 O won, 0 draw.
func Utility(b Board) (int, error) {
    switch Winner(b) {
    case X:
        return 1, nil
    case O:
        return -1, nil
    }
    if b.Filled() != len(b) {
        return 0, ErrNotTerminal
    }
    return 0, nil
}
