package domain

import (
    "errors"
    "testing"
)

func TestParseBoardRoundTrip(t *testing.T) {
    b := InitialState()
    b[0], b[4], b[8] = X, O, X
    s := b.String()
    if s != "X...O...X" {
        t.Fatalf("unexpected encoding %q", s)
    }
    got, err := ParseBoard(s)
    if err != nil || got != b {
        t.Fatalf("ParseBoard(%q) = %v, %v", s, got, err)
    }
}

func TestParseBoardSeparators(t *testing.T) {
    got, err := ParseBoard("x|o|-\n_|X|.\n. . o")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := Board{X, O, Empty, Empty, X, Empty, Empty, Empty, O}
    if got != want {
        t.Fatalf("expected %v, got %v", want, got)
    }
}

func TestParseBoardErrors(t *testing.T) {
    for _, s := range []string{"", "XO", "XXXXXXXXXX", "XOXOXOXOZ"} {
        if _, err := ParseBoard(s); !errors.Is(err, ErrBadBoard) {
            t.Fatalf("ParseBoard(%q): expected ErrBadBoard, got %v", s, err)
        }
    }
}

func TestCellHelpers(t *testing.T) {
    if X.Opponent() != O || O.Opponent() != X || Empty.Opponent() != Empty {
        t.Fatalf("unexpected opponents")
    }
    if c, err := ParseCell(" o "); err != nil || c != O {
        t.Fatalf("ParseCell: %v %v", c, err)
    }
    if _, err := ParseCell("z"); err == nil {
        t.Fatalf("expected error for unknown side")
    }
}

func TestActionIndex(t *testing.T) {
    for i := 0; i < 9; i++ {
        a := Action{Row: i / 3, Col: i % 3}
        if !a.Valid() || a.Index() != i {
            t.Fatalf("action %v: valid=%v index=%d", a, a.Valid(), a.Index())
        }
    }
    if (Action{Row: 2, Col: 3}).Valid() {
        t.Fatalf("expected (2,3) invalid")
    }
}
