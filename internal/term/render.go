// Package term plays tic-tac-toe in a terminal.
package term

import (
    "io"
    "strings"

    "github.com/muesli/termenv"

    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

// Renderer draws boards with colour when the output supports it.
type Renderer struct {
    out *termenv.Output
}

// NewRenderer detects the colour profile of w.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
    return &Renderer{out: termenv.NewOutput(w, opts...)}
}

func (r *Renderer) cell(b domain.Board, i int, winning bool) string {
    c := b[i]
    if c == domain.Empty {
        // Empty cells show their row-major number as a hint for input.
        return r.out.String(string(rune('1' + i))).Faint().String()
    }
    s := r.out.String(c.String()).Bold()
    if c == domain.X {
        s = s.Foreground(r.out.Color("9"))
    } else {
        s = s.Foreground(r.out.Color("12"))
    }
    if winning {
        s = s.Reverse()
    }
    return s.String()
}

// Render returns the board as three rows separated by rules.
func (r *Renderer) Render(b domain.Board) string {
    var win [9]bool
    if ln, ok := domain.WinningLine(b); ok {
        for _, i := range ln {
            win[i] = true
        }
    }
    var sb strings.Builder
    for row := 0; row < 3; row++ {
        if row > 0 {
            sb.WriteString("---+---+---\n")
        }
        for col := 0; col < 3; col++ {
            if col > 0 {
                sb.WriteString("|")
            }
            i := row*3 + col
            sb.WriteString(" " + r.cell(b, i, win[i]) + " ")
        }
        sb.WriteString("\n")
    }
    return sb.String()
}

// Outcome describes a terminal board.
func (r *Renderer) Outcome(b domain.Board) string {
    switch w := domain.Winner(b); w {
    case domain.Empty:
        return r.out.String("Draw.").Bold().String()
    default:
        return r.out.String(w.String() + " wins.").Bold().String()
    }
}
