package web

import (
    "bytes"
    "html/template"
    "net/http"

    "github.com/google/uuid"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
    index *template.Template
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>TicTacToe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>TicTacToe</h1>
<p class="seat">{{.Seat}}</p>
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-stream" hx-sse="swap:board">{{template "board" .Board}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Parse(boardTemplate))
    return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const indexTemplate = `<h1>TicTacToe</h1>
<form action="/game" method="post">
  <select name="mode">
    <option value="computer">against the computer</option>
    <option value="two-player">two players</option>
  </select>
  <select name="side">
    <option value="X">play X (first)</option>
    <option value="O">play O (second)</option>
  </select>
  <button>Create</button>
</form>`

const boardTemplate = `
<div id="board" data-status="{{.Status}}">
  <p class="status">{{.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="r" value="{{.Row}}">
        <input type="hidden" name="c" value="{{.Col}}">
        <button type="submit"{{if not .Playable}} disabled{{end}}{{if .Winning}} class="win"{{end}}>{{.Symbol}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
</div>
`

// Data models for templates
type cellView struct {
    Row, Col int
    Symbol   string
    Playable bool
    Winning  bool
}

type boardView struct {
    ID     string
    Status string
    Error  string
    Rows   [3][3]cellView
}

type pageData struct {
    ID    string
    Seat  string
    Board boardView
}

func newBoardView(gs app.GameState, errMsg string) boardView {
    v := boardView{ID: gs.ID, Status: gs.Status(), Error: errMsg}
    var win [9]bool
    if ln, ok := domain.WinningLine(gs.Board); ok {
        for _, i := range ln {
            win[i] = true
        }
    }
    over := gs.Over()
    for i, c := range gs.Board {
        sym := ""
        if c != domain.Empty {
            sym = c.String()
        }
        v.Rows[i/3][i%3] = cellView{
            Row:      i / 3,
            Col:      i % 3,
            Symbol:   sym,
            Playable: !over && c == domain.Empty,
            Winning:  win[i],
        }
    }
    return v
}

func seatLabel(side domain.Cell) string {
    if side == domain.Empty {
        return "You are watching"
    }
    return "You play " + side.String()
}

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
        return c.Value
    }
    // Generate UUIDv4 for player ID
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
    return v
}
