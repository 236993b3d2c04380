package web

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/search"
)

type stateJSON struct {
    ID       string         `json:"id,omitempty"`
    Board    string         `json:"board"`
    Turn     string         `json:"turn"`
    Winner   string         `json:"winner,omitempty"`
    Terminal bool           `json:"terminal"`
    Utility  *int           `json:"utility,omitempty"`
    Status   string         `json:"status,omitempty"`
    Mode     string         `json:"mode,omitempty"`
    Computer string         `json:"computer,omitempty"`
    Last     *domain.Action `json:"last,omitempty"`
}

func boardJSON(b domain.Board) stateJSON {
    st := stateJSON{Board: b.String(), Turn: domain.Player(b).String(), Terminal: domain.Terminal(b)}
    if w := domain.Winner(b); w != domain.Empty {
        st.Winner = w.String()
    }
    if u, err := domain.Utility(b); err == nil {
        st.Utility = &u
    }
    return st
}

func gameJSON(gs app.GameState) stateJSON {
    st := boardJSON(gs.Board)
    st.ID = gs.ID
    st.Status = gs.Status()
    st.Mode = gs.Mode.String()
    if gs.Computer != domain.Empty {
        st.Computer = gs.Computer.String()
    }
    if gs.HasLast {
        last := gs.Last
        st.Last = &last
    }
    return st
}

type errorJSON struct {
    Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
    status := http.StatusBadRequest
    switch {
    case errors.Is(err, app.ErrNotFound):
        status = http.StatusNotFound
    case errors.Is(err, domain.ErrOccupied), errors.Is(err, domain.ErrGameOver):
        status = http.StatusConflict
    }
    writeJSON(w, status, errorJSON{Error: err.Error()})
}

func (h *handlers) apiGame(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        writeError(w, app.ErrNotFound)
        return
    }
    writeJSON(w, http.StatusOK, gameJSON(*gs))
}

type minimaxRequest struct {
    Board string `json:"board"`
}

type minimaxResponse struct {
    domain.Action
    Player string          `json:"player"`
    Value  *int            `json:"value,omitempty"`
    Scores []search.Scored `json:"scores,omitempty"`
}

// apiMinimax answers the best move for the side to move. Scores are omitted
// for the empty board, which is answered without a search.
func (h *handlers) apiMinimax(w http.ResponseWriter, r *http.Request) {
    var req minimaxRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, err)
        return
    }
    b, err := domain.ParseBoard(req.Board)
    if err != nil {
        writeError(w, err)
        return
    }
    eng := h.svc.Engine()
    resp := minimaxResponse{Player: domain.Player(b).String()}
    if b == domain.InitialState() {
        if resp.Action, err = eng.Minimax(b); err != nil {
            writeError(w, err)
            return
        }
        writeJSON(w, http.StatusOK, resp)
        return
    }
    scores, err := eng.Evaluate(b)
    if err != nil {
        writeError(w, err)
        return
    }
    act, v, _ := search.Best(domain.Player(b), scores)
    resp.Action, resp.Value, resp.Scores = act, &v, scores
    writeJSON(w, http.StatusOK, resp)
}

type resultRequest struct {
    Board string `json:"board"`
    Row   int    `json:"row"`
    Col   int    `json:"col"`
}

func (h *handlers) apiResult(w http.ResponseWriter, r *http.Request) {
    var req resultRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, err)
        return
    }
    b, err := domain.ParseBoard(req.Board)
    if err != nil {
        writeError(w, err)
        return
    }
    next, err := domain.Result(b, domain.Action{Row: req.Row, Col: req.Col})
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, boardJSON(next))
}
