package web

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/gorilla/websocket"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
)

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
    req := httptest.NewRequest("POST", path, strings.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    return rr
}

func TestAPIMinimaxImmediateWin(t *testing.T) {
    _, h := newTestServer(t)
    rr := postJSON(h, "/api/minimax", `{"board":"XX.OO...."}`)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
    }
    var resp minimaxResponse
    if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if resp.Action != (domain.Action{Row: 0, Col: 2}) || resp.Player != "X" {
        t.Fatalf("expected X at (0,2), got %+v", resp)
    }
    if resp.Value == nil || *resp.Value != 1 || len(resp.Scores) != 5 {
        t.Fatalf("expected value 1 and 5 scores, got %+v", resp)
    }
}

func TestAPIMinimaxOpening(t *testing.T) {
    _, h := newTestServer(t)
    rr := postJSON(h, "/api/minimax", `{"board":"........."}`)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    var resp minimaxResponse
    if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if resp.Action != (domain.Action{Row: 0, Col: 0}) || resp.Scores != nil {
        t.Fatalf("expected unscored corner opening, got %+v", resp)
    }
}

func TestAPIMinimaxErrors(t *testing.T) {
    _, h := newTestServer(t)
    tests := []struct {
        body string
        code int
    }{
        {body: `{"board":"XX"}`, code: http.StatusBadRequest},
        {body: `not json`, code: http.StatusBadRequest},
        {body: `{"board":"XXXOO...."}`, code: http.StatusConflict},
    }
    for _, tt := range tests {
        if rr := postJSON(h, "/api/minimax", tt.body); rr.Code != tt.code {
            t.Fatalf("%s: expected %d, got %d", tt.body, tt.code, rr.Code)
        }
    }
}

func TestAPIResult(t *testing.T) {
    _, h := newTestServer(t)
    rr := postJSON(h, "/api/result", `{"board":"XX.OO....","row":0,"col":2}`)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
    }
    var st stateJSON
    if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if st.Board != "XXXOO...." || st.Winner != "X" || !st.Terminal || st.Utility == nil || *st.Utility != 1 {
        t.Fatalf("unexpected state %+v", st)
    }

    if rr := postJSON(h, "/api/result", `{"board":"X........","row":0,"col":0}`); rr.Code != http.StatusConflict {
        t.Fatalf("expected 409 for occupied cell, got %d", rr.Code)
    }
    if rr := postJSON(h, "/api/result", `{"board":"X........","row":3,"col":0}`); rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400 for out of bounds, got %d", rr.Code)
    }
}

func TestAPIGame(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.VsComputer, domain.O)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/game/"+gs.ID, nil))
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    var st stateJSON
    if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if st.ID != gs.ID || st.Board != "X........" || st.Turn != "O" || st.Computer != "X" || st.Last == nil {
        t.Fatalf("unexpected state %+v", st)
    }
    if st.Utility != nil {
        t.Fatalf("expected no utility for unfinished game")
    }

    rr = httptest.NewRecorder()
    h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/game/missing", nil))
    if rr.Code != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", rr.Code)
    }
}

func TestWebSocketStream(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.TwoPlayer, domain.Empty)
    svc.Join(gs.ID, "p1")
    svc.Join(gs.ID, "p2")

    srv := httptest.NewServer(h)
    defer srv.Close()
    conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/game/"+gs.ID+"/ws", nil)
    if err != nil {
        t.Fatalf("dial: %v", err)
    }
    defer conn.Close()
    _ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

    var msg wsMessage
    if err := conn.ReadJSON(&msg); err != nil {
        t.Fatalf("read initial: %v", err)
    }
    if msg.Type != "state" || msg.State == nil || msg.State.Board != "........." {
        t.Fatalf("unexpected initial message %+v", msg)
    }

    // The subscription is registered before the first state is written.
    if _, err := svc.Play(gs.ID, "p1", 1, 1); err != nil {
        t.Fatalf("play: %v", err)
    }
    msg = wsMessage{}
    if err := conn.ReadJSON(&msg); err != nil {
        t.Fatalf("read update: %v", err)
    }
    if msg.State == nil || msg.State.Board != "....X...." || msg.State.Turn != "O" {
        t.Fatalf("unexpected update %+v", msg.State)
    }
}

func TestWebSocketUnknownGame(t *testing.T) {
    _, h := newTestServer(t)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, httptest.NewRequest("GET", "/game/missing/ws", nil))
    if rr.Code != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", rr.Code)
    }
}
