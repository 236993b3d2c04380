package web

import (
    "context"
    "encoding/json"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
)

type wsMessage struct {
    Type  string     `json:"type"`
    State *stateJSON `json:"state,omitempty"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// stream pushes the game's JSON state on connect and after every move.
func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        h.log.Debug().Err(err).Str("game", id).Msg("websocket upgrade")
        return
    }
    defer conn.Close()

    ctx, cancel := context.WithCancel(r.Context())
    defer cancel()
    ch, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()

    // Clients only send to keep the connection open; a read error means gone.
    go func() {
        defer cancel()
        for {
            if _, _, err := conn.ReadMessage(); err != nil {
                return
            }
        }
    }()

    send := func() error {
        gs, ok := h.svc.Get(id)
        if !ok {
            return nil
        }
        st := gameJSON(*gs)
        return writeWS(conn, wsMessage{Type: "state", State: &st})
    }
    if err := send(); err != nil {
        return
    }

    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    lastWrite := time.Now()
    for {
        select {
        case <-ctx.Done():
            return
        case _, ok := <-ch:
            if !ok {
                return
            }
            if err := send(); err != nil {
                return
            }
            lastWrite = time.Now()
        case <-ticker.C:
            if time.Since(lastWrite) < h.heartbeat {
                continue
            }
            if err := writeWS(conn, wsMessage{Type: "ping"}); err != nil {
                return
            }
            lastWrite = time.Now()
        }
    }
}

func writeWS(conn *websocket.Conn, msg wsMessage) error {
    data, err := json.Marshal(msg)
    if err != nil {
        return err
    }
    return conn.WriteMessage(websocket.TextMessage, data)
}
