// Package logging builds zerolog loggers and HTTP request logging.
package logging

import (
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5/middleware"
    "github.com/rs/zerolog"
)

// New returns a logger writing to w. format is "json" or "console".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
    lvl, err := zerolog.ParseLevel(level)
    if err != nil {
        return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
    }
    switch format {
    case "json":
    case "console", "":
        w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
    default:
        return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
    }
    return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Middleware logs one line per request with status, size and duration.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            defer func() {
                log.Info().
                    Str("req_id", middleware.GetReqID(r.Context())).
                    Str("method", r.Method).
                    Str("path", r.URL.Path).
                    Int("status", ww.Status()).
                    Int("bytes", ww.BytesWritten()).
                    Dur("took", time.Since(start)).
                    Msg("request")
            }()
            next.ServeHTTP(ww, r)
        })
    }
}
