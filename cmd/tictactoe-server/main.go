package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/jaminalder/tictactoe-minimax/internal/app"
    "github.com/jaminalder/tictactoe-minimax/internal/config"
    "github.com/jaminalder/tictactoe-minimax/internal/logging"
    "github.com/jaminalder/tictactoe-minimax/internal/search"
    "github.com/jaminalder/tictactoe-minimax/internal/web"
)

func main() {
    if err := run(os.Args[1:]); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func run(args []string) error {
    fs := flag.NewFlagSet("tictactoe-server", flag.ContinueOnError)
    cfg, err := config.Load(fs, args)
    if err != nil {
        return err
    }
    log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
    if err != nil {
        return err
    }

    var eng *search.Engine
    if cfg.Seed != 0 {
        eng = search.NewSeeded(cfg.Seed, search.WithParallel(cfg.Parallel))
    } else {
        eng = search.New(nil, search.WithParallel(cfg.Parallel))
    }
    svc := app.NewService(app.WithEngine(eng), app.WithLogger(log.With().Str("component", "app").Logger()))
    srv := &http.Server{
        Addr:              cfg.Addr,
        Handler:           web.NewServer(svc, web.Options{Logger: log.With().Str("component", "http").Logger(), Heartbeat: cfg.Heartbeat}),
        ReadHeaderTimeout: 5 * time.Second,
    }

    sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    errCh := make(chan error, 1)
    go func() {
        log.Info().Str("addr", cfg.Addr).Bool("parallel", cfg.Parallel).Msg("listening")
        errCh <- srv.ListenAndServe()
    }()

    select {
    case <-sigCtx.Done():
        log.Info().Msg("shutdown signal received")
    case err := <-errCh:
        if !errors.Is(err, http.ErrServerClosed) {
            return fmt.Errorf("server: %w", err)
        }
        return nil
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(ctx); err != nil {
        log.Warn().Err(err).Msg("graceful shutdown failed")
        return srv.Close()
    }
    return nil
}
