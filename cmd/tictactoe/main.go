package main

import (
    "errors"
    "flag"
    "fmt"
    "os"

    "github.com/jaminalder/tictactoe-minimax/internal/config"
    "github.com/jaminalder/tictactoe-minimax/internal/domain"
    "github.com/jaminalder/tictactoe-minimax/internal/logging"
    "github.com/jaminalder/tictactoe-minimax/internal/search"
    "github.com/jaminalder/tictactoe-minimax/internal/term"
)

func main() {
    if err := run(os.Args[1:]); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func run(args []string) error {
    fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
    sideFlag := fs.String("side", "X", "side you play (X moves first)")
    selfPlay := fs.Bool("selfplay", false, "let the computer play both sides")
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
    r := term.NewRenderer(os.Stdout)

    if *selfPlay {
        b, moves, err := term.SelfPlay(eng)
        if err != nil {
            return err
        }
        log.Debug().Int("moves", len(moves)).Str("board", b.String()).Msg("self-play finished")
        fmt.Print(r.Render(b))
        fmt.Println(r.Outcome(b))
        return nil
    }

    side, err := domain.ParseCell(*sideFlag)
    if err != nil {
        return err
    }
    b, err := term.Play(os.Stdin, os.Stdout, r, eng, side)
    if errors.Is(err, term.ErrQuit) {
        return nil
    }
    if err != nil {
        return err
    }
    log.Debug().Str("board", b.String()).Msg("game finished")
    return nil
}
