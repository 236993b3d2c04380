// Package config loads runtime settings for the binaries. Every flag defaults
// to a TTT_* environment variable, which defaults to a built-in value.
package config

import (
    "flag"
    "fmt"
    "os"
    "strconv"
    "time"
)

// Config holds settings shared by the server and terminal binaries.
type Config struct {
    Addr      string
    LogLevel  string
    LogFormat string
    Seed      int64
    Parallel  bool
    Heartbeat time.Duration
}

// Default returns the built-in settings.
func Default() Config {
    return Config{
        Addr:      ":8080",
        LogLevel:  "info",
        LogFormat: "console",
        Parallel:  false,
        Heartbeat: 15 * time.Second,
    }
}

// FromEnv overlays TTT_* variables found through lookup on Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
    c := Default()
    if v, ok := lookup("TTT_ADDR"); ok {
        c.Addr = v
    }
    if v, ok := lookup("TTT_LOG_LEVEL"); ok {
        c.LogLevel = v
    }
    if v, ok := lookup("TTT_LOG_FORMAT"); ok {
        c.LogFormat = v
    }
    if v, ok := lookup("TTT_SEED"); ok {
        n, err := strconv.ParseInt(v, 10, 64)
        if err != nil {
            return c, fmt.Errorf("TTT_SEED: %w", err)
        }
        c.Seed = n
    }
    if v, ok := lookup("TTT_PARALLEL"); ok {
        b, err := strconv.ParseBool(v)
        if err != nil {
            return c, fmt.Errorf("TTT_PARALLEL: %w", err)
        }
        c.Parallel = b
    }
    if v, ok := lookup("TTT_HEARTBEAT"); ok {
        d, err := time.ParseDuration(v)
        if err != nil {
            return c, fmt.Errorf("TTT_HEARTBEAT: %w", err)
        }
        c.Heartbeat = d
    }
    return c, nil
}

// Bind registers the shared flags on fs with defaults taken from c.
func (c *Config) Bind(fs *flag.FlagSet) {
    fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
    fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
    fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console, json)")
    fs.Int64Var(&c.Seed, "seed", c.Seed, "opening move seed, 0 for time-based")
    fs.BoolVar(&c.Parallel, "parallel", c.Parallel, "search root moves concurrently")
    fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "idle interval between stream pings")
}

// Validate checks values flags cannot constrain.
func (c Config) Validate() error {
    if c.Heartbeat <= 0 {
        return fmt.Errorf("heartbeat must be positive, got %s", c.Heartbeat)
    }
    return nil
}

// Load reads the environment, then parses args with fs. Extra flags may be
// registered on fs before calling Load.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
    c, err := FromEnv(os.LookupEnv)
    if err != nil {
        return c, err
    }
    c.Bind(fs)
    if err := fs.Parse(args); err != nil {
        return c, err
    }
    return c, c.Validate()
}
