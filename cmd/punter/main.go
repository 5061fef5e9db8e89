package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/prxssh/punter/internal/config"
	"github.com/prxssh/punter/internal/logging"
	"github.com/prxssh/punter/internal/punter"
	"github.com/prxssh/punter/internal/retrynet"
	"github.com/prxssh/punter/internal/search"
	"github.com/prxssh/punter/internal/wire"
)

func main() {
	var (
		tcpAddr   = flag.String("tcp", "", "dial the referee at host:port instead of using stdio")
		name      = flag.String("name", "punter", "our display name in the handshake")
		logLevel  = flag.String("log-level", "info", "debug|info|warn|error")
		noColor   = flag.Bool("no-color", false, "disable ANSI color in log output")
		explore   = flag.Float64("exploration-constant", 0, "override the UCT1 exploration constant (0 = default)")
		simDepth  = flag.Int("simulation-depth", 0, "override the per-playout ply cap (0 = default)")
		safety    = flag.Duration("safety-margin", 0, "override the deadline safety margin (0 = default)")
	)
	flag.Parse()

	config.Init()
	cfg := config.Update(func(c *config.Config) {
		if *logLevel != "" {
			c.LogLevel = *logLevel
		}
		c.LogColor = !*noColor
		if *explore > 0 {
			c.ExplorationConstant = *explore
		}
		if *simDepth > 0 {
			c.SimulationDepth = *simDepth
		}
		if *safety > 0 {
			c.SafetyMargin = *safety
		}
	})

	setupLogger(cfg)

	ctx := context.Background()

	var (
		transport *wire.Transport
		err       error
	)
	if *tcpAddr != "" {
		transport, err = dialWithRetry(ctx, *tcpAddr, cfg.DialTimeout)
	} else {
		transport = wire.NewStdio(os.Stdin, os.Stdout)
	}
	if err != nil {
		slog.Error("failed to connect to referee", "error", err)
		os.Exit(1)
	}
	defer transport.Close()

	searchCfg := search.Config{
		ExplorationConstant: cfg.ExplorationConstant,
		SimulationDepth:     cfg.SimulationDepth,
	}

	if err := punter.Run(ctx, transport, *name, cfg.SafetyMargin, cfg.ReadTimeout, searchCfg); err != nil {
		slog.Error("match ended with error", "error", err)
		os.Exit(1)
	}
}

// dialWithRetry dials the referee, retrying the connect itself with
// exponential backoff: a referee process started moments after ours
// (a common race in local test harnesses) shouldn't be a fatal error.
func dialWithRetry(ctx context.Context, addr string, dialTimeout time.Duration) (*wire.Transport, error) {
	var transport *wire.Transport

	dial := func(ctx context.Context) error {
		dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()

		t, err := wire.Dial(dialCtx, addr)
		if err != nil {
			return err
		}
		transport = t
		return nil
	}

	opts := append(
		retrynet.WithExponentialBackoff(5, 200*time.Millisecond, 3*time.Second),
		retrynet.WithRetryIf(retrynet.IsDialRetryable),
	)
	err := retrynet.Do(ctx, dial, opts...)
	return transport, err
}

func setupLogger(cfg *config.Config) {
	opts := logging.DefaultOptions()
	opts.UseColor = cfg.LogColor
	opts.SlogOpts.Level = parseLevel(cfg.LogLevel)
	opts.SlogOpts.AddSource = false

	h := logging.NewPrettyHandler(os.Stdout, &opts)
	slog.SetDefault(slog.New(h))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
