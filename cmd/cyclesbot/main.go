package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/brensch/cycles/bot"
	"github.com/brensch/cycles/client"
	"github.com/brensch/cycles/config"
	"github.com/brensch/cycles/logging"
	"github.com/brensch/cycles/store"
	"github.com/brensch/cycles/tui"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	server := flag.String("server", "", "Game server WebSocket URL (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	recordDir := flag.String("record-dir", "", "Directory for parquet tick recordings (overrides config)")
	showTUI := flag.Bool("tui", false, "Show the live board view")
	parallel := flag.Bool("parallel", false, "Evaluate the four directions concurrently")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <bot_name>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	name := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Only flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.ServerURL = *server
		case "log-level":
			cfg.LogLevel = *logLevel
		case "record-dir":
			cfg.RecordDir = *recordDir
		case "tui":
			cfg.TUI = *showTUI
		case "parallel":
			cfg.Parallel = *parallel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to <bot_name>.log instead.
	var logOut io.Writer = os.Stderr
	if cfg.TUI {
		f, err := os.OpenFile(name+".log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	if err := logging.Setup(logOut, cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("bot", name).Str("url", cfg.ServerURL).Msg("connecting")
	session, err := client.Dial(ctx, client.Config{
		URL:            cfg.ServerURL,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		PingInterval:   cfg.PingInterval,
	}, name)
	if err != nil {
		log.Fatal().Err(err).Str("bot", name).Msg("failed to connect")
	}
	defer session.Close()

	if err := run(ctx, name, cfg, session); err != nil {
		log.Error().Err(err).Str("bot", name).Msg("bot stopped")
		session.Close()
		os.Exit(1)
	}
	log.Info().Str("bot", name).Msg("game over")
}

func run(ctx context.Context, name string, cfg config.Config, session *client.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []bot.Option{
		bot.WithParallel(cfg.Parallel),
		bot.WithLogger(log.Logger),
	}

	if cfg.RecordDir != "" {
		recorder, err := store.NewRecorder(cfg.RecordDir, name, cfg.RecordFlushTicks, log.Logger)
		if err != nil {
			return fmt.Errorf("start recorder: %w", err)
		}
		log.Info().Str("dir", cfg.RecordDir).Str("session_id", recorder.SessionID()).Msg("recording ticks")
		defer func() {
			if _, err := recorder.Close(); err != nil {
				log.Error().Err(err).Msg("failed to finish recording")
			}
		}()
		opts = append(opts, bot.WithObserver(recorder))
	}

	if cfg.TUI {
		feed := tui.NewFeed(64)
		uiDone := make(chan error, 1)
		go func() {
			// Quitting the view ends the game for this bot.
			defer cancel()
			uiDone <- tui.Run(ctx, name, feed)
		}()
		defer func() {
			feed.Close()
			if err := <-uiDone; err != nil {
				log.Error().Err(err).Msg("tui failed")
			}
		}()
		opts = append(opts, bot.WithObserver(feed))
	}

	return bot.New(name, session, opts...).Run(ctx)
}
