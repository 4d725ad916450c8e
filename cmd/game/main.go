package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/loop"
	"github.com/tomz197/planetdefense/internal/loop/client"
	"github.com/tomz197/planetdefense/internal/sound"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	withSound := flag.Bool("sound", false, "play sound effects")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	// The terminal belongs to the game; logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	opts := client.ClientOptions{Username: os.Getenv("USER"), Config: cfg, Logger: logger}
	if *withSound {
		snd := sound.New()
		if err := snd.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer snd.Close()
			opts.Sound = snd
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
