package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/render/tui"
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
		log.Fatal("loading config", "err", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger := log.New(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("opening log file", "err", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	opts := tui.Options{Logger: logger}
	if *withSound {
		snd := sound.New()
		if err := snd.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer snd.Close()
			opts.Sound = snd
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("creating screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("initializing screen", "err", err)
	}

	frontend, err := tui.New(screen, cfg, opts)
	if err != nil {
		screen.Fini()
		log.Fatal("creating game", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = frontend.Run(ctx)
	screen.Fini()
	if err != nil {
		log.Fatal("game error", "err", err)
	}
}
