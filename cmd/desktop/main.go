package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/render/desktop"
	"github.com/tomz197/planetdefense/internal/sound"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	mute := flag.Bool("mute", false, "disable sound effects")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	opts := desktop.Options{Logger: logger}
	if !*mute {
		snd := sound.New()
		if err := snd.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer snd.Close()
			opts.Sound = snd
		}
	}

	g, err := desktop.New(cfg, opts)
	if err != nil {
		logger.Fatal("creating game", "err", err)
	}
	if err := desktop.Run(g); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
