// stick-battle-arena is a two-player hot-seat arena brawler for the terminal.
//
// Usage:
//
//	stick-battle-arena [-config arena.yaml] [-mute] [-metrics-addr :9090]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stick-battle-arena/internal/audio"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/game"
	"stick-battle-arena/internal/logger"
	"stick-battle-arena/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a YAML file overlaid on the built-in configuration")
	mute := flag.Bool("mute", false, "Disable sound")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	log, logFile, err := logger.Open(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []game.Option{}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		collector := metrics.New(reg)
		opts = append(opts, game.WithObserver(collector.Observe))

		errCh := make(chan error, 1)
		go func() { errCh <- metrics.Serve(ctx, cfg.Metrics.Addr, reg) }()
		defer func() {
			stop()
			if err := <-errCh; err != nil {
				log.Error("metrics server failed", "error", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	cues := audio.Open(cfg.Audio, log)
	defer cues.Close()
	opts = append(opts, game.WithObserver(cues.Observe))

	g, err := game.New(cfg, opts...)
	if err != nil {
		return err
	}
	log.Info("starting", "items", len(cfg.Items), "lives", cfg.Match.Lives, "sound", cues.Enabled())
	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
