// Package main is the entry point for the roulette table.
package main

import (
	"context"
	"flag"
	"fmt"
	gomath "math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/roulette/internal/config"
	"github.com/Faultbox/roulette/internal/feed"
	"github.com/Faultbox/roulette/internal/game"
	"github.com/Faultbox/roulette/internal/logger"
	"github.com/Faultbox/roulette/internal/roulette"
	"github.com/Faultbox/roulette/internal/sim"
)

// spinFrameLimit bounds a headless round so a ball that never settles cannot
// hang the spin command.
const spinFrameLimit = 100000

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	command := flag.Arg(0)
	if command == "" {
		command = "serve"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "serve", "run":
		err = cmdServe(cfg)
	case "spin":
		err = cmdSpin(cfg)
	case "pockets":
		err = cmdPockets(cfg)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `roulette - headless roulette wheel

Usage:
  roulette [flags] [command]

Commands:
  serve     Run the wheel in real time, optionally serving the result feed (default)
  spin      Play rounds as fast as possible and print the results
  pockets   Print the pocket table built from the wheel geometry

Flags:`)
	flag.PrintDefaults()
}

// table is a wheel wired to the headless scene and ball simulation.
type table struct {
	wheel *roulette.Wheel
	scene *sim.Scene
	world *sim.World
}

func newTable(cfg *config.Config) (*table, error) {
	settings := cfg.Wheel.Settings()
	scene := sim.NewScene(cfg.Table, settings.NumbersMesh, settings.SeparatorsMesh)
	world := sim.NewWorld(cfg.Physics, cfg.Table, settings.LaunchPoint)

	wheel, err := roulette.NewWheel(settings, cfg.Wheel.PocketMapping(), scene, world)
	if err != nil {
		return nil, fmt.Errorf("creating wheel: %w", err)
	}
	logger.Debug("table built",
		zap.Int("pockets", cfg.Table.Pockets),
		zap.Float64("ball_mass", world.Mass()),
		zap.Bool("closed_ring", settings.ClosedRing),
	)
	return &table{wheel: wheel, scene: scene, world: world}, nil
}

// gameConfig maps the loop section onto the game loop. A zero seed is drawn
// from the clock and logged so the run can be replayed.
func gameConfig(cfg *config.Config, rounds int) game.Config {
	seed := cfg.Loop.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		logger.Info("jitter seed", zap.Uint64("seed", seed))
	}
	return game.Config{
		FPS:            cfg.Loop.FPS,
		MaxRounds:      rounds,
		Jitter:         cfg.Loop.Jitter,
		Seed:           seed,
		ResolveTimeout: cfg.Loop.ResolveTimeout,
	}
}

func cmdServe(cfg *config.Config) error {
	t, err := newTable(cfg)
	if err != nil {
		return err
	}

	history := feed.NewHistory(cfg.Server.History)
	sinks := []game.Sink{game.NewLogSink(), history}

	var hub *feed.Hub
	if cfg.Server.Enabled {
		hub = feed.NewHub(history, nil)
		defer hub.Close()
		sinks = append(sinks, hub)
	}

	g, err := game.New(gameConfig(cfg, cfg.Loop.MaxRounds), t.wheel, t.world, sinks...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// finishing the configured rounds ends the server too
		defer stop()
		return g.Run(ctx)
	})
	if cfg.Server.Enabled {
		router := feed.NewRouter(feed.RouterDeps{
			Game:           g,
			History:        history,
			Hub:            hub,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		eg.Go(func() error {
			return feed.Serve(ctx, cfg.Server.Addr, router)
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("roulette stopped normally")
	return nil
}

func cmdSpin(cfg *config.Config) error {
	t, err := newTable(cfg)
	if err != nil {
		return err
	}

	rounds := max(cfg.Loop.MaxRounds, 1)
	printer := game.SinkFunc(func(ev game.Event) {
		fmt.Printf("round %d: %d %s (frame %d)\n", ev.Round, ev.Number, ev.Color, ev.Frame)
	})

	g, err := game.New(gameConfig(cfg, rounds), t.wheel, t.world, printer)
	if err != nil {
		return err
	}

	n, err := g.RunFrames(spinFrameLimit * rounds)
	if err != nil {
		return err
	}
	if !g.Done() {
		return fmt.Errorf("no result after %d frames", n)
	}
	return nil
}

func cmdPockets(cfg *config.Config) error {
	t, err := newTable(cfg)
	if err != nil {
		return err
	}

	round := roulette.NewRound()
	if err := t.wheel.Reset(round); err != nil {
		return err
	}

	mapping := t.wheel.Mapping()
	fmt.Printf("Pockets:    %d\n", len(round.Table))
	fmt.Printf("Separators: %d vertices\n", len(round.Separators))
	fmt.Printf("Stop frame: %d\n", roulette.StopFrames(cfg.Wheel.StartSpeed, cfg.Wheel.FrictionStep))
	fmt.Println()
	for i, b := range round.Table {
		c := b[0].XZ()
		fmt.Printf("  %2d  %-8s  inner (%6.3f, %6.3f)  angle %7.2f°\n",
			i, mapping[i], c.X, c.Y, c.Angle()*180/gomath.Pi)
	}
	return nil
}
