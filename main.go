package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"connectx/console"
	"connectx/engine"
	"connectx/meta"
	"connectx/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	p1 := flag.String("p1", "human:You", "First player, as type[:name[:color[:key=value,...]]]")
	p2 := flag.String("p2", "monte-carlo-uct:Computer", "Second player, same format as -p1")
	roster := flag.String("roster", "", "JSON file with a list of player configs, overrides -p1 and -p2")
	cols := flag.Int("cols", meta.DEFAULT_COLS, "Board columns")
	rows := flag.Int("rows", meta.DEFAULT_ROWS, "Board rows")
	colored := flag.Bool("color", true, "Draw discs in their players' colors")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	seed := flag.Uint64("seed", 0, "Seed for computer players without one, 0 for a random seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfgs, err := loadRoster(*roster, *p1, *p2)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid players")
	}
	for i := range cfgs {
		if cfgs[i].Seed == 0 && *seed != 0 {
			cfgs[i].Seed = *seed + uint64(i)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfgs, *cols, *rows, *colored); err != nil {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

func loadRoster(path, p1, p2 string) ([]player.Config, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var cfgs []player.Config
		if err := json.Unmarshal(data, &cfgs); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return cfgs, nil
	}

	var cfgs []player.Config
	for _, def := range []string{p1, p2} {
		cfg, err := player.ParseConfig(def)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func run(ctx context.Context, cfgs []player.Config, cols, rows int, colored bool) error {
	e := engine.New(engine.WithSize(cols, rows))

	var mu sync.Mutex
	unsubscribe := e.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()
		if err := console.Render(os.Stdout, e.State(), e.Players(), colored); err != nil {
			log.Warn().Err(err).Msg("failed to draw the board")
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if _, err := player.Start(ctx, e, cfgs); err != nil {
		return err
	}
	log.Info().Msgf("game %s started", e.ID())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		state, err := e.Wait(ctx)
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Msgf("game over: %s", state.Status())
		return nil
	})
	g.Go(func() error {
		err := console.ReadColumns(ctx, os.Stdin, e)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
