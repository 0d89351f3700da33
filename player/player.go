package player

import (
	"context"
	"time"

	"connectx/engine"
	"connectx/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Game is the read side of an engine that players consult before moving.
type Game interface {
	State() engine.GameState
	Players() []engine.Player
	AvailableColumns() []int
	Logger() zerolog.Logger
}

type Type string

const (
	TypeHuman         Type = "human"
	TypeRandom        Type = "random"
	TypeMonteCarlo    Type = "monte-carlo"
	TypeMonteCarloUCT Type = "monte-carlo-uct"
)

// DefaultColors are handed out in roster order to players configured without one.
var DefaultColors = []string{"#ff010b", "#ffd918", "#1e90ff", "#32cd32"}

// Config describes a player to build. Optional fields fall back to defaults when nil.
type Config struct {
	Type                 Type     `json:"type"`
	Name                 string   `json:"name"`
	Color                string   `json:"color"`
	DelayMs              *int     `json:"delayMs,omitempty"`
	TimeLimitMS          *int     `json:"timeLimitMS,omitempty"`
	ExplorationParameter *float64 `json:"explorationParameter,omitempty"`
	Seed                 uint64   `json:"seed,omitempty"`
}

// New builds the player described by cfg, bound to g.
func New(g Game, cfg Config) (engine.Player, error) {
	switch cfg.Type {
	case TypeHuman:
		return NewHuman(cfg.Name, cfg.Color), nil

	case TypeRandom:
		delay, err := millis(cfg.DelayMs, 0)
		if err != nil {
			return nil, errors.WithMessagef(err, "random player %q", cfg.Name)
		}
		return NewRandom(g, cfg.Name, cfg.Color, delay, cfg.Seed), nil

	case TypeMonteCarlo, TypeMonteCarloUCT:
		limit, err := millis(cfg.TimeLimitMS, 1)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s player %q", cfg.Type, cfg.Name)
		}
		options := []searcher.Option{searcher.WithDuration(limit), searcher.WithSeed(cfg.Seed)}
		if cfg.Type == TypeMonteCarlo {
			return NewSearch(g, cfg.Name, cfg.Color, searcher.NewFlat(options...)), nil
		}
		if cfg.ExplorationParameter != nil {
			if *cfg.ExplorationParameter < 0 {
				return nil, errors.Errorf("%s player %q: explorationParameter %v is negative", cfg.Type, cfg.Name, *cfg.ExplorationParameter)
			}
			options = append(options, searcher.WithExploration(*cfg.ExplorationParameter))
		}
		return NewSearch(g, cfg.Name, cfg.Color, searcher.NewUCT(options...)), nil

	default:
		return nil, errors.Errorf("unknown player type %q", cfg.Type)
	}
}

// millis converts an optional millisecond count. A nil count yields -1, which
// the constructors read as "use the default"; values below floor are rejected.
func millis(ms *int, floor int) (time.Duration, error) {
	if ms == nil {
		return -1, nil
	}
	if *ms < floor {
		return 0, errors.Errorf("%dms is out of range", *ms)
	}
	return time.Duration(*ms) * time.Millisecond, nil
}

// NewRoster builds one player per config, in order.
func NewRoster(g Game, cfgs []Config) ([]engine.Player, error) {
	roster := make([]engine.Player, 0, len(cfgs))
	for i, cfg := range cfgs {
		if cfg.Color == "" {
			cfg.Color = DefaultColors[i%len(DefaultColors)]
		}
		if cfg.Name == "" {
			cfg.Name = string(cfg.Type)
		}
		p, err := New(g, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "player %d", i+1)
		}
		roster = append(roster, p)
	}
	return roster, nil
}

// Start builds the roster described by cfgs and starts a game with it on e.
func Start(ctx context.Context, e *engine.Engine, cfgs []Config) (engine.GameState, error) {
	roster, err := NewRoster(e, cfgs)
	if err != nil {
		return nil, err
	}
	return e.Start(ctx, roster)
}
