package player

import (
	"context"
	"fmt"
	"strings"

	"connectx/engine"
	"connectx/game"
	"connectx/searcher"
	"connectx/utils"
)

// Search moves by running a searcher on the current board.
type Search struct {
	game     Game
	name     string
	color    string
	searcher searcher.Searcher
}

func NewSearch(g Game, name, color string, s searcher.Searcher) *Search {
	return &Search{game: g, name: name, color: color, searcher: s}
}

func (s *Search) Name() string  { return s.name }
func (s *Search) Color() string { return s.color }

func (s *Search) Move(ctx context.Context) (int, error) {
	play, ok := s.game.State().(engine.Play)
	if !ok {
		return 0, game.ErrGameNotInPlay
	}
	players := s.game.Players()
	self := utils.FindIndex(players, engine.Player(s))
	if self == -1 {
		return 0, game.Errorf(game.PlayerNotInRoster, "%s is not playing", s.name)
	}

	decision, err := s.searcher.Search(ctx, play.Board, len(players), self)
	if err != nil {
		return 0, err
	}

	logger := s.game.Logger().With().Str("player", s.name).Logger()
	logger.Debug().Msg(rates(decision))
	logger.Debug().Msgf("computed %d iterations in %v", decision.Iterations, decision.Elapsed)
	return decision.Col, nil
}

// rates renders the root statistics one column per cell, the chosen column
// in brackets.
func rates(decision searcher.Decision) string {
	cells := make([]string, len(decision.Rates))
	for col, rate := range decision.Rates {
		cell := "----"
		if decision.Visits[col] > 0 {
			cell = fmt.Sprintf("%.2f", rate)
		}
		if col == decision.Col {
			cell = "[" + cell + "]"
		}
		cells[col] = cell
	}
	return strings.Join(cells, " ")
}
