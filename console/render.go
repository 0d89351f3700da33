// Package console draws games on a terminal and feeds typed columns to human players.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"connectx/engine"
	"connectx/game"

	"github.com/muesli/termenv"
)

// Render writes the board top row first, each disc as its player's name padded
// to the longest name on the board, followed by the column numbers and a
// status line. With colored set, discs take their player's color and a
// winning run is drawn on a colored background.
func Render(w io.Writer, state engine.GameState, players []engine.Player, colored bool) error {
	progress, ok := engine.ProgressOf(state)
	if !ok {
		_, err := fmt.Fprintln(w, "waiting for a game to start")
		return err
	}

	profile := termenv.Ascii
	if colored {
		profile = termenv.TrueColor
	}
	out := termenv.NewOutput(w, termenv.WithProfile(profile))

	board := game.FromState(progress.Board)
	width := 1
	for _, stack := range progress.Board.Grid {
		for _, p := range stack {
			width = max(width, len(name(players, p)))
		}
	}

	winning := map[game.Coord]bool{}
	if win, ok := state.(engine.Win); ok {
		for _, coord := range win.Coordinates {
			winning[coord] = true
		}
	}

	var sb strings.Builder
	grid := board.FullGrid()
	for r := len(grid) - 1; r >= 0; r-- {
		cells := make([]string, len(grid[r]))
		for c, p := range grid[r] {
			if p == game.Empty {
				cells[c] = strings.Repeat(".", width)
				continue
			}
			style := out.String(pad(name(players, p), width))
			color := out.Color(colorOf(players, p))
			if winning[game.Coord{Col: c, Row: r}] {
				style = style.Background(color).Foreground(out.Color("#000000"))
			} else {
				style = style.Foreground(color)
			}
			cells[c] = style.String()
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}

	footer := make([]string, board.Cols())
	for c := range footer {
		footer[c] = pad(strconv.Itoa(c), width)
	}
	sb.WriteString(strings.Join(footer, " "))
	sb.WriteByte('\n')
	sb.WriteString(status(state))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func status(state engine.GameState) string {
	switch s := state.(type) {
	case engine.Win:
		return fmt.Sprintf("%s wins after %d moves", s.Winner.Name(), len(s.History))
	case engine.Draw:
		return fmt.Sprintf("draw after %d moves", len(s.History))
	case engine.Play:
		if s.CurrentPlayer == nil {
			return "no player to move"
		}
		return fmt.Sprintf("%s to move", s.CurrentPlayer.Name())
	default:
		return state.Status().String()
	}
}

func name(players []engine.Player, index int) string {
	if index < 0 || index >= len(players) || players[index] == nil {
		return strconv.Itoa(index)
	}
	return players[index].Name()
}

func colorOf(players []engine.Player, index int) string {
	if index < 0 || index >= len(players) || players[index] == nil {
		return ""
	}
	return players[index].Color()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
