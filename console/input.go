package console

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"connectx/engine"
	"connectx/player"
)

// ReadColumns reads one column number per line from r and hands each to the
// human player on turn. It returns when r is exhausted or ctx is done.
func ReadColumns(ctx context.Context, r io.Reader, g player.Game) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return ctx.Err()
				}
			}
			deliver(g, strings.TrimSpace(line))
		}
	}
}

func deliver(g player.Game, line string) {
	if line == "" {
		return
	}
	logger := g.Logger()
	col, err := strconv.Atoi(line)
	if err != nil {
		logger.Warn().Msgf("%q is not a column number", line)
		return
	}

	play, ok := g.State().(engine.Play)
	if !ok {
		logger.Warn().Msgf("no game in play, ignoring column %d", col)
		return
	}
	human, ok := play.CurrentPlayer.(*player.Human)
	if !ok || !human.HandleColumnClick(col) {
		logger.Warn().Msgf("not a human's turn, ignoring column %d", col)
	}
}
