package player

import (
	"context"
	"sync"
)

// Human moves when told to from outside, through HandleColumnClick.
type Human struct {
	name  string
	color string

	mu      sync.Mutex
	pending chan int
}

func NewHuman(name, color string) *Human {
	return &Human{name: name, color: color}
}

func (h *Human) Name() string  { return h.name }
func (h *Human) Color() string { return h.color }

// Move waits for the next HandleColumnClick. The column is not validated here;
// the engine rejects columns the board does not accept.
func (h *Human) Move(ctx context.Context) (int, error) {
	pending := make(chan int, 1)
	h.mu.Lock()
	h.pending = pending
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		if h.pending == pending {
			h.pending = nil
		}
		h.mu.Unlock()
	}()

	select {
	case col := <-pending:
		return col, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// HandleColumnClick hands col to the pending Move, if any, and reports whether
// one was waiting.
func (h *Human) HandleColumnClick(col int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return false
	}
	h.pending <- col
	h.pending = nil
	return true
}

// Waiting reports whether a Move is pending.
func (h *Human) Waiting() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}
