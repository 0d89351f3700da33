package searcher

import (
	"time"

	"connectx/timeslice"
)

type Option func(s *search)

func WithDuration(duration time.Duration) Option {
	return func(s *search) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithExploration sets the UCB1 exploration constant. Only UCT reads it.
func WithExploration(c float64) Option {
	return func(s *search) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *search) {
		s.seed = seed
	}
}

func WithSlicing(options ...timeslice.Option) Option {
	return func(s *search) {
		s.slicing = append(s.slicing, options...)
	}
}

func WithMetrics() Option {
	return func(s *search) {
		s.collector = NewCollector
	}
}
