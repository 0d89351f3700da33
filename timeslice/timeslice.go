// Package timeslice runs a CPU-bound unit of work repeatedly for a time budget,
// in short bursts separated by a yield so that other goroutines keep running.
package timeslice

import (
	"context"
	"runtime"
	"time"

	"connectx/meta"
)

type Report struct {
	Iterations int
	Slices     int
	Elapsed    time.Duration
}

type Option func(s *slicer)

type slicer struct {
	slice       time.Duration
	maxPerSlice int
	yield       func()
	now         func() time.Time
}

// WithSliceDuration caps the wall time of a single burst.
func WithSliceDuration(d time.Duration) Option {
	return func(s *slicer) {
		if d > 0 {
			s.slice = d
		}
	}
}

// WithMaxPerSlice caps the number of units run in a single burst.
func WithMaxPerSlice(n int) Option {
	return func(s *slicer) {
		if n > 0 {
			s.maxPerSlice = n
		}
	}
}

// WithYield replaces runtime.Gosched as the call made between bursts.
func WithYield(yield func()) Option {
	return func(s *slicer) {
		s.yield = yield
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *slicer) {
		s.now = now
	}
}

// Run calls unit until budget has elapsed, ctx is done or unit fails.
// A unit is never interrupted; the budget may be overrun by at most one unit.
func Run(ctx context.Context, unit func(context.Context) error, budget time.Duration, options ...Option) (Report, error) {
	s := &slicer{
		slice:       meta.SLICE_DURATION,
		maxPerSlice: meta.MAX_PER_SLICE,
		yield:       runtime.Gosched,
		now:         time.Now,
	}
	for _, option := range options {
		option(s)
	}

	var report Report
	start := s.now()
	end := start.Add(budget)
	done := func() Report {
		report.Elapsed = s.now().Sub(start)
		return report
	}

	for s.now().Before(end) {
		if err := ctx.Err(); err != nil {
			return done(), err
		}

		report.Slices++
		sliceStart := s.now()
		for n := 0; n < s.maxPerSlice; n++ {
			now := s.now()
			if !now.Before(end) || now.Sub(sliceStart) >= s.slice || ctx.Err() != nil {
				break
			}
			if err := unit(ctx); err != nil {
				return done(), err
			}
			report.Iterations++
		}

		if s.now().Before(end) {
			s.yield()
		}
	}
	return done(), ctx.Err()
}
