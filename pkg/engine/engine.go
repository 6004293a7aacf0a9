// Package engine computes payment plans, effective interest rates and
// projected state for loans described by models.Loan.
//
// Every operation is a pure read of the loan it is given and returns a new
// value. CalculateMeta is the one exception: it writes the derived fields
// into the Data of the loan it receives.
package engine

import (
	"time"

	"go.uber.org/zap"
)

// Engine holds the collaborators used by the loan computations.
// It keeps no state between calls and is safe for concurrent use as long
// as the loans passed to CalculateMeta are not shared.
type Engine struct {
	logger  *zap.Logger
	now     func() time.Time
	solvers map[Unknown]Solver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report inconsistent loan state and
// solver progress.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSolver registers s as the solver for the unknown u, replacing any
// built-in solver for it.
func WithSolver(u Unknown, s Solver) Option {
	return func(e *Engine) {
		e.solvers[u] = s
	}
}

// NewEngine creates an Engine with a no-op logger and the wall clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		now:     time.Now,
		solvers: defaultSolvers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
