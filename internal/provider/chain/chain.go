// Package chain models a provider's fallback protocol as an explicit
// ordered list of strategies. Each strategy resolves to a tagged result:
// the first Success wins, Skip and Fail fall through to the next entry.
// A chain never panics or propagates transport errors; exhaustion is
// reported as a joined error of every fall-through reason.
package chain

import (
	"context"
	"errors"
	"fmt"
)

// Status tags a strategy outcome
type Status int

const (
	// StatusSuccess means the strategy produced an answer; the chain stops.
	StatusSuccess Status = iota
	// StatusSkip means the strategy's preconditions were not met
	// (typically a missing credential); the chain moves on.
	StatusSkip
	// StatusFail means the strategy ran and could not produce an answer;
	// the chain moves on.
	StatusFail
)

// Result is the tagged outcome of a single strategy
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Success builds a winning result
func Success[T any](value T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: value}
}

// Skip builds a precondition-not-met result
func Skip[T any](reason string) Result[T] {
	return Result[T]{Status: StatusSkip, Err: errors.New(reason)}
}

// Fail builds a ran-but-failed result carrying the cause
func Fail[T any](err error) Result[T] {
	return Result[T]{Status: StatusFail, Err: err}
}

// Strategy is one entry in a fallback chain
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) Result[T]
}

// Outcome is what a completed chain reports to the provider
type Outcome[T any] struct {
	Value T
	// Source names the strategy that produced the value
	Source string
}

// Run executes the strategies in order and returns the first Success.
// When every strategy skips or fails, the zero Outcome is returned along
// with the joined fall-through errors, so callers can classify the
// exhaustion with errors.Is.
func Run[T any](ctx context.Context, strategies []Strategy[T]) (Outcome[T], error) {
	var failures []error

	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		result := strategy.Run(ctx)
		switch result.Status {
		case StatusSuccess:
			return Outcome[T]{Value: result.Value, Source: strategy.Name}, nil
		case StatusSkip, StatusFail:
			failures = append(failures, fmt.Errorf("%s: %w", strategy.Name, result.Err))
		}
	}

	var zero Outcome[T]
	return zero, errors.Join(failures...)
}
