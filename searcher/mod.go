package searcher

import (
	"errors"
	"fmt"
)

var ErrInvalidPlyLimit = errors.New("ply limit must be at least 1")

// Node is a position in a two-player game tree. Eval is the heuristic value
// from the maximizing side's perspective and is used directly as the node's
// minimax value.
type Node[N any] interface {
	Eval() int
	IsTerminal() bool
	// Children expands the node for the side to move, in generation order.
	Children(maximizing bool) []N
}

type Option func(s *settings)

type settings struct {
	tracer  Tracer
	metrics bool
}

func WithTracer(tracer Tracer) Option {
	return func(s *settings) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = true
	}
}

// AlphaBeta is a depth-limited, fail-soft alpha-beta minimax searcher.
// It holds no per-search state and may be reused across turns.
type AlphaBeta[N Node[N]] struct {
	plyLimit int
	tracer   Tracer
	metrics  bool
}

func New[N Node[N]](plyLimit int, options ...Option) (*AlphaBeta[N], error) {
	if plyLimit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlyLimit, plyLimit)
	}
	s := settings{tracer: NopTracer{}}
	for _, option := range options {
		option(&s)
	}
	return &AlphaBeta[N]{
		plyLimit: plyLimit,
		tracer:   s.tracer,
		metrics:  s.metrics,
	}, nil
}

func (a *AlphaBeta[N]) PlyLimit() int {
	return a.plyLimit
}
