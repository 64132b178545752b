package searcher

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

// Tracer receives structured events from the search. Nodes are passed as
// values and rendered with fmt by implementations that need text.
type Tracer interface {
	Expand(ply int, node any, maximizing bool, alpha, beta int, children int)
	// Improve reports that a child replaced alpha (maximizing) or beta.
	Improve(ply int, child any, maximizing bool, from, to int)
	Cutoff(ply int, child any, alpha, beta int)
	// Exhaust reports the bound returned once every child was searched.
	Exhaust(ply int, result any, maximizing bool)
}

type NopTracer struct{}

func (NopTracer) Expand(int, any, bool, int, int, int) {}
func (NopTracer) Improve(int, any, bool, int, int)     {}
func (NopTracer) Cutoff(int, any, int, int)            {}
func (NopTracer) Exhaust(int, any, bool)               {}

type Verbosity int

const (
	VerbosityOff Verbosity = iota
	VerbosityCutoffs
	VerbosityExpansions
	VerbosityAll
)

func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "", "off":
		return VerbosityOff, nil
	case "cutoffs":
		return VerbosityCutoffs, nil
	case "expansions":
		return VerbosityExpansions, nil
	case "all":
		return VerbosityAll, nil
	}
	return VerbosityOff, fmt.Errorf("unknown trace verbosity %q", s)
}

func (v Verbosity) String() string {
	switch v {
	case VerbosityOff:
		return "off"
	case VerbosityCutoffs:
		return "cutoffs"
	case VerbosityExpansions:
		return "expansions"
	case VerbosityAll:
		return "all"
	}
	return "Verbosity(" + strconv.Itoa(int(v)) + ")"
}

// LogTracer writes search events to a zerolog logger at debug level, bound
// updates at trace level.
type LogTracer struct {
	logger    zerolog.Logger
	verbosity Verbosity
}

func NewLogTracer(logger zerolog.Logger, verbosity Verbosity) *LogTracer {
	return &LogTracer{logger: logger, verbosity: verbosity}
}

func (t *LogTracer) Expand(ply int, node any, maximizing bool, alpha, beta int, children int) {
	if t.verbosity < VerbosityExpansions {
		return
	}
	t.logger.Debug().
		Int("ply", ply).
		Str("node", fmt.Sprint(node)).
		Str("side", side(maximizing)).
		Str("alpha", bound(alpha)).
		Str("beta", bound(beta)).
		Int("children", children).
		Msg("expand")
}

func (t *LogTracer) Improve(ply int, child any, maximizing bool, from, to int) {
	if t.verbosity < VerbosityAll {
		return
	}
	name := "beta"
	if maximizing {
		name = "alpha"
	}
	t.logger.Trace().
		Int("ply", ply).
		Str("child", fmt.Sprint(child)).
		Str("bound", name).
		Str("from", bound(from)).
		Str("to", bound(to)).
		Msg("improve")
}

func (t *LogTracer) Cutoff(ply int, child any, alpha, beta int) {
	if t.verbosity < VerbosityCutoffs {
		return
	}
	t.logger.Debug().
		Int("ply", ply).
		Str("child", fmt.Sprint(child)).
		Str("alpha", bound(alpha)).
		Str("beta", bound(beta)).
		Msg("cutoff")
}

func (t *LogTracer) Exhaust(ply int, result any, maximizing bool) {
	if t.verbosity < VerbosityExpansions {
		return
	}
	t.logger.Debug().
		Int("ply", ply).
		Str("side", side(maximizing)).
		Str("result", fmt.Sprint(result)).
		Msg("exhaust")
}

func side(maximizing bool) string {
	if maximizing {
		return "max"
	}
	return "min"
}

func bound(v int) string {
	switch v {
	case math.MinInt:
		return "-inf"
	case math.MaxInt:
		return "+inf"
	}
	return strconv.Itoa(v)
}
