// Package diag carries the kernel's "diagnostic, never fail a query" error
// policy as a structured, returnable value instead of only console output.
//
// Every construction-time pass (soup compression, half-edge wiring, BVH
// partition, SFC encoding) accumulates Events into a Report rather than
// returning an error, because a partially built tree is still expected to
// answer queries afterward, possibly with reduced accuracy.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Kind classifies a diagnostic event. The set is closed and mirrors the
// failure kinds enumerated for the kernel.
type Kind int

const (
	// InputDegenerate is raised on a facet with fewer than 3 vertices, or
	// any two coincident vertices.
	InputDegenerate Kind = iota
	// TopologyBroken is raised by the DCEL sanity pass: an unpaired
	// half-edge, a broken next/prev cycle, a face without a half-edge, or
	// a vertex without an incident face.
	TopologyBroken
	// EmptyInput is raised when a BVH build is given fewer primitives than
	// the branching factor K; the root is formed as a single leaf as-is.
	EmptyInput
	// NumericEdge is raised when a length normalization would divide by a
	// near-zero value; the denominator is clamped to epsilon instead.
	NumericEdge
	// ConfigError is raised on an unknown BVH build strategy or mismatched
	// input array lengths.
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case InputDegenerate:
		return "InputDegenerate"
	case TopologyBroken:
		return "TopologyBroken"
	case EmptyInput:
		return "EmptyInput"
	case NumericEdge:
		return "NumericEdge"
	case ConfigError:
		return "ConfigError"
	default:
		return "Unknown"
	}
}

// Event is one diagnostic occurrence.
type Event struct {
	Kind    Kind
	Message string
	At      time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Report accumulates Events produced by a single construction pass.
type Report struct {
	Events []Event
}

// Add appends a formatted Event to the report.
func (r *Report) Add(k Kind, format string, args ...interface{}) {
	r.Events = append(r.Events, Event{
		Kind:    k,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	})
}

// Merge appends all events of other onto r.
func (r *Report) Merge(other Report) {
	r.Events = append(r.Events, other.Events...)
}

// OK reports whether the pass recorded no diagnostics at all.
func (r Report) OK() bool {
	return len(r.Events) == 0
}

// CountOf returns how many events of a given Kind are present.
func (r Report) CountOf(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Log replays every event through logger at a level derived from its Kind.
// NumericEdge and EmptyInput are recoverable-by-convention (Warn); the rest
// indicate bad input (Error). If logger is nil, slog.Default() is used.
func (r Report) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, e := range r.Events {
		level := slog.LevelError
		if e.Kind == NumericEdge || e.Kind == EmptyInput {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, e.Message, "kind", e.Kind.String(), "at", e.At)
	}
}
