// Package engine implements the variant-chess AI: positional evaluation,
// move ordering, transposition caching, the alpha-beta search core and the
// top-level move selector.
package engine

import "github.com/hexaflip/chessmind/internal/board"

// GameMode selects the rule variant the evaluator and search adjust for.
type GameMode uint8

const (
	// ModeStandard is plain chess.
	ModeStandard GameMode = iota
	// ModeRotating rotates piece color assignment between players every
	// two plies, so the evaluating side inherits either army over time.
	ModeRotating
	// ModeRandom assigns colors unpredictably each turn.
	ModeRandom
)

// String returns the mode tag name.
func (m GameMode) String() string {
	switch m {
	case ModeRotating:
		return "rotating"
	case ModeRandom:
		return "random"
	default:
		return "standard"
	}
}

// ParseGameMode converts a mode tag string to a GameMode.
func ParseGameMode(s string) GameMode {
	switch s {
	case "rotating":
		return ModeRotating
	case "random":
		return ModeRandom
	default:
		return ModeStandard
	}
}

// PointsState carries the points-based win condition inputs: every player's
// current score, the winning target, and the index of the acting player
// (the player the evaluation perspective belongs to). All fields are
// read-only inputs; the engine never mutates them.
type PointsState struct {
	Scores []float64
	Target float64
	Acting int
}

// Active reports whether the points-based win condition applies: a
// positive target and an acting index within Scores. Malformed states
// (out-of-range acting player, no scores) are treated as absent rather
// than rejected; the surfaces reject them before they reach the engine.
func (ps *PointsState) Active() bool {
	return ps != nil && ps.Target > 0 && ps.Acting >= 0 && ps.Acting < len(ps.Scores)
}

// OpponentBest returns the highest score among the non-acting players.
func (ps *PointsState) OpponentBest() float64 {
	best := 0.0
	first := true
	for i, s := range ps.Scores {
		if i == ps.Acting {
			continue
		}
		if first || s > best {
			best = s
			first = false
		}
	}
	return best
}

// Params bundles the game-mode inputs threaded through every evaluation and
// search call. Points is nil when no points-based win condition is active.
type Params struct {
	Mode   GameMode
	Points *PointsState
}

// EffectiveColor resolves the color the root player's pieces carry at a
// node, as a pure function of plies from the root. In the rotating mode the
// assignment flips every two plies; other modes keep the root color. Both
// minimax and quiescence resolve perspective through this one helper.
func EffectiveColor(rootColor board.Color, rootDepth, depth int, mode GameMode) board.Color {
	if mode != ModeRotating {
		return rootColor
	}
	plies := rootDepth - depth
	if (plies/2)%2 == 1 {
		return rootColor.Other()
	}
	return rootColor
}
