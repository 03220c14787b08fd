// Package search implements negamax search with alpha-beta pruning, move ordering by a
// shallow static evaluation, and iterative deepening with aspiration windows.
package search

import (
	"sort"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/eval"
)

// Params carries the search window through a negamax descent.
type Params struct {
	Depth int
	Alpha eval.Score
	Beta  eval.Score
	Noise eval.Random
}

// NewParams returns a full-width window at depth, matching the widest range a Score can hold
// without the negation in tick overflowing.
func NewParams(depth int) Params {
	return Params{Depth: depth, Alpha: -scoreMax, Beta: scoreMax}
}

// tick descends one ply: the window flips sign and swaps, per the negamax convention.
func (p Params) tick() Params {
	return Params{Depth: p.Depth - 1, Alpha: -p.Beta, Beta: -p.Alpha, Noise: p.Noise}
}

func (p Params) contains(score eval.Score) bool {
	return p.Alpha < score && score < p.Beta
}

// tickScore negates a child's score for the parent's perspective and, for a score that
// denotes a forced mate, nudges it one ply closer to zero so distance-to-mate grows with
// each ply unwound.
func tickScore(enemy eval.Score) eval.Score {
	score := -enemy
	if abs(enemy) >= eval.MateBound {
		if score > 0 {
			score--
		} else {
			score++
		}
	}
	return score
}

func abs(s eval.Score) eval.Score {
	if s < 0 {
		return -s
	}
	return s
}

// Result is a search's chosen move and its score, from the side-to-move's perspective.
type Result struct {
	Move    board.Move
	HasMove bool
	Score   eval.Score
}

// Negamax searches s to params.Depth, returning the best legal move and its score. It mutates
// s via make/unmake but leaves it unchanged on return. nodes accumulates the number of
// negamax calls made across the whole search, including recursive sub-calls.
func Negamax(s *board.State, params Params, signal Signal, nodes *uint64) Result {
	*nodes++
	if params.Depth <= 0 || signal.ShouldStop() {
		// A depth-0 leaf trusts the static evaluation rather than verifying the side to move
		// has a legal reply; this misses checkmates exactly at the horizon but is much faster.
		return Result{Score: s.RelNeg(s.FastScore()) + params.Noise.Sample()}
	}

	type ordered struct {
		mv    board.Move
		score eval.Score
	}

	pseudo := s.PseudoLegalMoves()
	moves := make([]ordered, len(pseudo))
	for i, mv := range pseudo {
		s.Make(mv)
		moves[i] = ordered{mv: mv, score: s.RelNeg(s.FastScore())}
		s.Unmake()
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].score < moves[j].score })

	var best Result
	for _, m := range moves {
		s.Make(m.mv)
		if s.IsLegalAfterMake() {
			enemy := Negamax(s, params.tick(), signal, nodes).Score
			our := tickScore(enemy)
			if our > params.Alpha {
				params.Alpha = our
			}
			if !best.HasMove || our > best.Score {
				best = Result{Move: m.mv, HasMove: true, Score: our}
			}
		}
		s.Unmake()

		if params.Beta <= params.Alpha {
			break
		}
	}

	if !best.HasMove {
		// No legal move survived: the position is terminal. EndScore is White-positive, so
		// RelNeg converts it to the side to move's perspective, as for an ordinary leaf.
		best.Score = s.RelNeg(s.EndScore())
	}
	return best
}
