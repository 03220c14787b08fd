// Package eval contains the incremental position evaluator used by search leaves.
package eval

import (
	"fmt"

	"github.com/sgeipel/corvid/pkg/board"
)

// Score is a signed evaluation in centipawns, positive favors White.
type Score int16

const (
	MinScore Score = -30000
	MaxScore Score = 30000
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// CHECKMATE is the absolute magnitude assigned to a checkmated position, before mate-distance
// adjustment. DRAW is the score of a stalemate (or any other drawn terminal position).
const (
	CHECKMATE Score = 20000
	DRAW      Score = 0
)

// MateBound is the threshold above which a score's absolute value denotes a forced mate.
// CHECKMATE minus the deepest ply the engine is ever asked to search leaves ample headroom
// for mate-distance encoding without colliding with ordinary material scores.
const MateBound = CHECKMATE - 1000

// MatePly returns the score denoting a forced mate in n plies (n >= 1), from the mating
// side's perspective.
func MatePly(n int) Score {
	return CHECKMATE - Score(n)
}

// scoreTable is a piece-square table indexed [rel_y(color,y)][x], mover's perspective.
type scoreTable [8][8]int16

var material = [board.NumPieces + 1]Score{
	board.NoPiece: 0,
	board.Pawn:    100,
	board.Knight:  320,
	board.Bishop:  330,
	board.Rook:    500,
	board.Queen:   900,
	board.King:    0,
}

var pawnTable = scoreTable{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = scoreTable{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = scoreTable{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = scoreTable{
	{0, 0, 0, 5, 5, 0, 0, 0},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var queenTable = scoreTable{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = scoreTable{
	{20, 30, 10, 0, 0, 10, 30, 20},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
}

func pst(k board.PieceKind) *scoreTable {
	switch k {
	case board.Pawn:
		return &pawnTable
	case board.Knight:
		return &knightTable
	case board.Bishop:
		return &bishopTable
	case board.Rook:
		return &rookTable
	case board.Queen:
		return &queenTable
	case board.King:
		return &kingTable
	default:
		return nil
	}
}

// FastEval is the incremental material + piece-square evaluator. It is maintained by
// State.Set on every board write and never recomputed from scratch during search.
type FastEval struct {
	score Score
}

// Change folds the addition (add=true) or removal (add=false) of sq at pos into the
// running score. Called twice per State.Set: once to remove the old occupant, once to
// add the new one.
func (e *FastEval) Change(add bool, sq board.Square, pos board.Pos) {
	if !sq.Set {
		return
	}
	p := sq.Piece
	tbl := pst(p.Kind)
	value := material[p.Kind] + Score(tbl[p.Color.RelY(pos.Y)][pos.X])

	side := Score(1)
	if p.Color == board.Black {
		side = -1
	}

	diff := side * value
	if !add {
		diff = -diff
	}
	e.score += diff
}

// Score returns the running evaluation from White's perspective.
func (e *FastEval) Score() Score {
	return e.score
}
