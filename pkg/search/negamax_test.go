package search_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/sgeipel/corvid/pkg/eval"
	"github.com/sgeipel/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolve matches a long-algebraic move (missing capture/extra metadata) against s's legal
// moves, recovering the generator-supplied fields needed to actually play it.
func resolve(t *testing.T, s *board.State, str string) board.Move {
	t.Helper()
	mv, err := board.ParseMove(str)
	require.NoError(t, err)
	for _, cand := range s.LegalMoves() {
		if cand.Equals(mv) {
			return cand
		}
	}
	t.Fatalf("move %v is not legal in position\n%v", str, s.BoardString())
	return board.Move{}
}

func TestNegamaxMateInOneAsWhite(t *testing.T) {
	s, err := fen.Decode("5k2/8/5K1R/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	var nodes uint64
	res := search.Negamax(s, search.NewParams(3), search.BlockSignal{}, &nodes)

	require.True(t, res.HasMove)
	assert.Equal(t, "h6h8", res.Move.String())
	assert.Equal(t, eval.MatePly(1), res.Score)
}

func TestNegamaxMateInOneAsBlack(t *testing.T) {
	s, err := fen.Decode("8/8/8/8/7p/5k1r/8/5K2 b - - 0 1")
	require.NoError(t, err)

	var nodes uint64
	res := search.Negamax(s, search.NewParams(2), search.BlockSignal{}, &nodes)

	require.True(t, res.HasMove)
	assert.Equal(t, "h3h1", res.Move.String())
	assert.Equal(t, eval.MatePly(1), res.Score)
}

// getPV replays the principal variation one negamax search per ply, as in a fresh descent
// from the root at each step, matching how a depth-limited engine reports its line.
func getPV(t *testing.T, position string, depth int) []string {
	t.Helper()

	var pv []string
	var made []string
	for i := 0; i < depth; i++ {
		s, err := fen.Decode(position)
		require.NoError(t, err)
		for _, mv := range made {
			s.Make(resolve(t, s, mv))
		}

		var nodes uint64
		res := search.Negamax(s, search.NewParams(depth-i), search.BlockSignal{}, &nodes)
		if !res.HasMove {
			break
		}
		pv = append(pv, res.Move.String())
		made = append(made, res.Move.String())
	}
	return pv
}

func TestNegamaxMateInTwo(t *testing.T) {
	const fenStr = "6k1/ppp5/8/4K1p1/b4r2/8/3r4/8 b - - 7 39"

	pv := getPV(t, fenStr, 4)
	require.GreaterOrEqual(t, len(pv), 3)
	assert.Equal(t, []string{"a4c6", "e5e6", "d2e2"}, pv[:3])

	s, err := fen.Decode(fenStr)
	require.NoError(t, err)
	var nodes uint64
	res := search.Negamax(s, search.NewParams(4), search.BlockSignal{}, &nodes)
	assert.Equal(t, eval.MatePly(3), res.Score)
}
