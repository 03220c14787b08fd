package search_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/sgeipel/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchReturnsLegalMove(t *testing.T) {
	s, err := fen.Decode(fen.Startpos)
	require.NoError(t, err)

	var nodes uint64
	res := search.Search(s, 2, search.BlockSignal{}, &nodes)

	require.True(t, res.HasMove)
	found := false
	for _, cand := range s.LegalMoves() {
		if cand.Equals(res.Move) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearchStopsEarlyWithoutPanicking(t *testing.T) {
	s, err := fen.Decode(fen.Startpos)
	require.NoError(t, err)

	sig := search.NewAtomicSignal()
	sig.Stop()

	var nodes uint64
	res := search.Search(s, 5, sig, &nodes)

	// Stopped before the first depth ever completes: no move survives to report, but the
	// call returns promptly instead of searching to depth 5.
	assert.False(t, res.HasMove)
	assert.Greater(t, nodes, uint64(0))
}

func TestSearchPartialAndBestCallbacksFire(t *testing.T) {
	s, err := fen.Decode(fen.Startpos)
	require.NoError(t, err)

	var partials int
	var best search.Info
	sig := &search.AtomicSignal{
		OnPartial: func(info search.Info) { partials++ },
		OnBest:    func(info search.Info) { best = info },
	}

	var nodes uint64
	res := search.Search(s, 2, sig, &nodes)

	assert.Equal(t, 2, partials)
	assert.True(t, best.Result.HasMove)
	assert.Equal(t, res.Move, best.Result.Move)
}
