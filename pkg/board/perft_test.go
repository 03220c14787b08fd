package board_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftNodeCounts(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []uint64
	}{
		{"initial", fen.Startpos, []uint64{20, 400, 8902, 197281}},
		{"kiwipete", kiwipete, []uint64{48, 2039, 97862}},
		{"pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238}},
		{"pos4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
		{"pos5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}},
		{"pos6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{46, 2079, 89890}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			for d, want := range tt.nodes {
				assert.Equal(t, want, s.Perft(uint32(d+1)).Nodes, "depth %d", d+1)
			}
		})
	}
}

func TestPerftKiwipetePrecise(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)

	want := board.Perft{Nodes: 97862, Captures: 17102, EnPassants: 45, Castles: 3162, Promotions: 0}
	assert.Equal(t, want, s.Perft(3))
}
