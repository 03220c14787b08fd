package fen_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		fen.Startpos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"r3kb2/pp2qp2/2n2B2/8/2B1P3/2N2r2/PPPQ3P/2KR3R b q - 0 16",
	}
	for _, tt := range tests {
		s, err := fen.Decode(tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(s))
	}
}

func TestEnPassantFieldTranslation(t *testing.T) {
	// After 1. e4, the FEN en passant field is "e3" -- the square behind the pawn -- while
	// the internal representation is the destination of the double push, e4.
	s, err := fen.Decode("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	target, ok := s.EnPassant()
	require.True(t, ok)
	assert.Equal(t, "e4", target.String())
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", fen.Encode(s))
}

func TestDecodeRejectsWrongFieldCount(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	assert.Error(t, err)
}

func TestDefaultMatchesStartpos(t *testing.T) {
	want, err := fen.Decode(fen.Startpos)
	require.NoError(t, err)
	assert.Equal(t, want.BoardString(), board.Default().BoardString())
}
