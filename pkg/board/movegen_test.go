package board_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playLine runs a sequence of long-algebraic moves against s, resolving each against the
// legal moves available at the time it is played.
func playLine(t *testing.T, s *board.State, moves ...string) {
	t.Helper()
	for _, str := range moves {
		mv, err := board.ParseMove(str)
		require.NoError(t, err)
		s.Make(resolve(t, s, mv))
	}
}

func isLegal(t *testing.T, s *board.State, move string) bool {
	t.Helper()
	mv, err := board.ParseMove(move)
	require.NoError(t, err)
	for _, cand := range s.LegalMoves() {
		if cand.Equals(mv) {
			return true
		}
	}
	return false
}

func TestKingIntoCheckRejected(t *testing.T) {
	s := board.Default()
	playLine(t, s, "b2b3", "e7e5", "c1a3")
	assert.False(t, isLegal(t, s, "e8e7"))
}

func TestBongcloudLegal(t *testing.T) {
	s := board.Default()
	playLine(t, s, "d2d3", "a7a5")
	assert.True(t, isLegal(t, s, "e1d2"))
}

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestCastleBlockedByPawnMove(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)
	playLine(t, s, "a1b1", "h3g2")
	assert.False(t, isLegal(t, s, "e1g1"))
}

func TestCastleOutOfCheckRejected(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)
	playLine(t, s, "a1b1", "f6d5", "f3f7")
	assert.False(t, isLegal(t, s, "e8c8"))
}

func TestNoCastleAfterRookCapture(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)
	playLine(t, s, "e2a6", "b4b3", "a6c8")
	assert.False(t, isLegal(t, s, "e8c8"))
}

func TestKingPosCacheAgreesWithBoard(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)
	playLine(t, s, "e1g1", "e8c8")

	for _, c := range []board.Color{board.White, board.Black} {
		sq := s.MustGet(s.KingPos(c))
		assert.True(t, sq.Set)
		assert.Equal(t, board.King, sq.Piece.Kind)
		assert.Equal(t, c, sq.Piece.Color)
	}
}

func TestLegalIsSubsetOfPseudoLegal(t *testing.T) {
	s, err := fen.Decode(kiwipete)
	require.NoError(t, err)

	pseudo := s.PseudoLegalMoves()
	for _, mv := range s.LegalMoves() {
		found := false
		for _, cand := range pseudo {
			if cand == mv {
				found = true
				break
			}
		}
		assert.True(t, found, "legal move %v missing from pseudo-legal set", mv)
	}
}

func TestPromotionGeneratesFourVariants(t *testing.T) {
	s, err := fen.Decode("8/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)

	count := 0
	for _, mv := range s.LegalMoves() {
		if mv.A.String() == "a7" && mv.B.String() == "a8" {
			count++
		}
	}
	assert.Equal(t, 4, count)
}

func TestPromotionWithCaptureGeneratesFourVariants(t *testing.T) {
	s, err := fen.Decode("n1n5/1P6/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)

	count := 0
	for _, mv := range s.LegalMoves() {
		if mv.A.String() == "b7" && mv.B.String() == "a8" {
			count++
		}
	}
	assert.Equal(t, 4, count)
}
