package board_test

import (
	"testing"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot captures every observable facet of a State so make/unmake round-trips can be
// compared without relying on internal field access.
type snapshot struct {
	board    string
	turn     board.Color
	ply      uint32
	plyClock uint32
	kingW    board.Pos
	kingB    board.Pos
	enp      board.Pos
	enpSet   bool
	extra    board.StateExtra
	score    int
	moveLen  int
}

func snap(s *board.State) snapshot {
	enp, enpSet := s.EnPassant()
	return snapshot{
		board:    s.BoardString(),
		turn:     s.Turn(),
		ply:      s.Ply(),
		plyClock: s.PlyClock(),
		kingW:    s.KingPos(board.White),
		kingB:    s.KingPos(board.Black),
		enp:      enp,
		enpSet:   enpSet,
		extra:    s.Extra(),
		score:    int(s.FastScore()),
		moveLen:  s.MoveLen(),
	}
}

func TestDefaultBoardString(t *testing.T) {
	expected := "r n b q k b n r\n" +
		"p p p p p p p p\n" +
		". . . . . . . .\n" +
		". . . . . . . .\n" +
		". . . . . . . .\n" +
		". . . . . . . .\n" +
		"P P P P P P P P\n" +
		"R N B Q K B N R"
	assert.Equal(t, expected, board.Default().BoardString())
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{"quiet opening", fen.Startpos, []string{"e2e4", "e7e5", "g1f3", "b8c6"}},
		{"en passant capture", "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3", []string{"d4e3"}},
		{"kingside castle", "rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4", []string{"e1g1"}},
		{"queenside castle", "r3kbnr/pppqpppp/2np4/8/8/2NPB3/PPPQPPPP/R3KBNR b KQkq - 6 5", []string{"e8c8"}},
		{"promotion with capture", "rnbq1bnr/pppPpppp/8/8/k7/8/PPP1PPPP/RNBQKBNR w KQ - 0 5", []string{"d7c8q"}},
		{"kiwipete deep line", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			[]string{"e5d7", "a6b5", "f3f6", "e7f6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			before := snap(s)

			var mvs []board.Move
			for _, str := range tt.moves {
				mv, err := board.ParseMove(str)
				require.NoError(t, err)
				mvs = append(mvs, resolve(t, s, mv))
				s.Make(mvs[len(mvs)-1])
			}
			for i := len(mvs) - 1; i >= 0; i-- {
				s.Unmake()
			}

			assert.Equal(t, before, snap(s))
		})
	}
}

// resolve matches mv (parsed without capture/extra metadata) against the legal moves
// available at s, to recover the generator-supplied capture and extra fields.
func resolve(t *testing.T, s *board.State, mv board.Move) board.Move {
	t.Helper()
	for _, cand := range s.LegalMoves() {
		if cand.Equals(mv) {
			return cand
		}
	}
	t.Fatalf("move %v is not legal in position\n%v", mv, s.BoardString())
	return board.Move{}
}

func TestFastScoreMatchesMaterialSymmetry(t *testing.T) {
	s := board.Default()
	assert.EqualValues(t, 0, s.FastScore(), "initial position is materially symmetric")
}
