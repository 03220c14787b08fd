// Package board contains the chess position representation and its incremental
// make/unmake move application.
package board

import (
	"fmt"

	"github.com/sgeipel/corvid/pkg/eval"
)

// StateExtra is the per-ply reversible metadata that make/unmake push and pop alongside
// the board itself.
type StateExtra struct {
	Castle  CastleRights
	Capture PieceKind // NoPiece if the preceding move was not a capture
	Enp     Pos       // meaningful iff EnpSet
	EnpSet  bool
}

// State is a mutable chess position together with enough per-ply history to reverse any
// sequence of make calls exactly. It is not safe for concurrent use.
type State struct {
	ply      uint32
	plyClock uint32
	board    [8][8]Square
	kingPos  [NumColors]Pos
	curExtra StateExtra
	extras   []StateExtra
	moves    []Move
	fastEval eval.FastEval
}

// NewState returns an empty board with no castling rights and no en passant target.
// Use fen.Decode, or Default, to obtain a playable position.
func NewState() *State {
	return &State{}
}

// Default returns the standard initial chess position.
func Default() *State {
	s := NewState()

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := int8(0); x < 8; x++ {
		s.Set(Pos{X: x, Y: 0}, NewSquare(White, backRank[x]))
		s.Set(Pos{X: x, Y: 1}, NewSquare(White, Pawn))
		s.Set(Pos{X: x, Y: 6}, NewSquare(Black, Pawn))
		s.Set(Pos{X: x, Y: 7}, NewSquare(Black, backRank[x]))
	}

	var extra StateExtra
	extra.Castle.Set(White, Long, true)
	extra.Castle.Set(White, Short, true)
	extra.Castle.Set(Black, Long, true)
	extra.Castle.Set(Black, Short, true)
	s.commitExtra(extra)

	s.plyClock = 0
	return s
}

// Get returns the square at p, or false if p is off-board.
func (s *State) Get(p Pos) (Square, bool) {
	if !p.IsValid() {
		return Square{}, false
	}
	return s.board[p.Y][p.X], true
}

// MustGet returns the square at p. p must be on-board.
func (s *State) MustGet(p Pos) Square {
	return s.board[p.Y][p.X]
}

// Set requires p on-board. It updates the board, informs the incremental evaluator of
// the removal of the old occupant and the addition of the new one, and keeps the king
// position cache current.
func (s *State) Set(p Pos, sq Square) {
	old := s.board[p.Y][p.X]
	s.fastEval.Change(false, old, p)
	s.fastEval.Change(true, sq, p)
	s.board[p.Y][p.X] = sq

	if sq.Set && sq.Piece.Kind == King {
		s.kingPos[sq.Piece.Color] = p
	}
}

// Turn returns White iff the ply counter is even.
func (s *State) Turn() Color {
	if s.ply%2 == 0 {
		return White
	}
	return Black
}

// Ply returns the half-move counter from game start.
func (s *State) Ply() uint32 {
	return s.ply
}

// PlyClock returns the half-moves since the last pawn move or capture. Parsed and
// preserved but not consulted by search (no fifty-move-rule adjudication).
func (s *State) PlyClock() uint32 {
	return s.plyClock
}

// KingPos returns the cached square of the color's king.
func (s *State) KingPos(c Color) Pos {
	return s.kingPos[c]
}

// EnPassant returns the en passant target square (the destination of an immediately
// preceding two-square pawn push), if any.
func (s *State) EnPassant() (Pos, bool) {
	return s.curExtra.Enp, s.curExtra.EnpSet
}

// Extra returns the current reversible metadata (castling rights, en passant target).
func (s *State) Extra() StateExtra {
	return s.curExtra
}

// FastScore returns the incremental material+PST evaluation, White's perspective.
func (s *State) FastScore() eval.Score {
	return s.fastEval.Score()
}

// RelNeg converts an absolute (White-positive) score to the side-to-move's perspective.
func (s *State) RelNeg(score eval.Score) eval.Score {
	return eval.Score(s.Turn().RelNeg(int16(score)))
}

// MoveLen returns the number of moves made (and not yet unmade).
func (s *State) MoveLen() int {
	return len(s.moves)
}

func (s *State) commitExtra(extra StateExtra) {
	s.curExtra = extra
}

// enPassantCapturedSquare returns where the captured pawn sits for an en passant move:
// the destination's file, the origin's rank -- not on mv.B.
func enPassantCapturedSquare(mv Move) Pos {
	return Pos{X: mv.B.X, Y: mv.A.Y}
}

// Make applies mv in place. mv must be pseudo-legal (as returned by PseudoLegalMoves);
// no legality (king safety) checking is performed here -- see IsLegalAfterMake.
func (s *State) Make(mv Move) {
	s.extras = append(s.extras, s.curExtra)
	s.moves = append(s.moves, mv)

	aSq := s.MustGet(mv.A)
	p := aSq.Piece
	bSq := s.MustGet(mv.B)

	if debugAssertions {
		if !aSq.Set || p.Color != s.Turn() {
			panic(fmt.Sprintf("make %v: no mover of the side to move at %v", mv, mv.A))
		}
		if bSq.Set && bSq.Piece.Color == p.Color {
			panic(fmt.Sprintf("make %v: destination occupied by own piece", mv))
		}
	}

	switch mv.Extra.Kind {
	case EnPassant:
		if debugAssertions && (p.Kind != Pawn || bSq.Set) {
			panic(fmt.Sprintf("make %v: malformed en passant", mv))
		}
		mv.Capture = NoPiece
		s.Set(enPassantCapturedSquare(mv), Empty)
	case Promote:
		p.Kind = mv.Extra.Promote
	case Castle:
		src, dst := CastleRookPath(s.Turn(), mv.Extra.Side)
		s.Set(src, Empty)
		s.Set(dst, NewSquare(s.Turn(), Rook))
	}

	extra := s.curExtra
	extra.EnpSet = false
	extra.Capture = mv.Capture
	if mv.Extra.IsEnPassant() {
		extra.Capture = Pawn
	}
	switch p.Kind {
	case Pawn:
		if abs8(mv.B.Y-mv.A.Y) == 2 {
			extra.Enp, extra.EnpSet = mv.B, true
		}
	case King:
		extra.Castle.Set(s.Turn(), Long, false)
		extra.Castle.Set(s.Turn(), Short, false)
	case Rook:
		for _, side := range []CastleSide{Long, Short} {
			if src, _ := CastleRookPath(s.Turn(), side); mv.A == src {
				extra.Castle.Set(s.Turn(), side, false)
			}
		}
	}
	if mv.Capture == Rook {
		enemy := s.Turn().Opponent()
		for _, side := range []CastleSide{Long, Short} {
			if src, _ := CastleRookPath(enemy, side); mv.B == src {
				extra.Castle.Set(enemy, side, false)
			}
		}
	}
	s.commitExtra(extra)

	s.Set(mv.A, Empty)
	s.Set(mv.B, Square{Piece: p, Set: true})

	s.ply++
}

// Unmake reverses the most recent Make, restoring the State exactly, including the
// incremental evaluator score and the king position cache.
func (s *State) Unmake() {
	s.ply--
	extra := s.extras[len(s.extras)-1]
	s.extras = s.extras[:len(s.extras)-1]
	mv := s.moves[len(s.moves)-1]
	s.moves = s.moves[:len(s.moves)-1]

	bSq := s.MustGet(mv.B)
	p := bSq.Piece

	enemy := s.Turn().Opponent()
	enemySq := func(k PieceKind) Square { return NewSquare(enemy, k) }

	switch mv.Extra.Kind {
	case EnPassant:
		mv.Capture = NoPiece
		s.Set(enPassantCapturedSquare(mv), enemySq(Pawn))
	case Promote:
		p.Kind = Pawn
	case Castle:
		src, dst := CastleRookPath(s.Turn(), mv.Extra.Side)
		s.Set(dst, Empty)
		s.Set(src, NewSquare(s.Turn(), Rook))
	}

	s.commitExtra(extra)

	s.Set(mv.A, Square{Piece: p, Set: true})
	if mv.Capture != NoPiece {
		s.Set(mv.B, enemySq(mv.Capture))
	} else {
		s.Set(mv.B, Empty)
	}
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

// debugAssertions gates the precondition checks documented in §4.C.1: piece at mv.A
// exists and belongs to the side to move, and the destination does not hold a same
// color piece. These never fire on moves drawn from LegalMoves.
const debugAssertions = true

// SetPly sets the ply counter and half-move clock directly. Used by the fen package
// when reconstructing a position, after placing pieces and committing extras with Set
// and CommitExtra.
func (s *State) SetPly(ply, plyClock uint32) {
	s.ply = ply
	s.plyClock = plyClock
}

// CommitExtra installs extra as the current reversible metadata. Used by the fen package
// while building a State from scratch.
func (s *State) CommitExtra(extra StateExtra) {
	s.commitExtra(extra)
}

// BoardString renders the board rank 8 down to rank 1, files a-h, one rank per line.
func (s *State) BoardString() string {
	var b []byte
	for y := int8(7); y >= 0; y-- {
		for x := int8(0); x < 8; x++ {
			if x > 0 {
				b = append(b, ' ')
			}
			b = append(b, []byte(s.board[y][x].String())...)
		}
		if y > 0 {
			b = append(b, '\n')
		}
	}
	return string(b)
}
