package board

import "fmt"

// ExtraKind tags the variant held by MoveExtra.
type ExtraKind uint8

const (
	NoExtra ExtraKind = iota
	EnPassant
	Castle
	Promote
)

// MoveExtra is a tagged variant describing en passant, castling or promotion. The zero
// value (NoExtra) means the move carries no extra semantics.
type MoveExtra struct {
	Kind    ExtraKind
	Side    CastleSide // valid iff Kind == Castle
	Promote PieceKind  // valid iff Kind == Promote
}

func (e MoveExtra) IsEnPassant() bool { return e.Kind == EnPassant }
func (e MoveExtra) IsCastle() bool    { return e.Kind == Castle }
func (e MoveExtra) IsPromote() bool   { return e.Kind == Promote }

// Move represents a not-necessarily-legal move, possibly annotated by generation with
// capture and extra metadata.
type Move struct {
	A, B    Pos
	Capture PieceKind // NoPiece if the move does not capture
	Extra   MoveExtra
}

func (m Move) Equals(o Move) bool {
	return m.A == o.A && m.B == o.B && m.Extra.Kind == o.Extra.Kind && m.Extra.Promote == o.Extra.Promote
}

func (m Move) IsCapture() bool {
	return m.Capture != NoPiece
}

// String formats the move in pure coordinate notation, e.g. "e2e4" or "e7e8q", matching
// the UCI wire format.
func (m Move) String() string {
	if m.Extra.IsPromote() {
		return fmt.Sprintf("%v%v%v", m.A, m.B, m.Extra.Promote)
	}
	return fmt.Sprintf("%v%v", m.A, m.B)
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries no contextual metadata (capture, en passant, castle); match it
// against LegalMoves to recover that.
func ParseMove(str string) (Move, error) {
	if len(str) != 4 && len(str) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}
	a, err := ParsePos(str[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	b, err := ParsePos(str[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	if a == b {
		return Move{}, fmt.Errorf("invalid move %q: same origin and destination", str)
	}

	mv := Move{A: a, B: b}
	if len(str) == 5 {
		kind, ok := ParsePieceKind(rune(str[4]))
		if !ok || kind == Pawn || kind == King {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		mv.Extra = MoveExtra{Kind: Promote, Promote: kind}
	}
	return mv, nil
}
