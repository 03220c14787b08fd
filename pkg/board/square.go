package board

// Square is the content of one board cell: an optional piece. The zero value is empty.
type Square struct {
	Piece Piece
	Set   bool
}

// Empty is the empty square.
var Empty = Square{}

func NewSquare(c Color, k PieceKind) Square {
	return Square{Piece: Piece{Color: c, Kind: k}, Set: true}
}

func (s Square) String() string {
	if !s.Set {
		return "."
	}
	return s.Piece.String()
}
