package board

// CastleRights tracks, per color and side, whether that castling right still remains.
// A right is lost permanently upon the king's movement, movement of the relevant rook,
// or that rook's capture; it is never regained.
type CastleRights [NumColors][NumSides]bool

func (c CastleRights) Get(clr Color, side CastleSide) bool {
	return c[clr][side]
}

func (c *CastleRights) Set(clr Color, side CastleSide, allowed bool) {
	c[clr][side] = allowed
}

// CastleRookPath returns the rook's origin and destination file for the given castle,
// on the mover's home rank.
func CastleRookPath(clr Color, side CastleSide) (src, dst Pos) {
	var srcX, dstX int8
	switch side {
	case Long:
		srcX, dstX = 0, 3
	case Short:
		srcX, dstX = 7, 5
	}
	y := clr.RelY(0)
	return Pos{X: srcX, Y: y}, Pos{X: dstX, Y: y}
}
