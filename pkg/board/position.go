package board

import "fmt"

// BoardDim is the board dimension: 8x8.
const BoardDim int8 = 8

// Pos is a board square addressed by file (x) and rank (y), both in [0;8). (0,0) is a1.
// Off-board positions are representable; they arise transiently during move generation
// and are rejected by State.Get.
type Pos struct {
	X, Y int8
}

func NewPos(x, y int8) Pos {
	return Pos{X: x, Y: y}
}

func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Pos) Sub(o Pos) Pos {
	return Pos{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Pos) Mul(n int8) Pos {
	return Pos{X: p.X * n, Y: p.Y * n}
}

func (p Pos) Neg() Pos {
	return Pos{X: -p.X, Y: -p.Y}
}

// IsValid returns true iff the position is on the board.
func (p Pos) IsValid() bool {
	return 0 <= p.X && p.X < BoardDim && 0 <= p.Y && p.Y < BoardDim
}

func (p Pos) String() string {
	return fmt.Sprintf("%c%c", 'a'+p.X, '1'+p.Y)
}

// ParsePos parses a square in algebraic notation, e.g. "a1" or "h8".
func ParsePos(str string) (Pos, error) {
	if len(str) != 2 {
		return Pos{}, fmt.Errorf("invalid square: %q", str)
	}
	x := int8(str[0] - 'a')
	y := int8(str[1] - '1')
	p := Pos{X: x, Y: y}
	if !p.IsValid() {
		return Pos{}, fmt.Errorf("invalid square: %q", str)
	}
	return p, nil
}

// Cardinal directions. White advances toward increasing y; rank 1 is y=0, rank 8 is y=7.
var (
	N = Pos{X: 0, Y: 1}
	S = Pos{X: 0, Y: -1}
	E = Pos{X: 1, Y: 0}
	W = Pos{X: -1, Y: 0}
)

// PawnDir returns the direction a pawn of the given color advances.
func PawnDir(c Color) Pos {
	if c == White {
		return N
	}
	return S
}

// KnightOpts are the eight L-shaped knight leaps.
var KnightOpts = []Pos{
	{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: -2},
	{X: 2, Y: 1}, {X: -2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: -1},
}

// BishopOpts are the four diagonal rider directions.
var BishopOpts = []Pos{
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// RookOpts are the four orthogonal rider directions.
var RookOpts = []Pos{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
}

// KingOpts is the union of BishopOpts and RookOpts: the eight king neighbours.
var KingOpts = append(append([]Pos{}, BishopOpts...), RookOpts...)
