package board

import "github.com/sgeipel/corvid/pkg/eval"

// This file implements pseudo-legal move generation, attack detection and the king-safety
// filter that turns pseudo-legal moves into legal ones.

// rider scans from orig in each of options, calling f at every step until f returns false
// or the ray runs off-board.
func rider(orig Pos, options []Pos, f func(Pos) bool) {
	for _, dir := range options {
		pos := orig.Add(dir)
		for f(pos) {
			pos = pos.Add(dir)
		}
	}
}

// leaper calls f once at orig+dir for every dir in options.
func leaper(orig Pos, options []Pos, f func(Pos)) {
	for _, dir := range options {
		f(orig.Add(dir))
	}
}

// InCheck reports whether c's king currently sits on an attacked square.
func (s *State) InCheck(c Color) bool {
	return s.isAttacked(s.kingPos[c], c.Opponent())
}

// EndScore evaluates a terminal position (no legal move available) from White's perspective,
// like FastScore: checkmate scores CHECKMATE against the side to move, stalemate is a draw.
func (s *State) EndScore() eval.Score {
	if s.InCheck(s.Turn()) {
		return s.RelNeg(-eval.CHECKMATE)
	}
	return eval.DRAW
}

// isAttacked reports whether enemy attacks orig, independent of whose turn it is.
func (s *State) isAttacked(orig Pos, enemy Color) bool {
	enemyKnight := NewSquare(enemy, Knight)
	for _, opt := range KnightOpts {
		if sq, ok := s.Get(orig.Add(opt)); ok && sq == enemyKnight {
			return true
		}
	}

	// Reverse the pawn attack direction: it is relative to the square being attacked,
	// not to the attacking pawn.
	pdir := PawnDir(enemy.Opponent())
	enemyPawn := NewSquare(enemy, Pawn)
	for _, side := range []Pos{E, W} {
		if sq, ok := s.Get(orig.Add(pdir).Add(side)); ok && sq == enemyPawn {
			return true
		}
	}

	found := false
	check := func(threat PieceKind) func(Pos) bool {
		return func(pos Pos) bool {
			sq, ok := s.Get(pos)
			if !ok {
				return false
			}
			if !sq.Set {
				return !found
			}
			if sq.Piece.Color == enemy {
				switch {
				case sq.Piece.Kind == threat || sq.Piece.Kind == Queen:
					found = true
				case sq.Piece.Kind == King:
					diff := pos.Sub(orig)
					if max8(abs8(diff.X), abs8(diff.Y)) <= 1 {
						found = true
					}
				}
			}
			return false
		}
	}
	rider(orig, BishopOpts, check(Bishop))
	rider(orig, RookOpts, check(Rook))

	return found
}

func max8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

// IsLegalAfterMake reports whether mv, which must already be on the board (having just been
// made with Make), left the side that moved out of check. It does not unmake mv.
func (s *State) IsLegalAfterMake() bool {
	return !s.InCheck(s.Turn().Opponent())
}

// IsLegalMove makes mv, checks legality, unmakes it and returns the verdict.
func (s *State) IsLegalMove(mv Move) bool {
	s.Make(mv)
	legal := s.IsLegalAfterMake()
	s.Unmake()
	return legal
}

// LegalMoves returns every legal move available to the side to move.
func (s *State) LegalMoves() []Move {
	moves := s.PseudoLegalMoves()
	n := 0
	for _, mv := range moves {
		if s.IsLegalMove(mv) {
			moves[n] = mv
			n++
		}
	}
	return moves[:n]
}

// PseudoLegalMoves returns every move available to the side to move under the ordinary
// movement rules of each piece, without regard to whether it leaves its own king in check.
func (s *State) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 32)
	for y := int8(0); y < BoardDim; y++ {
		for x := int8(0); x < BoardDim; x++ {
			s.addPseudoLegalMoves(Pos{X: x, Y: y}, &moves)
		}
	}
	return moves
}

// addGate reports whether a move landing on a square with the given occupancy (true iff
// occupied) may be added.
type addGate func(occupied bool) bool

func anyOccupancy(bool) bool { return true }

func gateOccupied(want bool) addGate {
	return func(occupied bool) bool { return occupied == want }
}

// tryMove attempts to add a move from orig to dst, subject to gate. It reports whether the
// ray that produced dst should keep scanning past it: true iff dst was empty and the move
// was added.
func (s *State) tryMove(orig, dst Pos, gate addGate, extra MoveExtra, moves *[]Move) bool {
	sq, ok := s.Get(dst)
	if !ok {
		return false
	}
	if !gate(sq.Set) {
		return false
	}
	if !sq.Set {
		*moves = append(*moves, Move{A: orig, B: dst, Extra: extra})
		return true
	}
	if sq.Piece.Color != s.Turn() {
		*moves = append(*moves, Move{A: orig, B: dst, Capture: sq.Piece.Kind, Extra: extra})
	}
	return false
}

var promoteKinds = []PieceKind{Knight, Bishop, Rook, Queen}

// addPseudoLegalMoves appends every pseudo-legal move of the piece (if any) standing on
// orig, belonging to the side to move, to moves.
func (s *State) addPseudoLegalMoves(orig Pos, moves *[]Move) {
	sq := s.MustGet(orig)
	if !sq.Set || sq.Piece.Color != s.Turn() {
		return
	}
	clr, kind := sq.Piece.Color, sq.Piece.Kind

	// pawnMove adds a push or a diagonal take to dst, substituting the four promotion
	// variants when orig sits on the rank just short of the back rank. isTake pins whether
	// dst must be occupied (diagonal) or empty (push). Reports whether the single move
	// case continued, i.e. whether dst was empty and reachable -- used to gate the double
	// push.
	pawnMove := func(dst Pos, isTake bool) bool {
		gate := gateOccupied(isTake)
		if orig.Y == clr.Opponent().RelY(1) {
			for _, promote := range promoteKinds {
				s.tryMove(orig, dst, gate, MoveExtra{Kind: Promote, Promote: promote}, moves)
			}
			return false
		}
		return s.tryMove(orig, dst, gate, MoveExtra{}, moves)
	}

	switch kind {
	case Pawn:
		dir := PawnDir(clr)
		firstPush := pawnMove(orig.Add(dir), false)
		if firstPush && orig.Y == clr.RelY(1) {
			pawnMove(orig.Add(dir.Mul(2)), false)
		}

		enp, enpSet := s.EnPassant()
		for _, side := range []Pos{E, W} {
			takePos := orig.Add(dir).Add(side)
			yMatch := orig.Y == clr.Opponent().RelY(3)
			if enpSet && takePos.X == enp.X && yMatch {
				*moves = append(*moves, Move{A: orig, B: takePos, Capture: Pawn, Extra: MoveExtra{Kind: EnPassant}})
			} else {
				pawnMove(takePos, true)
			}
		}
	case Knight:
		leaper(orig, KnightOpts, func(dst Pos) { s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
	case Bishop:
		rider(orig, BishopOpts, func(dst Pos) bool { return s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
	case Rook:
		rider(orig, RookOpts, func(dst Pos) bool { return s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
	case Queen:
		rider(orig, BishopOpts, func(dst Pos) bool { return s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
		rider(orig, RookOpts, func(dst Pos) bool { return s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
	case King:
		leaper(orig, KingOpts, func(dst Pos) { s.tryMove(orig, dst, anyOccupancy, MoveExtra{}, moves) })
		s.addCastleMoves(orig, clr, moves)
	}
}

// addCastleMoves appends the castle from orig, if any, for each side whose precondition
// set (right retained, path clear, not through or out of check) holds.
func (s *State) addCastleMoves(orig Pos, clr Color, moves *[]Move) {
	tryCastleSide := func(dir Pos, side CastleSide) {
		if !s.curExtra.Castle.Get(clr, side) {
			return
		}

		src, dst := CastleRookPath(clr, side)
		for dst != src {
			if s.MustGet(dst).Set {
				return
			}
			dst = dst.Add(dir)
		}

		if !s.InCheck(clr) && !s.isAttacked(orig.Add(dir), clr.Opponent()) {
			*moves = append(*moves, Move{A: orig, B: orig.Add(dir.Mul(2)), Extra: MoveExtra{Kind: Castle, Side: side}})
		}
	}
	tryCastleSide(W, Long)
	tryCastleSide(E, Short)
}
