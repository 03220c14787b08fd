// Package fen parses and formats chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sgeipel/corvid/pkg/board"
)

// Startpos is the FEN of the standard initial chess position.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a fresh State. fen must hold exactly six space-separated
// fields: piece placement, active color, castling availability, en passant target square,
// halfmove clock, fullmove number.
func Decode(fen string) (*board.State, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("invalid fen %q: want 6 fields, got %d", fen, len(fields))
	}
	placement, active, castle, enp, half, full := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	turn, err := parseColor(active)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}

	s := board.NewState()
	if err := decodePlacement(s, placement); err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}

	extra, err := decodeExtra(castle, enp, turn)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}
	s.CommitExtra(extra)

	plyClock, err := strconv.ParseUint(half, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: bad halfmove clock %q", fen, half)
	}
	fullMove, err := strconv.ParseUint(full, 10, 32)
	if err != nil || fullMove == 0 {
		return nil, fmt.Errorf("invalid fen %q: bad fullmove number %q", fen, full)
	}

	ply := 2 * (uint32(fullMove) - 1)
	if turn == board.Black {
		ply++
	}
	s.SetPly(ply, uint32(plyClock))

	return s, nil
}

func parseColor(s string) (board.Color, error) {
	switch s {
	case "w":
		return board.White, nil
	case "b":
		return board.Black, nil
	default:
		return board.ZeroColor, fmt.Errorf("bad active color %q", s)
	}
}

func decodePlacement(s *board.State, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != int(board.BoardDim) {
		return fmt.Errorf("bad piece placement %q: want %d ranks, got %d", placement, board.BoardDim, len(rows))
	}

	for i, row := range rows {
		y := board.BoardDim - 1 - int8(i)
		x := int8(0)
		for _, r := range row {
			if unicode.IsDigit(r) {
				x += int8(r - '0')
				continue
			}
			if x >= board.BoardDim {
				return fmt.Errorf("bad piece placement %q: rank overruns the board", placement)
			}
			sq, err := parseSquare(r)
			if err != nil {
				return err
			}
			s.Set(board.Pos{X: x, Y: y}, sq)
			x++
		}
		if x != board.BoardDim {
			return fmt.Errorf("bad piece placement %q: rank does not sum to %d files", placement, board.BoardDim)
		}
	}
	return nil
}

func parseSquare(r rune) (board.Square, error) {
	kind, ok := board.ParsePieceKind(unicode.ToLower(r))
	if !ok {
		return board.Square{}, fmt.Errorf("bad piece character %q", r)
	}
	clr := board.Black
	if unicode.IsUpper(r) {
		clr = board.White
	}
	return board.NewSquare(clr, kind), nil
}

// decodeExtra parses the castling and en passant fields. The en passant field, per FEN, is
// the square immediately behind the just-pushed pawn; it is translated to this package's
// internal convention, the destination square of the double push (see board.StateExtra).
func decodeExtra(castle, enp string, turn board.Color) (board.StateExtra, error) {
	var extra board.StateExtra
	if castle != "-" {
		for _, r := range castle {
			switch r {
			case 'K':
				extra.Castle.Set(board.White, board.Short, true)
			case 'Q':
				extra.Castle.Set(board.White, board.Long, true)
			case 'k':
				extra.Castle.Set(board.Black, board.Short, true)
			case 'q':
				extra.Castle.Set(board.Black, board.Long, true)
			default:
				return extra, fmt.Errorf("bad castling field %q", castle)
			}
		}
	}

	if enp != "-" {
		behind, err := board.ParsePos(enp)
		if err != nil {
			return extra, fmt.Errorf("bad en passant field %q: %w", enp, err)
		}
		mover := turn.Opponent()
		extra.Enp = behind.Add(board.PawnDir(mover))
		extra.EnpSet = true
	}
	return extra, nil
}

// Encode renders s as a FEN record, the exact inverse of Decode for a well-formed State.
func Encode(s *board.State) string {
	var b strings.Builder
	b.WriteString(encodePlacement(s))
	b.WriteByte(' ')
	b.WriteString(s.Turn().String())
	b.WriteByte(' ')
	b.WriteString(encodeCastle(s))
	b.WriteByte(' ')
	b.WriteString(encodeEnPassant(s))
	fmt.Fprintf(&b, " %d %d", s.PlyClock(), 1+s.Ply()/2)
	return b.String()
}

func encodePlacement(s *board.State) string {
	var rows []string
	for y := board.BoardDim - 1; y >= 0; y-- {
		var row strings.Builder
		blanks := 0
		flush := func() {
			if blanks > 0 {
				fmt.Fprintf(&row, "%d", blanks)
				blanks = 0
			}
		}
		for x := int8(0); x < board.BoardDim; x++ {
			sq := s.MustGet(board.Pos{X: x, Y: y})
			if !sq.Set {
				blanks++
				continue
			}
			flush()
			row.WriteString(sq.Piece.String())
		}
		flush()
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "/")
}

func encodeCastle(s *board.State) string {
	extra := s.Extra()
	var b strings.Builder
	if extra.Castle.Get(board.White, board.Short) {
		b.WriteByte('K')
	}
	if extra.Castle.Get(board.White, board.Long) {
		b.WriteByte('Q')
	}
	if extra.Castle.Get(board.Black, board.Short) {
		b.WriteByte('k')
	}
	if extra.Castle.Get(board.Black, board.Long) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func encodeEnPassant(s *board.State) string {
	target, ok := s.EnPassant()
	if !ok {
		return "-"
	}
	mover := s.Turn().Opponent()
	behind := target.Sub(board.PawnDir(mover))
	return behind.String()
}
