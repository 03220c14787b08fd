package board

import (
	"fmt"
	"sort"
	"strings"
)

// Perft tallies a move-path-enumeration count at a fixed depth, broken down by the kind of
// terminal move that produced each leaf. It is used to validate move generation against
// known-good counts for standard test positions.
type Perft struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
}

// Add accumulates o into p, field by field.
func (p *Perft) Add(o Perft) {
	p.Nodes += o.Nodes
	p.Captures += o.Captures
	p.EnPassants += o.EnPassants
	p.Castles += o.Castles
	p.Promotions += o.Promotions
}

// Perft walks the legal move tree to depth and returns the leaf counts, broken down by move
// kind. depth 0 counts the current position itself as a single node.
func (s *State) Perft(depth uint32) Perft {
	var res Perft
	if depth == 0 {
		res.Nodes = 1
		return res
	}

	for _, mv := range s.PseudoLegalMoves() {
		s.Make(mv)
		if s.IsLegalAfterMake() {
			if depth == 1 {
				res.Nodes++
				switch mv.Extra.Kind {
				case Castle:
					res.Castles++
				case EnPassant:
					res.EnPassants++
				case Promote:
					res.Promotions++
				}
				if mv.IsCapture() {
					res.Captures++
				}
			} else {
				res.Add(s.Perft(depth - 1))
			}
		}
		s.Unmake()
	}
	return res
}

// Perftree renders a per-root-move node count breakdown, one "move count" line per legal
// move at the top level followed by a blank line and the grand total, in the format
// expected by the external perftree divide-and-compare tooling.
func (s *State) Perftree(depth uint32) string {
	type line struct {
		move  string
		nodes uint64
	}

	var sum uint64
	var lines []line
	for _, mv := range s.LegalMoves() {
		s.Make(mv)
		nodes := s.Perft(depth - 1).Nodes
		s.Unmake()

		sum += nodes
		lines = append(lines, line{move: mv.String(), nodes: nodes})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].move < lines[j].move })

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %d", l.move, l.nodes)
	}
	fmt.Fprintf(&b, "\n\n%d", sum)
	return b.String()
}
