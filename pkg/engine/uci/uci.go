// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/sgeipel/corvid/pkg/engine"
	"github.com/sgeipel/corvid/pkg/eval"
	"github.com/sgeipel/corvid/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- fmt.Sprintf("option name Noise type spin default %v min 0 max 1000", d.e.Options().Noise)
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				// switch debug mode on/off; no additional "info string" traffic implemented.

			case "setoption":
				// setoption name <id> [value <x>]

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "Noise":
					n, _ := strconv.Atoi(value)
					d.e.SetNoise(uint(n))
				}

			case "register":
				// registration is not required by this engine.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// position [fen <fenstring> | startpos ] moves <move1> .... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "moves" || arg == "" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}
					d.lastPosition = line
					break
				}

				// New position.

				position := fen.Startpos
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				// go [depth <x>] [movetime <x>] [infinite] ... (wtime/btime/movestogo accepted
				// but not used for time management; only depth and movetime bound the search)

				d.ensureInactive(ctx)

				var depth uint
				infinite := false
				timeout := time.Duration(0)

				for i := 0; i < len(args); i++ {
					switch args[i] {
					case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", args[i-1], line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}

						switch args[i-1] {
						case "depth":
							depth = uint(n)
						case "movetime":
							timeout = time.Millisecond * time.Duration(n)
						}

					case "infinite":
						infinite = true

					default:
						// silently ignore anything else (searchmoves, ponder, ...)
					}
				}

				out, err := d.e.Analyze(ctx, depth)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				if timeout > 0 {
					time.AfterFunc(timeout, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// not implemented: engine never enters pondering on its own.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		d.out <- printPV(pv)
		if pv.HasMove {
			d.out <- fmt.Sprintf("bestmove %v", pv.Move)
		} else {
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 nodes 2124 nps 1710 time 1242 pv e2e4"

	parts := []string{"info", fmt.Sprintf("depth %v", pv.Depth), "score", formatScore(pv.Score)}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		ms := pv.Time.Milliseconds()
		if pv.Nodes > 0 && ms > 0 {
			parts = append(parts, fmt.Sprintf("nps %v", int64(time.Second/time.Millisecond)*int64(pv.Nodes)/ms))
		}
		parts = append(parts, fmt.Sprintf("time %v", ms))
	}
	if pv.HasMove {
		parts = append(parts, "pv", pv.Move.String())
	}
	return strings.Join(parts, " ")
}

// formatScore renders score as a UCI "cp <v>" or "mate <n>" token, n counted in moves (not
// plies), with sign indicating which side delivers the mate.
func formatScore(score eval.Score) string {
	if abs(score) < eval.MateBound {
		return fmt.Sprintf("cp %v", score)
	}

	var basePly int
	if score > 0 {
		basePly = int(score) - int(eval.CHECKMATE)
	} else {
		basePly = int(score) + int(eval.CHECKMATE)
	}
	n := -(basePly + basePly%2) / 2
	return fmt.Sprintf("mate %v", n)
}

func abs(s eval.Score) eval.Score {
	if s < 0 {
		return -s
	}
	return s
}
