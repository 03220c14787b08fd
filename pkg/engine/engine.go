// Package engine wires the board, evaluation and search packages into a stateful game-playing
// engine suitable for driving from UCI or an interactive console.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/board/fen"
	"github.com/sgeipel/corvid/pkg/eval"
	"github.com/sgeipel/corvid/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, iterative deepening runs unbounded until
	// halted. Overridden by search options if provided.
	Depth uint
	// Noise adds some centipawn randomness to leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, noise=%v}", o.Depth, o.Noise)
}

// Engine encapsulates game-playing logic: the current position, search options and any
// in-flight search.
type Engine struct {
	name, author string

	seed int64
	opts Options

	s      *board.State
	noise  eval.Random
	active search.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithSeed configures the engine to use the given random seed for noise, instead of the
// default seed of zero.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.SetNoise(e.opts.Noise)

	_ = e.Reset(ctx, fen.Startpos)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
	e.noise = eval.Random{}
	if centipawns > 0 {
		e.noise = eval.NewRandom(int(centipawns), e.seed)
	}
}

// State returns the current position. Callers must not mutate it.
func (e *Engine) State() *board.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.s
}

// Position returns the current position in FEN. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.s)
}

// Reset resets the engine to a new starting position given in FEN.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, noise=%vcp", position, e.opts.Depth, e.opts.Noise)

	e.haltSearchIfActive(ctx)

	s, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.s = s

	logw.Infof(ctx, "New board:\n%v", e.s.BoardString())
	return nil
}

// Move plays the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	for _, m := range e.s.LegalMoves() {
		if !candidate.Equals(m) {
			continue
		}
		e.s.Make(m)

		logw.Infof(ctx, "Move %v:\n%v", m, e.s.BoardString())
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if e.s.MoveLen() == 0 {
		return fmt.Errorf("no move to take back")
	}
	e.s.Unmake()

	logw.Infof(ctx, "Takeback")
	return nil
}

// Analyze starts a search of the current position. depthLimit overrides the engine's default
// depth option if non-zero.
func (e *Engine) Analyze(ctx context.Context, depthLimit uint) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	depth := depthLimit
	if depth == 0 {
		depth = e.opts.Depth
	}

	logw.Infof(ctx, "Analyze %v, depth=%v", fen.Encode(e.s), depth)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := search.Launch(cloneState(e.s), int(depth), e.noise)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns its principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search halted: %v", pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}

// cloneState copies the position into a fresh State by a FEN round-trip (the move history is
// not copied), giving a search its own copy to make/unmake on without racing the engine's own
// mutable state.
func cloneState(s *board.State) *board.State {
	position, err := fen.Decode(fen.Encode(s))
	if err != nil {
		panic(fmt.Sprintf("corrupt engine state: %v", err))
	}
	return position
}
