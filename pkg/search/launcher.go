package search

import (
	"fmt"
	"sync"
	"time"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/eval"
	"go.uber.org/atomic"
)

// PV is the principal move and score reported for one completed iterative-deepening depth.
type PV struct {
	Move    board.Move
	HasMove bool
	Score   eval.Score
	Depth   int
	Nodes   uint64
	Time    time.Duration
}

func (p PV) String() string {
	mv := "(none)"
	if p.HasMove {
		mv = p.Move.String()
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v move=%v", p.Depth, p.Score, p.Nodes, p.Time, mv)
}

// Handle manages a running search. The engine spins one off per position and halts it when
// the position changes or the GUI asks the engine to stop.
type Handle interface {
	// Halt stops the search, if running, and returns its last reported PV. Idempotent.
	Halt() PV
}

// Launch starts an iterative-deepening search of s to maxDepth (0 means unbounded) on its own
// goroutine. s is not safe for concurrent use elsewhere for the lifetime of the search; the
// caller should pass a private copy. noise, if non-zero, perturbs leaf evaluations.
func Launch(s *board.State, maxDepth int, noise eval.Random) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: make(chan struct{}),
	}
	go h.run(s, maxDepth, noise, out)
	return h, out
}

type handle struct {
	init        chan struct{}
	initialized atomic.Bool

	sig   *AtomicSignal
	start time.Time

	pv PV
	mu sync.Mutex
}

func (h *handle) run(s *board.State, maxDepth int, noise eval.Random, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	h.sig = NewAtomicSignal()
	h.sig.OnPartial = func(info Info) { h.report(info, out) }
	h.sig.OnBest = func(info Info) { h.report(info, out) }
	h.start = time.Now()

	h.markInitialized()

	depth := maxDepth
	if depth <= 0 {
		depth = 64
	}

	var nodes uint64
	SearchWithNoise(s, depth, noise, h.sig, &nodes)
}

func (h *handle) report(info Info, out chan PV) {
	pv := PV{
		Move:    info.Result.Move,
		HasMove: info.Result.HasMove,
		Score:   info.Result.Score,
		Depth:   info.Depth,
		Nodes:   info.Nodes,
		Time:    time.Since(h.start),
	}

	h.mu.Lock()
	h.pv = pv
	h.mu.Unlock()

	select {
	case <-out:
	default:
	}
	out <- pv
}

func (h *handle) Halt() PV {
	<-h.init
	h.sig.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}
