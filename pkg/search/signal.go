package search

import "go.uber.org/atomic"

// Info is a progress report emitted during a search: either a completed iterative-deepening
// depth (SendPartial) or the final chosen move (SendBest).
type Info struct {
	Depth  int
	Result Result
	Nodes  uint64
}

// Signal lets a running search be cancelled and lets it report progress, without coupling the
// search to any particular transport (UCI, console, tests).
type Signal interface {
	// ShouldStop reports whether the search must return as soon as possible.
	ShouldStop() bool
	// SendPartial reports a depth that iterative deepening just finished.
	SendPartial(Info)
	// SendBest reports the final move chosen once the search loop ends.
	SendBest(Info)
}

// BlockSignal never stops a search and discards all progress reports. Used by tests and by
// perft-style callers that want a search to run to completion.
type BlockSignal struct{}

func (BlockSignal) ShouldStop() bool    { return false }
func (BlockSignal) SendPartial(Info) {}
func (BlockSignal) SendBest(Info)    {}

// AtomicSignal is a Signal backed by an atomic flag, safe to share between the goroutine
// running the search and the goroutine that decides to stop it (e.g. on a UCI "stop" command
// or a time control expiring).
type AtomicSignal struct {
	stop atomic.Bool

	// OnPartial and OnBest, if set, are invoked synchronously from the searching goroutine.
	OnPartial func(Info)
	OnBest    func(Info)
}

func NewAtomicSignal() *AtomicSignal {
	return &AtomicSignal{}
}

// Stop requests that the search halt. Idempotent, safe for concurrent use.
func (s *AtomicSignal) Stop() {
	s.stop.Store(true)
}

func (s *AtomicSignal) ShouldStop() bool {
	return s.stop.Load()
}

func (s *AtomicSignal) SendPartial(info Info) {
	if s.OnPartial != nil {
		s.OnPartial(info)
	}
}

func (s *AtomicSignal) SendBest(info Info) {
	if s.OnBest != nil {
		s.OnBest(info)
	}
}
