package search_test

import (
	"testing"
	"time"

	"github.com/sgeipel/corvid/pkg/board"
	"github.com/sgeipel/corvid/pkg/eval"
	"github.com/sgeipel/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchReportsPVsThenHalts(t *testing.T) {
	s := board.Default()

	h, out := search.Launch(s, 3, eval.Random{})

	var last search.PV
	for pv := range out {
		last = pv
	}

	assert.True(t, last.HasMove)
	assert.LessOrEqual(t, last.Depth, 3)

	halted := h.Halt()
	assert.Equal(t, last.Move, halted.Move)
}

func TestHaltStopsAnUnboundedSearchPromptly(t *testing.T) {
	s := board.Default()

	h, out := search.Launch(s, 0, eval.Random{})

	time.Sleep(5 * time.Millisecond)
	h.Halt()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			require.Fail(t, "search did not stop after Halt")
		}
	}
}
