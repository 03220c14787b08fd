package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sgeipel/corvid/pkg/engine"
	"github.com/sgeipel/corvid/pkg/engine/console"
	"github.com/sgeipel/corvid/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero means unbounded until halted)")
	noise = flag.Uint("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "sgeipel", engine.WithOptions(engine.Options{Depth: *depth, Noise: *noise}),
		engine.WithSeed(time.Now().UnixNano()))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
