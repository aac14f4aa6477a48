package processor

import "context"

// runGate admits one pipeline run at a time. Runs share the output and temp
// directories and the single narration backend.
type runGate struct {
	ch chan struct{}
}

func newRunGate() *runGate {
	return &runGate{ch: make(chan struct{}, 1)}
}

// enter blocks until no other run holds the gate or ctx ends.
func (g *runGate) enter(ctx context.Context) error {
	select {
	case g.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *runGate) busy() bool {
	return len(g.ch) > 0
}

func (g *runGate) leave() {
	<-g.ch
}
