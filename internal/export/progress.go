package export

import "github.com/mesh-intelligence/tabulate/pkg/types"

// progress forwards work accounting to the host hooks and yields through
// OnTick every `every` loop iterations.
type progress struct {
	hooks types.Hooks
	every int
	n     int
}

func newProgress(hooks types.Hooks, every int) *progress {
	return &progress{hooks: hooks, every: every}
}

// tick counts one loop iteration without reporting a finished work unit.
func (p *progress) tick() {
	p.n++
	if p.every > 0 && p.n%p.every == 0 {
		p.hooks.Tick()
	}
}

// step reports one finished work unit.
func (p *progress) step() {
	p.hooks.Step(1)
	p.tick()
}
