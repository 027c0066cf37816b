package types

// Hooks are the host callbacks the engine reports through. Every field is
// optional; the engine works with any subset set.
type Hooks struct {
	// OnLog receives one diagnostic line.
	OnLog func(message string)

	// OnProgressTotal receives the number of work units before any is done.
	OnProgressTotal func(total int)

	// OnProgressStep receives completed work units.
	OnProgressStep func(delta int)

	// OnTick is a cooperative yield invoked every Options.TickEvery units.
	OnTick func()
}

// Log calls OnLog if set.
func (h Hooks) Log(message string) {
	if h.OnLog != nil {
		h.OnLog(message)
	}
}

// Total calls OnProgressTotal if set.
func (h Hooks) Total(total int) {
	if h.OnProgressTotal != nil {
		h.OnProgressTotal(total)
	}
}

// Step calls OnProgressStep if set.
func (h Hooks) Step(delta int) {
	if h.OnProgressStep != nil {
		h.OnProgressStep(delta)
	}
}

// Tick calls OnTick if set.
func (h Hooks) Tick() {
	if h.OnTick != nil {
		h.OnTick()
	}
}
