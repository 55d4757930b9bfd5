package uart

// tickGenerator holds two free-running divider counters. Each counts from 0
// to its divisor inclusive, then wraps to 0 and raises its tick output for
// that single cycle. Divisor truncation error accumulates; no correction is
// applied.
type tickGenerator struct {
	sampleDivisor uint64
	symbolDivisor uint64

	sampleCount uint64
	symbolCount uint64
}

func newTickGenerator(cfg RateConfig) *tickGenerator {
	return &tickGenerator{
		sampleDivisor: cfg.SampleDivisor(),
		symbolDivisor: cfg.SymbolDivisor(),
	}
}

// step advances both counters by one execution cycle and returns the tick
// pulses for this cycle.
func (g *tickGenerator) step() (sampleTick, symbolTick bool) {
	if g.sampleCount == g.sampleDivisor {
		g.sampleCount = 0
		sampleTick = true
	} else {
		g.sampleCount++
	}

	if g.symbolCount == g.symbolDivisor {
		g.symbolCount = 0
		symbolTick = true
	} else {
		g.symbolCount++
	}

	return sampleTick, symbolTick
}

func (g *tickGenerator) reset() {
	g.sampleCount = 0
	g.symbolCount = 0
}
