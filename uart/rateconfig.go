// Package uart models the timing engine of an asynchronous serial interface:
// baud-rate tick generation, line synchronization and deglitching, byte
// framing and deframing, and a word-level transaction controller, all
// advanced cycle by cycle by a ticking component.
package uart

import "fmt"

// Oversampling is the number of line samples taken per bit period.
const Oversampling = 16

// RateConfig derives the divider values for the two tick domains from the
// execution clock and the target byte rate. The divisions truncate, so the
// actual rate may differ slightly from the target.
type RateConfig struct {
	ClockHz  uint64
	ByteRate uint64
}

// SymbolDivisor is the divider value of the byte-rate tick domain.
func (c RateConfig) SymbolDivisor() uint64 {
	return c.ClockHz / c.ByteRate
}

// SampleDivisor is the divider value of the 16x oversampled tick domain.
func (c RateConfig) SampleDivisor() uint64 {
	return c.ClockHz / (c.ByteRate * Oversampling)
}

// Validate checks that both divisors are positive.
func (c RateConfig) Validate() error {
	if c.ClockHz == 0 || c.ByteRate == 0 {
		return fmt.Errorf("uart: clock and byte rate must be positive")
	}

	if c.SampleDivisor() == 0 {
		return fmt.Errorf(
			"uart: clock %d Hz cannot oversample byte rate %d at %dx",
			c.ClockHz, c.ByteRate, Oversampling)
	}

	return nil
}
