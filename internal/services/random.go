package services

import "math/rand/v2"

// Randomizer is the source of every simulated decision in the demo:
// risk scores, fraud coin flips and driver verification outcomes.
type Randomizer interface {
	Float64() float64 // uniform in [0.0, 1.0)
	IntN(n int) int   // uniform in [0, n)
}

type mathRandomizer struct{}

// NewRandomizer returns a Randomizer backed by math/rand/v2, safe for concurrent use.
func NewRandomizer() Randomizer {
	return mathRandomizer{}
}

func (mathRandomizer) Float64() float64 { return rand.Float64() }
func (mathRandomizer) IntN(n int) int   { return rand.IntN(n) }

// chance reports whether an event with probability p happens.
func chance(rnd Randomizer, p float64) bool {
	return rnd.Float64() < p
}

func pick(rnd Randomizer, values []string) string {
	return values[rnd.IntN(len(values))]
}
