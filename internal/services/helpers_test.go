package services_test

// fixedRand is a deterministic Randomizer: Float64 always returns f and
// IntN returns n clamped into [0, max).
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(max int) int {
	if r.n >= max {
		return max - 1
	}
	return r.n
}
