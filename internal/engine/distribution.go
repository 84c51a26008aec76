package engine

// Linear is the canonical ramp: target concurrency grows proportionally
// with simulation progress, reaching full nominal concurrency exactly
// when progress reaches 1.
func Linear(progress float64, _ Context) float64 {
	return clamp01(progress)
}

// RampUpDown ramps linearly from 0 to full concurrency over the first
// fraction up of the run, holds there, then ramps back down to 0 over the
// last fraction down. up+down should be <= 1; where the two fractions
// overlap, the ramp-up slope takes precedence.
func RampUpDown(up, down float64) DistributionFn {
	return func(progress float64, _ Context) float64 {
		progress = clamp01(progress)
		switch {
		case up > 0 && progress < up:
			return progress / up
		case down > 0 && progress > 1-down:
			return (1 - progress) / down
		default:
			return 1
		}
	}
}
