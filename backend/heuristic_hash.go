package main

import "math"

const fnv64Offset = 1469598103934665603
const fnv64Prime = 1099511628211

// resolvedHeuristicConfig fills every zero weight from the defaults.
func resolvedHeuristicConfig(config Config) HeuristicConfig {
	defaults := DefaultConfig().Heuristics
	heuristics := config.Heuristics
	if heuristics == (HeuristicConfig{}) {
		return defaults
	}
	if heuristics.Five == 0 {
		heuristics.Five = defaults.Five
	}
	if heuristics.OpenFour == 0 {
		heuristics.OpenFour = defaults.OpenFour
	}
	if heuristics.ClosedFour == 0 {
		heuristics.ClosedFour = defaults.ClosedFour
	}
	if heuristics.OpenThree == 0 {
		heuristics.OpenThree = defaults.OpenThree
	}
	if heuristics.ClosedThree == 0 {
		heuristics.ClosedThree = defaults.ClosedThree
	}
	if heuristics.OpenTwo == 0 {
		heuristics.OpenTwo = defaults.OpenTwo
	}
	if heuristics.ClosedTwo == 0 {
		heuristics.ClosedTwo = defaults.ClosedTwo
	}
	return heuristics
}

func heuristicHash(weights ThreatWeights) uint64 {
	hash := uint64(fnv64Offset)
	mix := func(value float64) {
		bits := math.Float64bits(value)
		for i := 0; i < 8; i++ {
			hash ^= uint64(byte(bits >> (8 * i)))
			hash *= fnv64Prime
		}
	}
	mix(weights.Five)
	mix(weights.OpenFour)
	mix(weights.ClosedFour)
	mix(weights.OpenThree)
	mix(weights.ClosedThree)
	mix(weights.OpenTwo)
	mix(weights.ClosedTwo)
	return hash
}
