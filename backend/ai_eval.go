package main

import (
	"fmt"
	"math"
)

const (
	PatternFive        = "five"
	PatternOpenFour    = "open_four"
	PatternClosedFour  = "closed_four"
	PatternOpenThree   = "open_three"
	PatternClosedThree = "closed_three"
	PatternOpenTwo     = "open_two"
	PatternClosedTwo   = "closed_two"
)

const (
	blockFiveFactor     = 0.9
	opponentFourFactor  = 0.8
	opponentThreeFactor = 0.7
	centralityRadius    = 10
	centralityWeight    = 10.0
	tieBreakJitter      = 0.1
)

type ThreatWeights struct {
	Five        float64
	OpenFour    float64
	ClosedFour  float64
	OpenThree   float64
	ClosedThree float64
	OpenTwo     float64
	ClosedTwo   float64
}

// runWeight pairs a run length with the weights of its open and closed forms.
type runWeight struct {
	length int
	open   float64
	closed float64
}

func resolveThreatWeights(config Config) ThreatWeights {
	h := resolvedHeuristicConfig(config)
	return ThreatWeights{
		Five:        h.Five,
		OpenFour:    h.OpenFour,
		ClosedFour:  h.ClosedFour,
		OpenThree:   h.OpenThree,
		ClosedThree: h.ClosedThree,
		OpenTwo:     h.OpenTwo,
		ClosedTwo:   h.ClosedTwo,
	}
}

func (w ThreatWeights) runs() [3]runWeight {
	return [3]runWeight{
		{length: 4, open: w.OpenFour, closed: w.ClosedFour},
		{length: 3, open: w.OpenThree, closed: w.ClosedThree},
		{length: 2, open: w.OpenTwo, closed: w.ClosedTwo},
	}
}

// Table returns the weights keyed by pattern name.
func (w ThreatWeights) Table() map[string]float64 {
	return map[string]float64{
		PatternFive:        w.Five,
		PatternOpenFour:    w.OpenFour,
		PatternClosedFour:  w.ClosedFour,
		PatternOpenThree:   w.OpenThree,
		PatternClosedThree: w.ClosedThree,
		PatternOpenTwo:     w.OpenTwo,
		PatternClosedTwo:   w.ClosedTwo,
	}
}

// maxNonWinningScore bounds what ScoreMove can return for a cell that does
// not complete the mover's five.
func (w ThreatWeights) maxNonWinningScore() float64 {
	axes := float64(len(directions))
	own := 0.0
	for _, run := range w.runs() {
		own += math.Max(run.open, run.closed)
	}
	opp := math.Max(w.OpenFour, w.ClosedFour)*opponentFourFactor + w.OpenThree*opponentThreeFactor
	centrality := float64(centralityRadius) * centralityWeight
	return w.Five*blockFiveFactor + axes*(own+opp) + centrality + tieBreakJitter
}

// Validate checks that a five outranks every non-winning score.
func (w ThreatWeights) Validate() error {
	if w.Five <= w.maxNonWinningScore() {
		return fmt.Errorf("five weight %.1f must exceed the best non-winning score %.1f", w.Five, w.maxNonWinningScore())
	}
	return nil
}
