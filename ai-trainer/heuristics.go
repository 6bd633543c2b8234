package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
)

const (
	championFile   = "champion_heuristics.json"
	challengerFile = "challenger_heuristics.json"
)

type heuristicConfig struct {
	Five        float64 `json:"five"`
	OpenFour    float64 `json:"open_four"`
	ClosedFour  float64 `json:"closed_four"`
	OpenThree   float64 `json:"open_three"`
	ClosedThree float64 `json:"closed_three"`
	OpenTwo     float64 `json:"open_two"`
	ClosedTwo   float64 `json:"closed_two"`
}

type contender struct {
	ID         string
	Heuristics heuristicConfig
	Elo        float64
}

func defaultHeuristics() heuristicConfig {
	return heuristicConfig{
		Five:        1_000_000,
		OpenFour:    10_000,
		ClosedFour:  1_000,
		OpenThree:   1_000,
		ClosedThree: 100,
		OpenTwo:     100,
		ClosedTwo:   10,
	}
}

// mutateHeuristics scales every run weight by a random factor within
// ±mutationStrength. The five weight is left alone.
func (t *trainer) mutateHeuristics(base heuristicConfig) heuristicConfig {
	out := base
	mutate := func(v float64) float64 {
		factor := 1 + (t.rng.Float64()*2-1)*t.mutationStrength
		next := v * factor
		if math.IsNaN(next) || math.IsInf(next, 0) || next < 1 {
			return v
		}
		return next
	}
	out.OpenFour = mutate(out.OpenFour)
	out.ClosedFour = mutate(out.ClosedFour)
	out.OpenThree = mutate(out.OpenThree)
	out.ClosedThree = mutate(out.ClosedThree)
	out.OpenTwo = mutate(out.OpenTwo)
	out.ClosedTwo = mutate(out.ClosedTwo)
	return out
}

func updateElo(a *contender, b *contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

func sortContendersByElo(list []contender) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Elo > list[j].Elo
	})
}

func toStandings(list []contender, limit int) []trainerStanding {
	out := make([]trainerStanding, 0, min(len(list), limit))
	for _, c := range list[:min(len(list), limit)] {
		out = append(out, trainerStanding{ID: c.ID, Elo: c.Elo, Heuristics: c.Heuristics})
	}
	return out
}

// baseHeuristics prefers the backend's active weights, then the last saved
// champion, then the built-in defaults.
func (t *trainer) baseHeuristics() heuristicConfig {
	if fromBackend, err := t.fetchBackendHeuristics(); err == nil && fromBackend.Five > 0 {
		return fromBackend
	}
	if saved, err := t.readHeuristicFile(championFile); err == nil && saved.Five > 0 {
		return saved
	}
	return defaultHeuristics()
}

func (t *trainer) persistHeuristicPair(champion, challenger heuristicConfig) error {
	if err := t.writeHeuristicFile(championFile, champion); err != nil {
		return err
	}
	return t.writeHeuristicFile(challengerFile, challenger)
}

// writeHeuristicFile writes through a temp file so readers never see a
// partial document. The champion file doubles as the backend's
// HEURISTICS_PATH input.
func (t *trainer) writeHeuristicFile(name string, heuristics heuristicConfig) error {
	if err := os.MkdirAll(t.dataDir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(heuristics, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	path := filepath.Join(t.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (t *trainer) readHeuristicFile(name string) (heuristicConfig, error) {
	raw, err := os.ReadFile(filepath.Join(t.dataDir, name))
	if err != nil {
		return heuristicConfig{}, err
	}
	var cfg heuristicConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return heuristicConfig{}, err
	}
	return cfg, nil
}
