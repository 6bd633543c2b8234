package main

import (
	"errors"
	"testing"
)

func newTestAdvisor(t *testing.T) (*Advisor, *ConfigStore) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.EngineSeed = 5
	cfg.LogSuggestions = false
	store := NewConfigStore(cfg)
	return NewAdvisor(store), store
}

func TestAdviseReturnsSuggestion(t *testing.T) {
	advisor, _ := newTestAdvisor(t)
	result, err := advisor.Advise(AdviceRequest{Board: NewBoard(15).Rows(), Player: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Move != NewMove(7, 7) || result.Source != SourceCenter {
		t.Fatalf("expected center, got %s via %s", result.Move, result.Source)
	}
	if result.BoardSize != 15 || result.Player != PlayerBlack {
		t.Fatalf("unexpected metadata %+v", result)
	}
	if result.Winning || result.WinningLine != nil {
		t.Fatalf("center opening cannot win")
	}
	if result.HeuristicsHash != advisor.HeuristicsHash() {
		t.Fatalf("expected the active heuristics hash")
	}
}

func TestAdviseReportsWinningLine(t *testing.T) {
	advisor, _ := newTestAdvisor(t)
	result, err := advisor.Advise(AdviceRequest{Board: openFourBoard().Rows(), Player: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Winning || len(result.WinningLine) != 5 {
		t.Fatalf("expected a five-stone winning line, got winning=%v line=%v", result.Winning, result.WinningLine)
	}
	for _, cell := range result.WinningLine {
		if cell.Row() != 7 {
			t.Fatalf("winning line left row 7: %s", cell)
		}
	}
}

func TestAdviseValidatesInput(t *testing.T) {
	advisor, store := newTestAdvisor(t)
	cfg := store.Get()
	cfg.MaxBoardSize = 19
	store.Update(cfg)

	cases := []struct {
		name string
		req  AdviceRequest
		want error
	}{
		{name: "too large", req: AdviceRequest{Board: NewBoard(21).Rows(), Player: 1}, want: ErrBoardTooLarge},
		{name: "empty", req: AdviceRequest{Board: [][]int{}, Player: 1}, want: ErrEmptyBoard},
		{name: "ragged", req: AdviceRequest{Board: [][]int{{0, 0}, {0}}, Player: 1}, want: ErrRaggedBoard},
		{name: "bad cell", req: AdviceRequest{Board: [][]int{{0, 3}, {0, 0}}, Player: 1}, want: ErrInvalidCell},
		{name: "bad player", req: AdviceRequest{Board: NewBoard(9).Rows(), Player: 0}, want: ErrInvalidPlayer},
		{name: "full", req: AdviceRequest{Board: stripedBoard(9).Rows(), Player: 2}, want: ErrBoardFull},
		{
			name: "weak five",
			req:  AdviceRequest{Board: NewBoard(9).Rows(), Player: 1, Heuristics: &HeuristicConfig{Five: 10}},
			want: ErrInvalidHeuristics,
		},
	}
	for _, tc := range cases {
		if _, err := advisor.Advise(tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestEngineForCachesOverrides(t *testing.T) {
	advisor, _ := newTestAdvisor(t)
	active, hash, err := advisor.engineFor(nil)
	if err != nil || active != advisor.Engine() || hash != advisor.HeuristicsHash() {
		t.Fatalf("expected the active engine without an override")
	}

	defaults := DefaultConfig().Heuristics
	same, _, err := advisor.engineFor(&defaults)
	if err != nil || same != active {
		t.Fatalf("expected default weights to reuse the active engine")
	}

	override := &HeuristicConfig{OpenThree: 2_000}
	first, firstHash, err := advisor.engineFor(override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondHash, _ := advisor.engineFor(&HeuristicConfig{OpenThree: 2_000})
	if first == active || first != second || firstHash != secondHash {
		t.Fatalf("expected one cached engine per override")
	}
	if first.Weights().OpenThree != 2_000 || first.Weights().Five != defaults.Five {
		t.Fatalf("unexpected override weights %+v", first.Weights())
	}
}

func TestEngineForResetsFullCache(t *testing.T) {
	advisor, store := newTestAdvisor(t)
	cfg := store.Get()
	cfg.MaxCachedEngines = 2
	store.Update(cfg)
	for i := 1; i <= 5; i++ {
		if _, _, err := advisor.engineFor(&HeuristicConfig{ClosedTwo: float64(i)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(advisor.engines) > 2 {
		t.Fatalf("expected at most 2 cached engines, got %d", len(advisor.engines))
	}
}

func TestAdvisePublishesWhenEnabled(t *testing.T) {
	advisor, _ := newTestAdvisor(t)
	enabled := false
	var published []suggestionPayload
	advisor.SetPublisher(func() bool { return enabled }, func(p suggestionPayload) {
		published = append(published, p)
	})

	board := boardWithStones(15, []Move{NewMove(7, 7)}, nil)
	if _, err := advisor.Advise(AdviceRequest{Board: board.Rows(), Player: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(published) != 0 {
		t.Fatalf("expected nothing published while disabled")
	}

	enabled = true
	if _, err := advisor.Advise(AdviceRequest{Board: board.Rows(), Player: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("expected one published suggestion, got %d", len(published))
	}
	got := published[0]
	if got.Source != string(SourceBook) || Move(got.Move) != NewMove(6, 8) || got.Stones != 1 || got.Player != 2 {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(got.Board) != 15 || got.Board[7][7] != int(CellBlack) || got.Board[6][8] != int(CellEmpty) {
		t.Fatalf("expected the position before the move, got %v", got.Board)
	}
}

func TestUpdateHeuristicsSwapsActiveEngine(t *testing.T) {
	advisor, store := newTestAdvisor(t)
	before := advisor.HeuristicsHash()

	cfg, err := advisor.UpdateHeuristics(HeuristicConfig{OpenFour: 25_000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Heuristics.OpenFour != 25_000 || cfg.Heuristics.Five != DefaultConfig().Heuristics.Five {
		t.Fatalf("expected resolved heuristics, got %+v", cfg.Heuristics)
	}
	if store.Get().Heuristics != cfg.Heuristics {
		t.Fatalf("store not updated")
	}
	if advisor.HeuristicsHash() == before || advisor.Engine().Weights().OpenFour != 25_000 {
		t.Fatalf("active engine not replaced")
	}

	after := advisor.HeuristicsHash()
	if _, err := advisor.UpdateHeuristics(HeuristicConfig{Five: 1}); !errors.Is(err, ErrInvalidHeuristics) {
		t.Fatalf("expected ErrInvalidHeuristics, got %v", err)
	}
	if advisor.HeuristicsHash() != after {
		t.Fatalf("rejected update must not change the engine")
	}
}
