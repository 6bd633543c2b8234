package main

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	ErrBoardTooLarge     = errors.New("board exceeds the maximum supported size")
	ErrInvalidHeuristics = errors.New("invalid heuristics")
)

type AdviceRequest struct {
	Board      [][]int
	Player     int
	Heuristics *HeuristicConfig
}

type AdviceResult struct {
	Suggestion
	BoardSize      int
	Player         PlayerColor
	ElapsedMs      float64
	Winning        bool
	WinningLine    []Move
	HeuristicsHash uint64
}

// Advisor owns the active engine and the engines built for per-request
// heuristic overrides. All engines share one opening book.
type Advisor struct {
	mu        sync.Mutex
	config    *ConfigStore
	book      *OpeningBook
	engine    *Engine
	hash      uint64
	engines   map[uint64]*Engine
	publishOn func() bool
	publish   func(suggestionPayload)
}

func NewAdvisor(store *ConfigStore) *Advisor {
	a := &Advisor{
		config:  store,
		book:    NewOpeningBook(),
		engines: make(map[uint64]*Engine),
	}
	a.engine, a.hash = a.buildEngine(store.Get(), resolveThreatWeights(store.Get()))
	return a
}

func (a *Advisor) SetPublisher(enabled func() bool, publisher func(suggestionPayload)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.publishOn = enabled
	a.publish = publisher
}

func (a *Advisor) buildEngine(cfg Config, weights ThreatWeights) (*Engine, uint64) {
	hash := heuristicHash(weights)
	seed := cfg.EngineSeed
	if seed != 0 {
		seed ^= int64(hash)
	}
	return NewEngine(WithWeights(weights), WithOpeningBook(a.book), WithSeed(seed)), hash
}

func (a *Advisor) Engine() *Engine {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine
}

func (a *Advisor) HeuristicsHash() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hash
}

// engineFor returns the active engine, or a cached engine for override.
func (a *Advisor) engineFor(override *HeuristicConfig) (*Engine, uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if override == nil {
		return a.engine, a.hash, nil
	}
	cfg := a.config.Get()
	cfg.Heuristics = *override
	weights := resolveThreatWeights(cfg)
	if err := weights.Validate(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidHeuristics, err)
	}
	hash := heuristicHash(weights)
	if hash == a.hash {
		return a.engine, a.hash, nil
	}
	if engine, ok := a.engines[hash]; ok {
		return engine, hash, nil
	}
	if len(a.engines) >= cfg.MaxCachedEngines {
		a.engines = make(map[uint64]*Engine)
	}
	engine, _ := a.buildEngine(cfg, weights)
	a.engines[hash] = engine
	return engine, hash, nil
}

// Advise validates a raw request and returns the engine's suggestion.
func (a *Advisor) Advise(req AdviceRequest) (AdviceResult, error) {
	cfg := a.config.Get()
	if len(req.Board) > cfg.MaxBoardSize {
		return AdviceResult{}, fmt.Errorf("%w: %d > %d", ErrBoardTooLarge, len(req.Board), cfg.MaxBoardSize)
	}
	board, err := NewBoardFromRows(req.Board)
	if err != nil {
		return AdviceResult{}, err
	}
	player, err := playerFromInt(req.Player)
	if err != nil {
		return AdviceResult{}, err
	}
	engine, hash, err := a.engineFor(req.Heuristics)
	if err != nil {
		return AdviceResult{}, err
	}

	start := time.Now()
	suggestion, err := engine.Suggest(board, player)
	if err != nil {
		return AdviceResult{}, err
	}
	result := AdviceResult{
		Suggestion:     suggestion,
		BoardSize:      board.Size(),
		Player:         player,
		ElapsedMs:      float64(time.Since(start).Microseconds()) / 1000.0,
		HeuristicsHash: hash,
	}
	after := board.Clone()
	after.Set(suggestion.Move.X, suggestion.Move.Y, CellFromPlayer(player))
	result.WinningLine, result.Winning = FindAlignmentLine(after, suggestion.Move)

	if cfg.LogSuggestions {
		log.Printf("[ai] %s on %dx%d (%d stones): %s via %s in %.2fms",
			player, board.Size(), board.Size(), board.StoneCount(), suggestion.Move, suggestion.Source, result.ElapsedMs)
	}
	a.notify(result, board)
	return result, nil
}

func (a *Advisor) notify(result AdviceResult, board Board) {
	a.mu.Lock()
	enabled := a.publishOn
	publish := a.publish
	a.mu.Unlock()
	if publish == nil || (enabled != nil && !enabled()) {
		return
	}
	publish(suggestionPayloadFrom(result, board))
}

// UpdateHeuristics replaces the active weights. Zero fields fall back to the
// defaults.
func (a *Advisor) UpdateHeuristics(heuristics HeuristicConfig) (Config, error) {
	cfg := a.config.Get()
	cfg.Heuristics = heuristics
	weights := resolveThreatWeights(cfg)
	if err := weights.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidHeuristics, err)
	}
	cfg.Heuristics = resolvedHeuristicConfig(cfg)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.config.Update(cfg)
	a.engine, a.hash = a.buildEngine(cfg, weights)
	delete(a.engines, a.hash)
	log.Printf("[ai] heuristics updated (hash 0x%016x)", a.hash)
	return cfg, nil
}
