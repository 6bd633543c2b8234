package main

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var ErrBoardFull = errors.New("board has no empty cell")

type SuggestionSource string

const (
	SourceBook      SuggestionSource = "book"
	SourceCenter    SuggestionSource = "center"
	SourceWin       SuggestionSource = "win"
	SourceBlock     SuggestionSource = "block"
	SourceSingle    SuggestionSource = "single"
	SourceHeuristic SuggestionSource = "heuristic"
)

// Suggestion is a selected move and the stage that produced it. Score is only
// set by the heuristic stage.
type Suggestion struct {
	Move       Move
	Source     SuggestionSource
	Score      float64
	Candidates int
}

// Engine selects moves with a one-ply threat heuristic. It keeps no
// per-board state, so a single Engine can serve concurrent callers.
type Engine struct {
	weights ThreatWeights
	book    *OpeningBook
	rng     *lockedRand
}

type EngineOption func(*Engine)

func WithWeights(weights ThreatWeights) EngineOption {
	return func(e *Engine) {
		e.weights = weights
	}
}

func WithOpeningBook(book *OpeningBook) EngineOption {
	return func(e *Engine) {
		e.book = book
	}
}

func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = &lockedRand{rng: rng}
	}
}

// WithSeed fixes the tie-break source; 0 keeps the clock-based default.
func WithSeed(seed int64) EngineOption {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = &lockedRand{rng: rand.New(rand.NewSource(seed))}
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: resolveThreatWeights(DefaultConfig()),
		rng:     &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.book == nil {
		e.book = NewOpeningBook()
	}
	return e
}

func (e *Engine) Weights() ThreatWeights {
	return e.weights
}

func (e *Engine) SelectMove(board Board, player PlayerColor) (Move, error) {
	suggestion, err := e.Suggest(board, player)
	if err != nil {
		return Move{}, err
	}
	return suggestion.Move, nil
}

// Suggest runs the selection stages in order and stops at the first that
// yields a move: opening book, center, immediate win, forced block, lone
// candidate, heuristic scoring.
func (e *Engine) Suggest(board Board, player PlayerColor) (Suggestion, error) {
	if !player.Valid() {
		return Suggestion{}, fmt.Errorf("%w: got %d", ErrInvalidPlayer, int(player))
	}
	if board.Size() == 0 {
		return Suggestion{}, ErrEmptyBoard
	}
	if board.CountEmpty() == 0 {
		return Suggestion{}, ErrBoardFull
	}

	if move, ok := e.book.Lookup(board); ok {
		return Suggestion{Move: move, Source: SourceBook}, nil
	}

	if board.StoneCount() <= 1 {
		center := board.Center()
		if board.IsEmpty(center.X, center.Y) {
			return Suggestion{Move: center, Source: SourceCenter}, nil
		}
	}

	candidates := CandidateMoves(board)
	scratch := board.Clone()

	for _, move := range candidates {
		if CompletesFive(&scratch, move, player) {
			return Suggestion{Move: move, Source: SourceWin, Candidates: len(candidates)}, nil
		}
	}
	opponent := otherPlayer(player)
	for _, move := range candidates {
		if CompletesFive(&scratch, move, opponent) {
			return Suggestion{Move: move, Source: SourceBlock, Candidates: len(candidates)}, nil
		}
	}

	if len(candidates) == 1 {
		return Suggestion{Move: candidates[0], Source: SourceSingle, Candidates: 1}, nil
	}

	best := Suggestion{Source: SourceHeuristic, Candidates: len(candidates)}
	for i, move := range candidates {
		score := e.scoreMove(&scratch, move, player)
		if i == 0 || score > best.Score {
			best.Move = move
			best.Score = score
		}
	}
	return best, nil
}

func (e *Engine) jitter() float64 {
	return e.rng.Float64() * tieBreakJitter
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
