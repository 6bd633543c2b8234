package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type openingMove struct {
	Row int
	Col int
}

type gameResult struct {
	Winner  int
	Stones  int
	Forfeit bool
}

// buildOpeningSuite returns count openings of openingPlies stones around the
// center, alternating black and white. The suite is fixed by the salt so
// every generation plays the same positions.
func (t *trainer) buildOpeningSuite(count int, salt int64) [][]openingMove {
	rng := rand.New(rand.NewSource(int64(t.boardSize*97+t.openingPlies*13) + salt))
	center := t.boardSize / 2
	offsets := []openingMove{
		{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}, {2, 0}, {0, 2},
	}
	suite := make([][]openingMove, 0, count)
	for i := 0; i < count; i++ {
		used := map[openingMove]bool{}
		opening := make([]openingMove, 0, t.openingPlies)
		for len(opening) < t.openingPlies && len(used) < len(offsets) {
			off := offsets[rng.Intn(len(offsets))]
			move := openingMove{Row: center + off.Row, Col: center + off.Col}
			if move.Row < 0 || move.Col < 0 || move.Row >= t.boardSize || move.Col >= t.boardSize {
				used[off] = true
				continue
			}
			if used[off] {
				continue
			}
			used[off] = true
			opening = append(opening, move)
		}
		suite = append(suite, opening)
	}
	return suite
}

// playGame plays one game through the backend, each side asking for moves
// with its own heuristics. A side whose heuristics the backend rejects
// forfeits.
func (t *trainer) playGame(ctx context.Context, black, white heuristicConfig, opening []openingMove) (gameResult, error) {
	board := make([][]int, t.boardSize)
	for i := range board {
		board[i] = make([]int, t.boardSize)
	}
	player := 1
	stones := 0
	for _, move := range opening {
		board[move.Row][move.Col] = player
		stones++
		player = 3 - player
	}

	deadline := time.Now().Add(t.gameTimeout)
	for moves := 0; moves < t.maxMoves && stones < t.boardSize*t.boardSize; moves++ {
		if ctx.Err() != nil {
			return gameResult{}, ctx.Err()
		}
		if t.gameTimeout > 0 && time.Now().After(deadline) {
			return gameResult{}, fmt.Errorf("game timeout after %s", t.gameTimeout)
		}
		heuristics := black
		if player == 2 {
			heuristics = white
		}
		resp, err := t.requestMove(board, player, heuristics)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && se.Code == http.StatusBadRequest {
				t.logf("Player %d forfeits: %s", player, se.Body)
				return gameResult{Winner: 3 - player, Stones: stones, Forfeit: true}, nil
			}
			return gameResult{}, err
		}
		row, col := resp.Move[0], resp.Move[1]
		if row < 0 || col < 0 || row >= t.boardSize || col >= t.boardSize || board[row][col] != 0 {
			return gameResult{}, fmt.Errorf("backend suggested unplayable cell (%d,%d)", row, col)
		}
		board[row][col] = player
		stones++
		if resp.Winning {
			return gameResult{Winner: player, Stones: stones}, nil
		}
		player = 3 - player
	}
	return gameResult{Stones: stones}, nil
}

// playHeadToHead plays the opening twice with colors swapped and returns
// first's score in [0, 1].
func (t *trainer) playHeadToHead(ctx context.Context, first, second heuristicConfig, opening []openingMove) (float64, int, error) {
	points := 0.0
	stones := 0
	for _, firstBlack := range []bool{true, false} {
		black, white := first, second
		if !firstBlack {
			black, white = second, first
		}
		result, err := t.playGame(ctx, black, white, opening)
		if err != nil {
			return 0, 0, err
		}
		stones += result.Stones
		switch result.Winner {
		case 1:
			if firstBlack {
				points += 1.0
			}
		case 2:
			if !firstBlack {
				points += 1.0
			}
		default:
			points += 0.5
		}
	}
	return points / 2.0, stones / 2, nil
}

func (t *trainer) runValidation(ctx context.Context, candidate, champion heuristicConfig, openings [][]openingMove) (float64, error) {
	points := 0.0
	for _, opening := range openings {
		result, _, err := t.playHeadToHead(ctx, candidate, champion, opening)
		if err != nil {
			return 0, err
		}
		points += result
	}
	if len(openings) == 0 {
		return 0, nil
	}
	return points / float64(len(openings)), nil
}
