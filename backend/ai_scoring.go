package main

// ScoreMove scores placing player's stone at move on a private copy of board.
// The cell must be empty.
func (e *Engine) ScoreMove(board Board, move Move, player PlayerColor) float64 {
	scratch := board.Clone()
	return e.scoreMove(&scratch, move, player)
}

// scoreMove evaluates move on scratch and leaves the cell empty again.
func (e *Engine) scoreMove(scratch *Board, move Move, player PlayerColor) float64 {
	w := e.weights
	opponent := otherPlayer(player)
	playerCell := CellFromPlayer(player)
	opponentCell := CellFromPlayer(opponent)
	defer scratch.Remove(move.X, move.Y)

	scratch.Set(move.X, move.Y, playerCell)
	if hasFiveThrough(*scratch, move, player) {
		return w.Five
	}

	score := 0.0

	scratch.Set(move.X, move.Y, opponentCell)
	if hasFiveThrough(*scratch, move, opponent) {
		score += w.Five * blockFiveFactor
	}
	scratch.Set(move.X, move.Y, playerCell)

	for _, run := range w.runs() {
		for _, dir := range directions {
			switch {
			case IsOpenRun(*scratch, move, dir[0], dir[1], player, run.length):
				score += run.open
			case RunLength(*scratch, move, dir[0], dir[1], player, run.length):
				score += run.closed
			}
		}
	}

	// Pre-emptive blocks of threats the opponent would build on this cell.
	scratch.Set(move.X, move.Y, opponentCell)
	for _, dir := range directions {
		switch {
		case IsOpenRun(*scratch, move, dir[0], dir[1], opponent, 4):
			score += w.OpenFour * opponentFourFactor
		case RunLength(*scratch, move, dir[0], dir[1], opponent, 4):
			score += w.ClosedFour * opponentFourFactor
		}
		if IsOpenRun(*scratch, move, dir[0], dir[1], opponent, 3) {
			score += w.OpenThree * opponentThreeFactor
		}
	}

	score += centralityBonus(move, scratch.Center())
	score += e.jitter()
	return score
}

func centralityBonus(move, center Move) float64 {
	distance := manhattan(move, center)
	if distance >= centralityRadius {
		return 0
	}
	return float64(centralityRadius-distance) * centralityWeight
}
