package main

const (
	winLength       = 5
	proximityRadius = 2
)

// directions holds one {dx, dy} step per axis: vertical, horizontal,
// diagonal and anti-diagonal. Each check walks both rays of its axis.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// CandidateMoves returns every empty cell within Chebyshev distance
// proximityRadius of a stone, in row-major order. An empty board yields the
// center cell alone.
func CandidateMoves(board Board) []Move {
	size := board.Size()
	if board.StoneCount() == 0 {
		return []Move{board.Center()}
	}
	seen := make([]bool, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) == CellEmpty {
				continue
			}
			for dy := -proximityRadius; dy <= proximityRadius; dy++ {
				for dx := -proximityRadius; dx <= proximityRadius; dx++ {
					nx := x + dx
					ny := y + dy
					if !board.IsEmpty(nx, ny) {
						continue
					}
					seen[ny*size+nx] = true
				}
			}
		}
	}
	moves := []Move{}
	for idx, ok := range seen {
		if ok {
			moves = append(moves, Move{X: idx % size, Y: idx / size})
		}
	}
	return moves
}

// RunLength reports whether player has length consecutive stones through
// origin along (dx, dy). Origin must already hold player's stone.
func RunLength(board Board, origin Move, dx, dy int, player PlayerColor, length int) bool {
	cell := CellFromPlayer(player)
	count := 0
	x := origin.X
	y := origin.Y
	for count < length && board.InBounds(x, y) && board.At(x, y) == cell {
		count++
		x += dx
		y += dy
	}
	x = origin.X - dx
	y = origin.Y - dy
	for count < length && board.InBounds(x, y) && board.At(x, y) == cell {
		count++
		x -= dx
		y -= dy
	}
	return count >= length
}

// IsOpenRun is RunLength plus an empty in-bounds cell just past at least one
// end of the contiguous run through origin.
func IsOpenRun(board Board, origin Move, dx, dy int, player PlayerColor, length int) bool {
	if !RunLength(board, origin, dx, dy, player, length) {
		return false
	}
	cell := CellFromPlayer(player)
	fx, fy := runEnd(board, origin, dx, dy, cell)
	bx, by := runEnd(board, origin, -dx, -dy, cell)
	return board.IsEmpty(fx, fy) || board.IsEmpty(bx, by)
}

// runEnd returns the first cell past the stones of cell starting next to origin.
func runEnd(board Board, origin Move, dx, dy int, cell Cell) (int, int) {
	x := origin.X + dx
	y := origin.Y + dy
	for board.InBounds(x, y) && board.At(x, y) == cell {
		x += dx
		y += dy
	}
	return x, y
}

func hasFiveThrough(board Board, move Move, player PlayerColor) bool {
	for _, dir := range directions {
		if RunLength(board, move, dir[0], dir[1], player, winLength) {
			return true
		}
	}
	return false
}

// CompletesFive places player's stone at move on board, checks for a five and
// restores the cell. Board must be a private copy.
func CompletesFive(board *Board, move Move, player PlayerColor) bool {
	prev := board.At(move.X, move.Y)
	board.Set(move.X, move.Y, CellFromPlayer(player))
	win := hasFiveThrough(*board, move, player)
	board.Set(move.X, move.Y, prev)
	return win
}

// FindAlignmentLine returns the cells of the first run of winLength or more
// stones through lastMove.
func FindAlignmentLine(board Board, lastMove Move) ([]Move, bool) {
	if !lastMove.IsValid(board.Size()) || board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil, false
	}
	for _, dir := range directions {
		line := collectLine(board, lastMove, dir[0], dir[1])
		if len(line) >= winLength {
			return line, true
		}
	}
	return nil, false
}

func collectLine(board Board, start Move, dx, dy int) []Move {
	line := []Move{}
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}
