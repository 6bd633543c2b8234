package main

import (
	"errors"
	"fmt"
)

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

var (
	ErrEmptyBoard  = errors.New("board has no rows")
	ErrRaggedBoard = errors.New("all rows in the board must have the same length")
	ErrNotSquare   = errors.New("board must be square")
	ErrInvalidCell = errors.New("cell values must be 0 (empty), 1 (black) or 2 (white)")
)

type Board struct {
	size  int
	cells []Cell
}

func NewBoard(boardSize int) Board {
	b := Board{}
	b.Reset(boardSize)
	return b
}

// NewBoardFromRows builds a board from row-major integer rows, rows[row][col].
func NewBoardFromRows(rows [][]int) (Board, error) {
	if len(rows) == 0 {
		return Board{}, ErrEmptyBoard
	}
	size := len(rows)
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return Board{}, ErrRaggedBoard
		}
	}
	if width != size {
		return Board{}, fmt.Errorf("%w: got %dx%d", ErrNotSquare, size, width)
	}
	board := NewBoard(size)
	for y, row := range rows {
		for x, value := range row {
			cell, ok := cellFromInt(value)
			if !ok {
				return Board{}, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, value, y, x)
			}
			board.Set(x, y, cell)
		}
	}
	return board, nil
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]Cell, boardSize*boardSize)
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[b.index(x, y)] = CellEmpty
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) StoneCount() int {
	return len(b.cells) - b.CountEmpty()
}

func (b Board) Size() int {
	return b.size
}

// Center is the (N/2, N/2) cell.
func (b Board) Center() Move {
	c := b.size / 2
	return Move{X: c, Y: c}
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for y := 0; y < b.size; y++ {
		rows[y] = make([]int, b.size)
		for x := 0; x < b.size; x++ {
			rows[y][x] = int(b.At(x, y))
		}
	}
	return rows
}

func (b Board) index(x, y int) int {
	return y*b.size + x
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func cellFromInt(value int) (Cell, bool) {
	switch value {
	case 0:
		return CellEmpty, true
	case 1:
		return CellBlack, true
	case 2:
		return CellWhite, true
	default:
		return CellEmpty, false
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}
