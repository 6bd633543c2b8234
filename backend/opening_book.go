package main

import (
	"fmt"
	"strconv"
	"strings"
)

const bookBoardSize = 15

// bookStone is a stone placed relative to the board center.
type bookStone struct {
	dRow int
	dCol int
	cell Cell
}

type bookLine struct {
	stones []bookStone
	dRow   int
	dCol   int
}

func black(dRow, dCol int) bookStone { return bookStone{dRow: dRow, dCol: dCol, cell: CellBlack} }
func white(dRow, dCol int) bookStone { return bookStone{dRow: dRow, dCol: dCol, cell: CellWhite} }

// openingLines are expanded under the eight board symmetries when the book is
// built. Earlier lines win when two images share a key.
var openingLines = []bookLine{
	// Lone center stone: answer diagonally.
	{stones: []bookStone{black(0, 0)}, dRow: -1, dCol: 1},
	// Direct opening, white touches the center orthogonally.
	{stones: []bookStone{black(0, 0), white(-1, 0)}, dRow: -1, dCol: 1},
	// Indirect opening, white touches the center diagonally.
	{stones: []bookStone{black(0, 0), white(-1, 1)}, dRow: -1, dCol: -1},
	{stones: []bookStone{black(0, 0), white(-1, 0), black(-1, 1)}, dRow: 1, dCol: -1},
	{stones: []bookStone{black(0, 0), white(-1, 1), black(-1, -1)}, dRow: 1, dCol: 1},
	{stones: []bookStone{black(0, 0), white(-1, 0), black(-1, 1), white(1, -1)}, dRow: 0, dCol: 1},
	{stones: []bookStone{black(0, 0), white(-1, 1), black(-1, -1), white(1, 1)}, dRow: 0, dCol: -1},
}

// OpeningBook maps a canonical board key to a precomputed reply. It is built
// once and only read afterwards.
type OpeningBook struct {
	size    int
	entries map[string]Move
}

func NewOpeningBook() *OpeningBook {
	book := &OpeningBook{size: bookBoardSize, entries: make(map[string]Move)}
	for _, line := range openingLines {
		for sym := 0; sym < 8; sym++ {
			book.addLine(line, sym)
		}
	}
	return book
}

func (b *OpeningBook) addLine(line bookLine, sym int) {
	center := b.size / 2
	board := NewBoard(b.size)
	for _, stone := range line.stones {
		dRow, dCol := transformOffset(stone.dRow, stone.dCol, sym)
		board.Set(center+dCol, center+dRow, stone.cell)
	}
	dRow, dCol := transformOffset(line.dRow, line.dCol, sym)
	reply := NewMove(center+dRow, center+dCol)
	if !board.IsEmpty(reply.X, reply.Y) {
		panic(fmt.Sprintf("opening book reply %s is not an empty cell", reply))
	}
	key := BookKey(board)
	if _, exists := b.entries[key]; exists {
		return
	}
	b.entries[key] = reply
}

// transformOffset applies one of the eight board symmetries: sym%4 quarter
// turns, mirrored when sym >= 4.
func transformOffset(dRow, dCol, sym int) (int, int) {
	for i := 0; i < sym%4; i++ {
		dRow, dCol = dCol, -dRow
	}
	if sym >= 4 {
		dCol = -dCol
	}
	return dRow, dCol
}

// Lookup returns the book reply for board. Boards of any other size than the
// book's always miss.
func (b *OpeningBook) Lookup(board Board) (Move, bool) {
	if b == nil || board.Size() != b.size {
		return Move{}, false
	}
	move, ok := b.entries[BookKey(board)]
	if !ok || !board.IsEmpty(move.X, move.Y) {
		return Move{}, false
	}
	return move, true
}

func (b *OpeningBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// BookKey encodes the occupied cells sorted by (row, col), each tagged with
// its color, e.g. "B7,7;W6,7". The key does not depend on move order.
func BookKey(board Board) string {
	var sb strings.Builder
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(';')
			}
			if cell == CellBlack {
				sb.WriteByte('B')
			} else {
				sb.WriteByte('W')
			}
			sb.WriteString(strconv.Itoa(y))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(x))
		}
	}
	return sb.String()
}
