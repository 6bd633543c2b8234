package main

import (
	"errors"
	"testing"
)

// boardWithStones builds a size×size board from (row, col) stone lists.
func boardWithStones(size int, blacks, whites []Move) Board {
	board := NewBoard(size)
	for _, m := range blacks {
		board.Set(m.X, m.Y, CellBlack)
	}
	for _, m := range whites {
		board.Set(m.X, m.Y, CellWhite)
	}
	return board
}

func TestNewBoardFromRowsIndexesRowCol(t *testing.T) {
	rows := [][]int{
		{0, 1, 0},
		{0, 0, 2},
		{0, 0, 0},
	}
	board, err := NewBoardFromRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Size() != 3 {
		t.Fatalf("expected size 3, got %d", board.Size())
	}
	if board.At(1, 0) != CellBlack {
		t.Fatalf("expected black at row 0 col 1, got %s", board.At(1, 0))
	}
	if board.At(2, 1) != CellWhite {
		t.Fatalf("expected white at row 1 col 2, got %s", board.At(2, 1))
	}
	if board.StoneCount() != 2 {
		t.Fatalf("expected 2 stones, got %d", board.StoneCount())
	}
}

func TestNewBoardFromRowsRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int
		want error
	}{
		{name: "empty", rows: nil, want: ErrEmptyBoard},
		{name: "ragged", rows: [][]int{{0, 0}, {0}}, want: ErrRaggedBoard},
		{name: "not square", rows: [][]int{{0, 0, 0}, {0, 0, 0}}, want: ErrNotSquare},
		{name: "bad value", rows: [][]int{{0, 3}, {0, 0}}, want: ErrInvalidCell},
		{name: "negative value", rows: [][]int{{0, 0}, {-1, 0}}, want: ErrInvalidCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBoardFromRows(tc.rows)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard(5)
	board.Set(2, 2, CellBlack)
	clone := board.Clone()
	clone.Set(1, 1, CellWhite)
	if board.At(1, 1) != CellEmpty {
		t.Fatalf("expected clone writes to leave the source board untouched")
	}
	if clone.At(2, 2) != CellBlack {
		t.Fatalf("expected clone to keep existing stones")
	}
}

func TestBoardRowsRoundTrip(t *testing.T) {
	board := boardWithStones(4, []Move{NewMove(0, 3)}, []Move{NewMove(3, 0)})
	rows := board.Rows()
	if rows[0][3] != 1 || rows[3][0] != 2 {
		t.Fatalf("unexpected rows: %v", rows)
	}
	again, err := NewBoardFromRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if BookKey(again) != BookKey(board) {
		t.Fatalf("expected identical boards, got %q and %q", BookKey(again), BookKey(board))
	}
}
