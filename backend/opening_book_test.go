package main

import "testing"

func TestBookKeyIgnoresPlacementOrder(t *testing.T) {
	a := NewBoard(15)
	a.Set(7, 7, CellBlack)
	a.Set(8, 6, CellWhite)
	a.Set(9, 9, CellBlack)

	b := NewBoard(15)
	b.Set(9, 9, CellBlack)
	b.Set(8, 6, CellWhite)
	b.Set(7, 7, CellBlack)

	if BookKey(a) != BookKey(b) {
		t.Fatalf("expected equal keys, got %q and %q", BookKey(a), BookKey(b))
	}
	if got, want := BookKey(a), "W6,8;B7,7;B9,9"; got != want {
		t.Fatalf("expected key %q, got %q", want, got)
	}
	if BookKey(NewBoard(15)) != "" {
		t.Fatalf("expected empty key for an empty board")
	}
}

func TestOpeningBookCoversEverySymmetry(t *testing.T) {
	book := NewOpeningBook()
	if book.Len() == 0 {
		t.Fatalf("expected a populated book")
	}
	center := bookBoardSize / 2
	for i, line := range openingLines {
		for sym := 0; sym < 8; sym++ {
			board := NewBoard(bookBoardSize)
			for _, stone := range line.stones {
				dRow, dCol := transformOffset(stone.dRow, stone.dCol, sym)
				board.Set(center+dCol, center+dRow, stone.cell)
			}
			move, ok := book.Lookup(board)
			if !ok {
				t.Fatalf("line %d sym %d: expected a book hit for %q", i, sym, BookKey(board))
			}
			if !board.IsEmpty(move.X, move.Y) {
				t.Fatalf("line %d sym %d: book move %s is occupied", i, sym, move)
			}
		}
	}
}

func TestOpeningBookDirectOpeningReply(t *testing.T) {
	book := NewOpeningBook()
	board := boardWithStones(15, []Move{NewMove(7, 7)}, []Move{NewMove(6, 7)})
	move, ok := book.Lookup(board)
	if !ok || move != NewMove(6, 8) {
		t.Fatalf("expected (6,8), got %s ok=%v", move, ok)
	}

	// Same shape turned a quarter: white to the right of the center.
	board = boardWithStones(15, []Move{NewMove(7, 7)}, []Move{NewMove(7, 8)})
	move, ok = book.Lookup(board)
	if !ok || move != NewMove(8, 8) {
		t.Fatalf("expected (8,8), got %s ok=%v", move, ok)
	}
}

func TestOpeningBookMissesOtherSizes(t *testing.T) {
	book := NewOpeningBook()
	for _, size := range []int{9, 13, 19} {
		board := NewBoard(size)
		board.Set(size/2, size/2, CellBlack)
		if _, ok := book.Lookup(board); ok {
			t.Fatalf("size %d: expected book miss", size)
		}
	}
}

func TestOpeningBookMissesUnknownPositions(t *testing.T) {
	book := NewOpeningBook()
	board := boardWithStones(15, []Move{NewMove(0, 0), NewMove(7, 7)}, nil)
	if _, ok := book.Lookup(board); ok {
		t.Fatalf("expected book miss for an off-book position")
	}
	var nilBook *OpeningBook
	if _, ok := nilBook.Lookup(NewBoard(15)); ok {
		t.Fatalf("nil book must miss")
	}
}

func TestTransformOffsetCyclesBack(t *testing.T) {
	dRow, dCol := -1, 2
	for i := 0; i < 4; i++ {
		dRow, dCol = transformOffset(dRow, dCol, 1)
	}
	if dRow != -1 || dCol != 2 {
		t.Fatalf("four quarter turns should be the identity, got (%d,%d)", dRow, dCol)
	}
	if r, c := transformOffset(-1, 2, 4); r != -1 || c != -2 {
		t.Fatalf("expected mirror (-1,-2), got (%d,%d)", r, c)
	}
}
