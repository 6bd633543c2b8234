package main

import (
	"encoding/json"
	"testing"
)

func TestRowColWireFormIsRowFirst(t *testing.T) {
	move := NewMove(3, 11)
	data, err := json.Marshal(rowCol(move))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[3,11]" {
		t.Fatalf("expected [3,11], got %s", data)
	}

	var decoded rowCol
	if err := json.Unmarshal([]byte("[6, 2]"), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if Move(decoded) != NewMove(6, 2) || Move(decoded).Row() != 6 || Move(decoded).Col() != 2 {
		t.Fatalf("expected row 6 col 2, got %s", Move(decoded))
	}
	if err := json.Unmarshal([]byte(`{"x": 1}`), &decoded); err == nil {
		t.Fatalf("expected an error for an object")
	}
}

func TestMoveHelpers(t *testing.T) {
	move := NewMove(2, 9)
	if move.String() != "(2,9)" {
		t.Fatalf("expected (2,9), got %s", move)
	}
	if !move.IsValid(10) || move.IsValid(9) {
		t.Fatalf("unexpected bounds check for %s", move)
	}
	if d := manhattan(NewMove(0, 0), NewMove(3, -4)); d != 7 {
		t.Fatalf("expected distance 7, got %d", d)
	}
}
