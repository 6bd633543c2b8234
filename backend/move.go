package main

import (
	"encoding/json"
	"fmt"
)

// Move is a board cell. X is the column and Y the row.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewMove(row, col int) Move {
	return Move{X: col, Y: row}
}

func (m Move) Row() int {
	return m.Y
}

func (m Move) Col() int {
	return m.X
}

func (m Move) IsValid(boardSize int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < boardSize && m.Y < boardSize
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row(), m.Col())
}

// rowCol is the [row, col] wire form of a move.
type rowCol Move

func (m rowCol) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{Move(m).Row(), Move(m).Col()})
}

func (m *rowCol) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	m.Y = pair[0]
	m.X = pair[1]
	return nil
}

func manhattan(a, b Move) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
