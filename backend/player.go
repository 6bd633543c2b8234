package main

import (
	"errors"
	"fmt"
)

type PlayerColor int

const (
	PlayerBlack PlayerColor = iota + 1
	PlayerWhite
)

var ErrInvalidPlayer = errors.New("player must be 1 (black) or 2 (white)")

func otherPlayer(player PlayerColor) PlayerColor {
	return 3 - player
}

func playerFromInt(value int) (PlayerColor, error) {
	switch value {
	case 1:
		return PlayerBlack, nil
	case 2:
		return PlayerWhite, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPlayer, value)
	}
}

func (p PlayerColor) Valid() bool {
	return p == PlayerBlack || p == PlayerWhite
}

func (p PlayerColor) String() string {
	switch p {
	case PlayerBlack:
		return "black"
	case PlayerWhite:
		return "white"
	default:
		return fmt.Sprintf("player(%d)", int(p))
	}
}
