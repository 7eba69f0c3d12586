package engine

import (
	"github.com/informatter/text-tetris-engine/grid"
	"github.com/informatter/text-tetris-engine/polyomino"
)

// Frame carries one token through the systems. Systems read the token and
// record what they did in Placed and Cleared for the systems after them.
type Frame struct {
	Step     int64
	Token    Token
	Grid     *grid.Grid
	Storage  *Storage
	Commands *Commands

	Placed  *polyomino.Shape
	Cleared []int
}

func newFrame(step int64, token Token, g *grid.Grid, storage *Storage) *Frame {
	return &Frame{
		Step:     step,
		Token:    token,
		Grid:     g,
		Storage:  storage,
		Commands: newCommands(),
	}
}
