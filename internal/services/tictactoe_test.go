package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boardOf(cells ...string) []string {
	board := make([]string, 9)
	copy(board, cells)
	return board
}

func TestWinnerOfRows(t *testing.T) {
	assert.Equal(t, "X", WinnerOf(boardOf("X", "X", "X")))
	assert.Equal(t, "O", WinnerOf(boardOf("", "", "", "O", "O", "O")))
	assert.Equal(t, "X", WinnerOf(boardOf("", "", "", "", "", "", "X", "X", "X")))
}

func TestWinnerOfColumnsAndDiagonals(t *testing.T) {
	assert.Equal(t, "O", WinnerOf(boardOf("O", "", "", "O", "", "", "O")))
	assert.Equal(t, "X", WinnerOf(boardOf("X", "", "", "", "X", "", "", "", "X")))
	assert.Equal(t, "O", WinnerOf(boardOf("", "", "O", "", "O", "", "O")))
}

func TestWinnerOfOpenBoard(t *testing.T) {
	assert.Equal(t, "", WinnerOf(boardOf()))
	assert.Equal(t, "", WinnerOf(boardOf("X", "O", "X")))
}

func TestWinnerOfDraw(t *testing.T) {
	// X O X / X O O / O X X
	board := []string{"X", "O", "X", "X", "O", "O", "O", "X", "X"}
	assert.Equal(t, "draw", WinnerOf(board))
}
