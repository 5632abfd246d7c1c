package gui

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme colors the board and panels.
type Theme struct {
	SquareDark   tcell.Color
	SquareLight  tcell.Color
	SquareSelect tcell.Color
	SquareTarget tcell.Color
	SquareCheck  tcell.Color
	White        tcell.Color
	Black        tcell.Color
	Rank         tcell.Color
	File         tcell.Color
	Status       tcell.Color
	Moves        tcell.Color
	PlayerNames  tcell.Color
}

// ThemeBasic is the built-in theme.
var ThemeBasic = Theme{
	tcell.Color137,     // SquareDark
	tcell.Color223,     // SquareLight
	tcell.Color228,     // SquareSelect
	tcell.Color117,     // SquareTarget
	tcell.Color218,     // SquareCheck
	tcell.Color255,     // White
	tcell.Color232,     // Black
	tcell.Color247,     // Rank
	tcell.Color247,     // File
	tcell.ColorDefault, // Status
	tcell.ColorDefault, // Moves
	tcell.ColorDefault, // PlayerNames
}
