package gui

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/ntquang/chessdesk/pkg"
)

const (
	numrows = 8
	numcols = 8
	// Move pairs shown at once in the move list.
	movesShown = 8
)

// renderBoard fills the table from the current position: rank labels in
// column 0, file labels in the bottom row, one clickable cell per square.
// The table is rebuilt on every call, there is no incremental diffing.
func (a *App) renderBoard() {
	board := a.match.Position().Board()
	selected, hasSel := a.match.Selected()
	checkSq, inCheck := a.match.CheckSquare()

	for r := 0; r <= numrows; r++ {
		for c := 0; c <= numcols; c++ {
			switch {
			case r == numrows && c == 0:
				// The bottom left tile is not used
				a.board.SetCell(r, c, tview.NewTableCell(" "))
			case c == 0:
				sq := pkg.SquareAt(r, 0, a.flip)
				cell := tview.NewTableCell(sq.Rank().String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(a.theme.Rank)
				a.board.SetCell(r, c, cell)
			case r == numrows:
				sq := pkg.SquareAt(0, c-1, a.flip)
				cell := tview.NewTableCell(" " + sq.File().String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(a.theme.File)
				a.board.SetCell(r, c, cell)
			default:
				sq := pkg.SquareAt(r, c-1, a.flip)
				p := board.Piece(sq)

				bg := a.theme.SquareLight
				if (int(sq.File())+int(sq.Rank()))%2 == 0 {
					bg = a.theme.SquareDark
				}
				target := a.match.IsTarget(sq)
				switch {
				case hasSel && sq == selected:
					bg = a.theme.SquareSelect
				case target:
					bg = a.theme.SquareTarget
				case inCheck && sq == checkSq:
					bg = a.theme.SquareCheck
				}

				// NoPiece renders as a blank glyph
				text := " " + p.String()
				fg := a.theme.Black
				if p != chess.NoPiece && p.Color() == chess.White {
					fg = a.theme.White
				}
				if p == chess.NoPiece && target {
					text = " ·"
				}

				cell := tview.NewTableCell(text).
					SetAlign(tview.AlignCenter).
					SetTextColor(fg).
					SetBackgroundColor(bg).
					SetClickedFunc(func() bool {
						a.onSquareClicked(sq)
						return true
					})
				a.board.SetCell(r, c, cell)
			}
		}
	}
}

// renderStatus shows whose move it is, check and game over states.
func (a *App) renderStatus() {
	status := a.match.StatusText()
	if a.thinking {
		status += " (engine thinking)"
	}
	a.status.SetText(status)
}

// playerLabel names a side in the panel. The engine side carries the
// engine name instead of the generated human name.
func (a *App) playerLabel(side chess.Color) string {
	if a.match.EngineSide() == side {
		return fmt.Sprintf("%s: engine (%v)", side.Name(), a.match.Think())
	}
	return fmt.Sprintf("%s: %s", side.Name(), a.humanName)
}

// renderMoves rewrites the side panel: player names and the most recent
// move pairs, windowed like a scoresheet.
func (a *App) renderMoves() {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", a.playerLabel(chess.White), a.playerLabel(chess.Black))

	history := a.match.History()
	pairs := (len(history) + 1) / 2
	first := 0
	if pairs > movesShown {
		first = pairs - movesShown
	}
	for i := first; i < pairs; i++ {
		white := history[i*2].SAN
		black := ""
		if i*2+1 < len(history) {
			black = history[i*2+1].SAN
		}
		fmt.Fprintf(&b, "%2d. %-8s %-8s\n", i+1, white, black)
	}
	a.moves.SetText(b.String())
}

func (a *App) refresh() {
	a.renderBoard()
	a.renderMoves()
	a.renderStatus()
}
