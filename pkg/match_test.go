package pkg

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// clickMove plays one move the way the board does it, click by click.
func clickMove(t *testing.T, m *Match, from, to chess.Square) {
	t.Helper()
	require.Equal(t, ClickSelected, m.Click(from))
	require.Equal(t, ClickMoved, m.Click(to))
}

func TestNewMatch(t *testing.T) {
	m := NewMatch()
	assert.Equal(t, startFEN, m.Position().String())
	assert.Empty(t, m.History())
	assert.Equal(t, chess.NoColor, m.EngineSide())
	assert.Equal(t, "White to move", m.StatusText())
	_, selecting := m.Selected()
	assert.False(t, selecting)
}

func TestClickMovePawn(t *testing.T) {
	m := NewMatch()

	require.Equal(t, ClickSelected, m.Click(chess.E2))
	sq, selecting := m.Selected()
	require.True(t, selecting)
	require.Equal(t, chess.E2, sq)
	assert.True(t, m.IsTarget(chess.E3))
	assert.True(t, m.IsTarget(chess.E4))
	assert.False(t, m.IsTarget(chess.E5))

	require.Equal(t, ClickMoved, m.Click(chess.E4))
	board := m.Position().Board()
	assert.Equal(t, chess.WhitePawn, board.Piece(chess.E4))
	assert.Equal(t, chess.NoPiece, board.Piece(chess.E2))
	assert.Equal(t, chess.Black, m.Position().Turn())
	require.Len(t, m.History(), 1)
	assert.Equal(t, "e4", m.History()[0].SAN)
	_, selecting = m.Selected()
	assert.False(t, selecting)
}

func TestClickOpponentOrEmpty(t *testing.T) {
	m := NewMatch()
	// Black piece while White is to move
	assert.Equal(t, ClickIgnored, m.Click(chess.E7))
	// empty square
	assert.Equal(t, ClickIgnored, m.Click(chess.E4))
	_, selecting := m.Selected()
	assert.False(t, selecting)
}

func TestReselectOwnPiece(t *testing.T) {
	m := NewMatch()
	require.Equal(t, ClickSelected, m.Click(chess.E2))
	require.Equal(t, ClickSelected, m.Click(chess.D2))
	sq, selecting := m.Selected()
	require.True(t, selecting)
	assert.Equal(t, chess.D2, sq)
	assert.True(t, m.IsTarget(chess.D4))
	assert.False(t, m.IsTarget(chess.E4))
}

func TestClickSelectedSquareDeselects(t *testing.T) {
	m := NewMatch()
	require.Equal(t, ClickSelected, m.Click(chess.E2))
	require.Equal(t, ClickDeselected, m.Click(chess.E2))
	_, selecting := m.Selected()
	assert.False(t, selecting)
	assert.False(t, m.IsTarget(chess.E4))
}

func TestClickIllegalTargetClears(t *testing.T) {
	m := NewMatch()
	require.Equal(t, ClickSelected, m.Click(chess.E2))
	require.Equal(t, ClickDeselected, m.Click(chess.E5))
	assert.Equal(t, startFEN, m.Position().String())
	assert.Empty(t, m.History())
}

func TestUndoRestoresPositions(t *testing.T) {
	m := NewMatch()
	moves := [][2]chess.Square{
		{chess.E2, chess.E4},
		{chess.E7, chess.E5},
		{chess.G1, chess.F3},
	}
	fens := []string{m.Position().String()}
	for _, mv := range moves {
		clickMove(t, m, mv[0], mv[1])
		fens = append(fens, m.Position().String())
	}
	for i := len(moves) - 1; i >= 0; i-- {
		require.True(t, m.Undo())
		assert.Equal(t, fens[i], m.Position().String())
		assert.Len(t, m.History(), i)
	}
	assert.Equal(t, startFEN, m.Position().String())
}

func TestUndoEmptyHistory(t *testing.T) {
	m := NewMatch()
	require.False(t, m.Undo())
	assert.Equal(t, startFEN, m.Position().String())
	assert.Equal(t, chess.White, m.Position().Turn())
}

func TestUndoClearsSelection(t *testing.T) {
	m := NewMatch()
	clickMove(t, m, chess.E2, chess.E4)
	require.Equal(t, ClickSelected, m.Click(chess.E7))
	m.Undo()
	_, selecting := m.Selected()
	assert.False(t, selecting)
}

func TestAutoQueenPromotion(t *testing.T) {
	m := MatchFromFEN("7k/P7/8/8/8/8/8/7K w - - 0 1")
	require.Equal(t, ClickSelected, m.Click(chess.A7))
	require.True(t, m.IsTarget(chess.A8))
	require.Equal(t, ClickMoved, m.Click(chess.A8))

	assert.Equal(t, chess.WhiteQueen, m.Position().Board().Piece(chess.A8))
	require.Len(t, m.History(), 1)
	assert.Equal(t, chess.Queen, m.History()[0].Move.Promo())
	assert.Equal(t, "a8=Q+", m.History()[0].SAN)
}

func TestResetStartsOver(t *testing.T) {
	m := NewMatch()
	clickMove(t, m, chess.E2, chess.E4)
	m.SetEngine(chess.White, time.Second)
	m.Reset()

	assert.Equal(t, startFEN, m.Position().String())
	assert.Empty(t, m.History())
	// assignment survives, so the engine is immediately on move
	assert.Equal(t, chess.White, m.EngineSide())
	assert.True(t, m.EngineTurn())
}

func TestEngineTurnIgnoresClicks(t *testing.T) {
	m := NewMatch()
	m.SetEngine(chess.White, DefaultThink)
	assert.Equal(t, ClickIgnored, m.Click(chess.E2))
	_, selecting := m.Selected()
	assert.False(t, selecting)
}

func TestSetEngineClampsThink(t *testing.T) {
	m := NewMatch()
	m.SetEngine(chess.Black, 0)
	assert.Equal(t, MinThink, m.Think())
	m.SetEngine(chess.Black, time.Hour)
	assert.Equal(t, MaxThink, m.Think())
	m.SetEngine(chess.Black, time.Second)
	assert.Equal(t, time.Second, m.Think())
}

// firstMover plays the first legal move, deterministic stand-in for the
// external engine.
type firstMover struct{}

func (firstMover) BestMove(pos *chess.Position, _ time.Duration) (*chess.Move, error) {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, errors.New("no legal moves")
	}
	return moves[0], nil
}

func TestEngineMoveAfterHumanMove(t *testing.T) {
	m := NewMatch()
	m.SetEngine(chess.Black, DefaultThink)

	clickMove(t, m, chess.E2, chess.E4)
	require.True(t, m.EngineTurn())

	var mover Mover = firstMover{}
	best, err := mover.BestMove(m.Position(), m.Think())
	require.NoError(t, err)
	require.NoError(t, m.ApplyEngineMove(best))

	assert.Equal(t, chess.White, m.Position().Turn())
	assert.Len(t, m.History(), 2)
	assert.False(t, m.EngineTurn())
}

func TestApplyEngineMoveNil(t *testing.T) {
	m := NewMatch()
	require.Error(t, m.ApplyEngineMove(nil))
	assert.Equal(t, startFEN, m.Position().String())
	assert.Empty(t, m.History())
}

func TestStatusCheck(t *testing.T) {
	m := NewMatch()
	clickMove(t, m, chess.E2, chess.E4)
	clickMove(t, m, chess.F7, chess.F5)
	clickMove(t, m, chess.D1, chess.H5)

	assert.True(t, m.InCheck())
	sq, ok := m.CheckSquare()
	require.True(t, ok)
	assert.Equal(t, chess.E8, sq)
	assert.Equal(t, "Black to move (check)", m.StatusText())
	assert.False(t, m.GameOver())
}

func TestStatusCheckmate(t *testing.T) {
	m := NewMatch()
	clickMove(t, m, chess.F2, chess.F3)
	clickMove(t, m, chess.E7, chess.E5)
	clickMove(t, m, chess.G2, chess.G4)
	clickMove(t, m, chess.D8, chess.H4)

	assert.True(t, m.GameOver())
	assert.Equal(t, "Checkmate! Black wins", m.StatusText())
}

func TestStatusStalemate(t *testing.T) {
	m := MatchFromFEN("7k/8/6Q1/8/8/8/8/7K b - - 0 1")
	assert.True(t, m.GameOver())
	assert.Equal(t, "Stalemate", m.StatusText())
}

func TestUndoRestoresLoadedPosition(t *testing.T) {
	fen := "7k/P7/8/8/8/8/8/7K w - - 0 1"
	m := MatchFromFEN(fen)
	clickMove(t, m, chess.A7, chess.A8)

	require.True(t, m.Undo())
	assert.Equal(t, fen, m.Position().String())
	assert.Empty(t, m.History())
	assert.Equal(t, chess.WhitePawn, m.Position().Board().Piece(chess.A7))
}

func TestCheckFromLoadedPosition(t *testing.T) {
	m := MatchFromFEN("4k3/8/8/8/8/8/8/4QK2 b - - 0 1")

	assert.True(t, m.InCheck())
	sq, ok := m.CheckSquare()
	require.True(t, ok)
	assert.Equal(t, chess.E8, sq)
	assert.Equal(t, "Black to move (check)", m.StatusText())
	assert.Empty(t, m.History())
}

func TestStatusDrawByRepetition(t *testing.T) {
	m := NewMatch()
	for i := 0; i < 4; i++ {
		clickMove(t, m, chess.G1, chess.F3)
		clickMove(t, m, chess.G8, chess.F6)
		clickMove(t, m, chess.F3, chess.G1)
		clickMove(t, m, chess.F6, chess.G8)
	}

	assert.True(t, m.GameOver())
	assert.Equal(t, chess.FivefoldRepetition, m.game.Method())
	assert.Equal(t, fmt.Sprintf("Draw (%s)", chess.FivefoldRepetition), m.StatusText())
}
