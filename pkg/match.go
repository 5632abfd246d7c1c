package pkg

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/notnil/chess"
)

// Think time bounds for the engine. The dialog accepts seconds, anything
// outside this range is clamped.
const (
	MinThink     = 10 * time.Millisecond
	MaxThink     = 30 * time.Second
	DefaultThink = 100 * time.Millisecond
)

// Ply records one applied move together with its algebraic notation,
// which is only kept for the move list display.
type Ply struct {
	Move *chess.Move
	SAN  string
}

// ClickResult tells the caller what a board click did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickSelected
	ClickDeselected
	ClickMoved
)

// Match owns the game, the move history and the selection state. All
// mutation goes through Click, ApplyEngineMove, Undo and Reset; the
// legality of every move is decided by the chess library.
type Match struct {
	game    *chess.Game
	root    string // FEN of the position the match started from
	history []Ply

	selecting bool
	selected  chess.Square
	targets   map[chess.Square]bool

	engineSide chess.Color // NoColor when both sides are human
	think      time.Duration
}

func NewMatch() *Match {
	g := chess.NewGame()
	return &Match{
		game:       g,
		root:       g.FEN(),
		engineSide: chess.NoColor,
		think:      DefaultThink,
	}
}

// MatchFromFEN starts a match from an arbitrary position. Panics on a
// malformed FEN, same as GameFromFEN.
func MatchFromFEN(fen string) *Match {
	m := NewMatch()
	m.game = GameFromFEN(fen)
	m.root = m.game.FEN()
	return m
}

// Reset starts a fresh game from the standard position and clears
// history and selection. The engine assignment survives a reset.
func (m *Match) Reset() {
	m.game = chess.NewGame()
	m.root = m.game.FEN()
	m.history = nil
	m.clearSelection()
}

// Click runs the selection state machine for a pointer click on sq.
func (m *Match) Click(sq chess.Square) ClickResult {
	if m.EngineTurn() {
		return ClickIgnored
	}
	pos := m.game.Position()
	p := pos.Board().Piece(sq)

	if !m.selecting {
		if p != chess.NoPiece && p.Color() == pos.Turn() {
			m.pickUp(sq)
			return ClickSelected
		}
		return ClickIgnored
	}

	if sq == m.selected {
		m.clearSelection()
		return ClickDeselected
	}
	if m.targets[sq] {
		if err := m.move(m.selected, sq); err != nil {
			log.Printf("move rejected: %v", err)
			m.clearSelection()
			return ClickDeselected
		}
		return ClickMoved
	}
	if p != chess.NoPiece && p.Color() == pos.Turn() {
		m.pickUp(sq)
		return ClickSelected
	}
	m.clearSelection()
	return ClickDeselected
}

// pickUp selects a square and computes the legal destinations of the
// piece standing on it.
func (m *Match) pickUp(sq chess.Square) {
	m.selecting = true
	m.selected = sq
	m.targets = make(map[chess.Square]bool)
	for _, mv := range m.game.ValidMoves() {
		if mv.S1() == sq {
			m.targets[mv.S2()] = true
		}
	}
}

func (m *Match) clearSelection() {
	m.selecting = false
	m.selected = 0
	m.targets = nil
}

// move applies the legal move from one square to another. A pawn push to
// the last rank appears once per promotion piece in the legal move set;
// the queen is picked without asking.
func (m *Match) move(from, to chess.Square) error {
	for _, mv := range m.game.ValidMoves() {
		if mv.S1() != from || mv.S2() != to {
			continue
		}
		if mv.Promo() == chess.NoPieceType || mv.Promo() == chess.Queen {
			return m.push(mv)
		}
	}
	return fmt.Errorf("no legal move %s%s", from, to)
}

// ApplyEngineMove feeds an engine move through the same apply path as a
// human move. A nil move leaves the position untouched.
func (m *Match) ApplyEngineMove(mv *chess.Move) error {
	if mv == nil {
		return errors.New("engine returned no move")
	}
	return m.push(mv)
}

func (m *Match) push(mv *chess.Move) error {
	if err := m.game.Move(mv); err != nil {
		return err
	}
	moves := m.game.Moves()
	applied := moves[len(moves)-1]
	before := m.game.Positions()[len(moves)-1]
	m.history = append(m.history, Ply{
		Move: applied,
		SAN:  chess.AlgebraicNotation{}.Encode(before, applied),
	})
	m.clearSelection()
	return nil
}

// Undo reverts the position by one ply. Returns false when there is
// nothing to undo.
func (m *Match) Undo() bool {
	m.clearSelection()
	if len(m.history) == 0 {
		return false
	}
	m.history = m.history[:len(m.history)-1]
	g := GameFromFEN(m.root)
	for _, ply := range m.history {
		if err := g.Move(ply.Move); err != nil {
			log.Printf("undo replay: %v", err)
			break
		}
	}
	m.game = g
	return true
}

// SetEngine assigns a side to the engine (NoColor for none) and sets its
// think time budget.
func (m *Match) SetEngine(side chess.Color, think time.Duration) {
	m.engineSide = side
	if think < MinThink {
		think = MinThink
	}
	if think > MaxThink {
		think = MaxThink
	}
	m.think = think
}

func (m *Match) EngineSide() chess.Color { return m.engineSide }
func (m *Match) Think() time.Duration    { return m.think }

// EngineTurn reports whether the side to move is engine controlled.
func (m *Match) EngineTurn() bool {
	return m.engineSide != chess.NoColor && m.game.Position().Turn() == m.engineSide
}

func (m *Match) GameOver() bool {
	return m.game.Outcome() != chess.NoOutcome ||
		m.game.Position().Status() != chess.NoMethod
}

func (m *Match) Position() *chess.Position { return m.game.Position() }
func (m *Match) History() []Ply            { return m.history }

func (m *Match) Selected() (chess.Square, bool) {
	return m.selected, m.selecting
}

func (m *Match) IsTarget(sq chess.Square) bool {
	return m.targets[sq]
}

// InCheck reports whether the side to move is in check. The check tag of
// the last applied move carries this; a position loaded from FEN has no
// last move, so the root is asked directly.
func (m *Match) InCheck() bool {
	if n := len(m.history); n > 0 {
		return m.history[n-1].Move.HasTag(chess.Check)
	}
	return inCheck(m.game.Position())
}

// CheckSquare locates the checked king for highlighting.
func (m *Match) CheckSquare() (chess.Square, bool) {
	if !m.InCheck() {
		return 0, false
	}
	return kingSquare(m.game.Position())
}

// inCheck hands the move over to the opponent and asks whether any reply
// lands on the king. The chess library keeps its own check flag private.
func inCheck(pos *chess.Position) bool {
	if pos.Status() == chess.Checkmate {
		return true
	}
	king, ok := kingSquare(pos)
	if !ok {
		return false
	}
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return false
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-" // en passant does not survive handing over the move
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	for _, mv := range chess.NewGame(opt).ValidMoves() {
		if mv.S2() == king {
			return true
		}
	}
	return false
}

func kingSquare(pos *chess.Position) (chess.Square, bool) {
	king := chess.WhiteKing
	if pos.Turn() == chess.Black {
		king = chess.BlackKing
	}
	board := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if board.Piece(sq) == king {
			return sq, true
		}
	}
	return 0, false
}

// StatusText is the one line status shown under the board.
func (m *Match) StatusText() string {
	pos := m.game.Position()
	switch pos.Status() {
	case chess.Checkmate:
		return fmt.Sprintf("Checkmate! %s wins", pos.Turn().Other().Name())
	case chess.Stalemate:
		return "Stalemate"
	}
	if m.game.Outcome() == chess.Draw {
		return fmt.Sprintf("Draw (%s)", m.game.Method())
	}
	if m.InCheck() {
		return pos.Turn().Name() + " to move (check)"
	}
	return pos.Turn().Name() + " to move"
}
