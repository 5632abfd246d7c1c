package pkg

import (
	"errors"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

// Mover picks a move for the side to move. The UCI engine implements it;
// tests substitute their own.
type Mover interface {
	BestMove(pos *chess.Position, think time.Duration) (*chess.Move, error)
}

// Engine talks to an external UCI engine process such as Stockfish. The
// process is launched on first need, not at construction, so the program
// stays usable without an engine installed. The mutex serializes search
// requests against Close, which runs on the main goroutine.
type Engine struct {
	path string

	mu     sync.Mutex
	eng    *uci.Engine
	closed bool
}

func NewEngine(path string) *Engine {
	return &Engine{path: path}
}

// Start launches the engine process and runs the UCI handshake. Calling
// it on a running engine is a no-op; calling it after Close is an error.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked()
}

func (e *Engine) startLocked() error {
	if e.closed {
		return errors.New("engine closed")
	}
	if e.eng != nil {
		return nil
	}
	eng, err := uci.New(e.path)
	if err != nil {
		return err
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return err
	}
	e.eng = eng
	return nil
}

func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng != nil
}

// BestMove sends the position and think time budget and blocks until the
// engine answers. Callers run this off the UI event loop; the lock is
// held for the whole search so Close waits out an in-flight request.
func (e *Engine) BestMove(pos *chess.Position, think time.Duration) (*chess.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.startLocked(); err != nil {
		return nil, err
	}
	err := e.eng.Run(
		uci.CmdPosition{Position: pos},
		uci.CmdGo{MoveTime: think},
	)
	if err != nil {
		return nil, err
	}
	return e.eng.SearchResults().BestMove, nil
}

// Close terminates the engine process, best effort, and refuses any
// later Start.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.eng == nil {
		return
	}
	e.eng.Close()
	e.eng = nil
}
