package gui

import (
	"fmt"
	"log"
	"strconv"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/ntquang/chessdesk/pkg"
)

// App wires the board, the buttons and the engine together. Only the UI
// event loop mutates the match; the engine worker hands its move back
// through QueueUpdateDraw.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	board  *tview.Table
	moves  *tview.TextView
	status *tview.TextView

	match  *pkg.Match
	engine *pkg.Engine
	theme  Theme

	flip      bool
	thinking  bool
	humanName string
}

func NewApp(engine *pkg.Engine) *App {
	a := &App{
		app:       tview.NewApplication(),
		match:     pkg.NewMatch(),
		engine:    engine,
		theme:     ThemeBasic,
		humanName: petname.Generate(2, "-"),
	}

	a.board = tview.NewTable()
	a.moves = tview.NewTextView().SetTextColor(a.theme.Moves)
	a.status = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(a.theme.Status)

	newBtn := tview.NewButton("New Game").SetSelectedFunc(a.onNewGame)
	undoBtn := tview.NewButton("Undo").SetSelectedFunc(a.onUndo)
	flipBtn := tview.NewButton("Flip").SetSelectedFunc(a.onFlip)
	engineBtn := tview.NewButton("Engine").SetSelectedFunc(a.showEngineForm)

	panel := tview.NewGrid().
		SetColumns(12, 12).
		SetRows(1, 1, -1).
		AddItem(newBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(undoBtn, 0, 1, 1, 1, 0, 0, false).
		AddItem(flipBtn, 1, 0, 1, 1, 0, 0, false).
		AddItem(engineBtn, 1, 1, 1, 1, 0, 0, false).
		AddItem(a.moves, 2, 0, 1, 2, 0, 0, false)

	layout := tview.NewGrid().
		SetRows(-1, 9, 1, -1).
		SetColumns(-1, 28, 30, -1).
		AddItem(a.board, 1, 1, 1, 1, 0, 0, true).
		AddItem(a.status, 2, 1, 1, 1, 0, 0, false).
		AddItem(panel, 1, 2, 2, 1, 0, 0, false)

	a.pages = tview.NewPages().AddPage("board", layout, true, true)
	a.refresh()
	return a
}

// Run starts the event loop and blocks until the window closes.
func (a *App) Run() error {
	a.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape {
			a.app.Stop()
			return nil
		}
		return ev
	})
	return a.app.SetRoot(a.pages, true).EnableMouse(true).Run()
}

func (a *App) onSquareClicked(sq chess.Square) {
	if a.thinking {
		return
	}
	res := a.match.Click(sq)
	a.refresh()
	if res == pkg.ClickMoved {
		a.maybeEngineMove()
	}
}

func (a *App) onNewGame() {
	if a.thinking {
		return
	}
	a.match.Reset()
	a.refresh()
	a.maybeEngineMove()
}

func (a *App) onUndo() {
	if a.thinking {
		return
	}
	a.match.Undo()
	a.refresh()
}

func (a *App) onFlip() {
	a.flip = !a.flip
	a.refresh()
}

// maybeEngineMove dispatches one engine request when the engine is on
// move. The thinking flag keeps requests serialized; it is only touched
// on the event loop.
func (a *App) maybeEngineMove() {
	if a.thinking || a.match.GameOver() || !a.match.EngineTurn() {
		return
	}
	if err := a.engine.Start(); err != nil {
		log.Printf("engine start: %v", err)
		a.showNotice(fmt.Sprintf("Could not start the engine:\n%v", err))
		return
	}
	a.thinking = true
	a.renderStatus()

	pos := a.match.Position()
	think := a.match.Think()
	go func() {
		mv, err := a.engine.BestMove(pos, think)
		a.app.QueueUpdateDraw(func() {
			a.thinking = false
			if err != nil {
				// The turn stays unresolved, the position untouched.
				log.Printf("engine move: %v", err)
			} else if err := a.match.ApplyEngineMove(mv); err != nil {
				log.Printf("engine move rejected: %v", err)
			}
			a.refresh()
		})
	}()
}

// showEngineForm asks for the human's side and the engine think time.
func (a *App) showEngineForm() {
	form := tview.NewForm()
	form.AddDropDown("Play as", []string{"White", "Black"}, 0, nil)
	form.AddInputField("Think time (seconds)",
		fmt.Sprintf("%.2f", a.match.Think().Seconds()), 8, tview.InputFieldFloat, nil)
	form.AddButton("Start", func() {
		idx, _ := form.GetFormItem(0).(*tview.DropDown).GetCurrentOption()
		engineSide := chess.Black
		if idx == 1 {
			engineSide = chess.White
		}
		secs, err := strconv.ParseFloat(form.GetFormItem(1).(*tview.InputField).GetText(), 64)
		if err != nil {
			secs = pkg.DefaultThink.Seconds()
		}
		a.match.SetEngine(engineSide, time.Duration(secs*float64(time.Second)))
		a.pages.RemovePage("engine")
		a.refresh()
		a.maybeEngineMove()
	})
	form.AddButton("Off", func() {
		a.match.SetEngine(chess.NoColor, a.match.Think())
		a.pages.RemovePage("engine")
		a.refresh()
	})
	form.AddButton("Cancel", func() {
		a.pages.RemovePage("engine")
	})
	form.SetBorder(true).SetTitle(" Play vs Engine ")
	a.pages.AddPage("engine", center(form, 46, 11), true, true)
	a.app.SetFocus(form)
}

// showNotice blocks the board behind a dismissable message.
func (a *App) showNotice(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.pages.RemovePage("notice")
		})
	a.pages.AddPage("notice", modal, true, true)
}

// center wraps a primitive in a grid so it floats over the board.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}
