package main

import (
	"flag"
	"log"
	"os"
	"os/exec"

	"github.com/fatih/color"

	"github.com/ntquang/chessdesk/pkg"
	"github.com/ntquang/chessdesk/pkg/gui"
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	flag.Parse()
	pkg.InitLog(*logPath, "CHESSDESK: ")

	path := enginePath()
	log.Printf("New session, engine binary: %s", path)

	engine := pkg.NewEngine(path)
	app := gui.NewApp(engine)
	err := app.Run()
	engine.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// enginePath resolves the engine executable once at startup: an explicit
// override, then the search path, then the bare name as a last resort.
func enginePath() string {
	if p := os.Getenv("CHESSDESK_ENGINE"); p != "" {
		return p
	}
	p, err := exec.LookPath("stockfish")
	if err != nil {
		color.New(color.FgYellow).Fprintln(os.Stderr,
			"warning: stockfish not found in PATH; install it or set CHESSDESK_ENGINE to play against the engine")
		return "stockfish"
	}
	return p
}
