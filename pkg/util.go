package pkg

import (
	"log"
	"os"

	"github.com/notnil/chess"
)

func GameFromFEN(gamefen string) *chess.Game {
	fen, err := chess.FEN(gamefen)
	if err != nil {
		log.Panic(err)
	}
	return chess.NewGame(fen)
}

func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
