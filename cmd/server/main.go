// Package main starts the game server after configuring it from flags,
// environment variables, and the board file.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codewords-game/codewords/game/board"
)

const releaseVersion = "1.0.0"

func main() {
	f := &flags{}
	cobra.CheckErr(newCmd(f).Execute())
}

// runServer creates the server from the flags and board file and runs it
// until it is interrupted or terminated.
func runServer(ctx context.Context, f *flags, boardFile string) error {
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lmsgprefix
	log := log.New(os.Stdout, "", logFlags)
	boards, err := board.LoadBoardSet(boardFile)
	if err != nil {
		return fmt.Errorf("loading boards: %w", err)
	}
	log.Printf("loaded boards for languages %v", boards.Languages())
	s, err := f.serverConfig().NewServer(log, boards)
	if err != nil {
		return err
	}
	done := make(chan os.Signal, 2)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	errC := s.Run(ctx)
	select { // BLOCKING
	case err := <-errC:
		switch {
		case err == http.ErrServerClosed:
			log.Printf("server shutdown triggered")
		default:
			log.Printf("server stopped unexpectedly: %v", err)
		}
	case signal := <-done:
		log.Printf("handled signal: %v", signal)
	}
	if err := s.Stop(ctx); err != nil {
		return fmt.Errorf("stopping server: %v", err)
	}
	log.Println("server stopped successfully")
	return nil
}
