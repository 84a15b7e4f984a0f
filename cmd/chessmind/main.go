// Command chessmind answers "best move for this position" on the command
// line, using the local search engine or an optional remote backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hexaflip/chessmind/internal/backend"
	"github.com/hexaflip/chessmind/internal/board"
	"github.com/hexaflip/chessmind/internal/book"
	"github.com/hexaflip/chessmind/internal/engine"
	"github.com/hexaflip/chessmind/internal/storage"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	var (
		fen        = flag.String("fen", startFEN, "position to search, as FEN")
		depth      = flag.Int("depth", 0, "search depth (0 = stored preference)")
		mode       = flag.String("mode", "", "game mode: standard, rotating or random")
		randomize  = flag.Bool("randomize", true, "randomize among near-optimal moves (default: stored preference)")
		history    = flag.String("history", "", "space-separated moves so far, for the opening book")
		batches    = flag.Int("batches", 1, "root-move batches searched in parallel")
		backendURL = flag.String("backend", "", "remote best-move service URL (skips the local search)")
		ttSizeMB   = flag.Int("hash", 64, "transposition table size in MB")
		noStore    = flag.Bool("no-store", false, "skip loading/recording preferences and statistics")
	)
	flag.Parse()

	b, side, last, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parse position: %v", err)
	}

	var store *storage.Storage
	prefs := storage.DefaultPreferences()
	if !*noStore {
		store, err = storage.OpenDefault()
		if err != nil {
			log.Printf("storage unavailable: %v", err)
		} else {
			defer store.Close()
			if loaded, err := store.LoadPreferences(); err == nil {
				prefs = loaded
			}
		}
	}
	if *depth > 0 {
		prefs.SearchDepth = *depth
	}
	if *mode != "" {
		prefs.Mode = *mode
	}
	// The stored preference holds unless -randomize was given explicitly.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "randomize" {
			prefs.Randomize = *randomize
		}
	})

	if *backendURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		move, err := backend.New(*backendURL).BestMove(ctx, *fen, prefs.SearchDepth)
		if err != nil {
			log.Fatalf("remote backend: %v", err)
		}
		fmt.Println(move)
		return
	}

	selector := engine.NewSelector(*ttSizeMB)
	selector.SetWeights(prefs.Weights)
	selector.SetBook(book.Builtin())

	params := engine.Params{Mode: engine.ParseGameMode(prefs.Mode)}

	var moves []string
	if *history != "" {
		moves = strings.Fields(*history)
	}

	start := time.Now()
	var move board.Move
	var ok bool
	if *batches > 1 {
		move, ok = selector.FindBestMoveParallel(b, side, last, prefs.SearchDepth, params, prefs.Randomize, moves, *batches)
	} else {
		move, ok = selector.FindBestMove(b, side, last, prefs.SearchDepth, params, prefs.Randomize, moves)
	}
	elapsed := time.Since(start)

	if !ok {
		fmt.Println("(none)")
		return
	}

	log.Printf("depth=%d nodes=%d time=%s", prefs.SearchDepth, selector.Nodes(), elapsed)
	fmt.Println(move)

	if store != nil {
		if err := store.RecordSearch(selector.Nodes(), elapsed, false); err != nil {
			log.Printf("record search: %v", err)
		}
	}
}
