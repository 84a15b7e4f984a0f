// Command chessmind-server serves best-move requests and streams analysis
// progress over WebSocket.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hexaflip/chessmind/internal/book"
	"github.com/hexaflip/chessmind/internal/engine"
	"github.com/hexaflip/chessmind/internal/server"
	"github.com/hexaflip/chessmind/internal/storage"
)

func main() {
	var (
		addr     = flag.String("addr", ":8765", "listen address")
		ttSizeMB = flag.Int("hash", 64, "transposition table size in MB")
		noStore  = flag.Bool("no-store", false, "skip loading stored preferences")
	)
	flag.Parse()

	selector := engine.NewSelector(*ttSizeMB)
	selector.SetBook(book.Builtin())

	if !*noStore {
		if store, err := storage.OpenDefault(); err != nil {
			log.Printf("storage unavailable: %v", err)
		} else {
			if prefs, err := store.LoadPreferences(); err == nil {
				selector.SetWeights(prefs.Weights)
			}
			store.Close()
		}
	}

	srv := server.New(selector)
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	srv.Hub().Close()
}
