package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestBestMove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bestmove" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fen"); got != testFEN {
			t.Errorf("fen = %q, want %q", got, testFEN)
		}
		if got := r.URL.Query().Get("depth"); got != "4" {
			t.Errorf("depth = %q, want 4", got)
		}
		w.Write([]byte(`{"move":"e2e4","score":0.3}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	move, err := c.BestMove(context.Background(), testFEN, 4)
	if err != nil {
		t.Fatal(err)
	}
	if move != "e2e4" {
		t.Errorf("move = %q, want e2e4", move)
	}
}

func TestBestMoveErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).BestMove(context.Background(), testFEN, 3); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestBestMoveMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).BestMove(context.Background(), testFEN, 3); err == nil {
		t.Error("expected a decode error")
	}
}

func TestBestMoveEmptyMove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"move":"","score":0}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).BestMove(context.Background(), testFEN, 3); err == nil {
		t.Error("expected an error when the service returns no move")
	}
}

func TestBestMoveContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(srv.URL).BestMove(ctx, testFEN, 3); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
