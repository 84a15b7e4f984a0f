// Package server exposes the move selector over HTTP: a best-move
// request/response endpoint, a static evaluation endpoint, and a WebSocket
// stream of per-root-move analysis progress. The game UI and peer-to-peer
// layers live elsewhere and consume this surface.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hexaflip/chessmind/internal/board"
	"github.com/hexaflip/chessmind/internal/engine"
)

// Server wires the selector to the HTTP surface. Searches are serialized:
// the selector's session transposition table is single-search state.
type Server struct {
	mu       sync.Mutex
	selector *engine.Selector
	hub      *Hub
	router   chi.Router
}

// New creates a server around the given selector.
func New(selector *engine.Selector) *Server {
	s := &Server{
		selector: selector,
		hub:      NewHub(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/bestmove", s.handleBestMove)
	r.Get("/api/evaluate", s.handleEvaluate)
	r.Post("/api/newgame", s.handleNewGame)
	r.Get("/ws/analysis", s.hub.HandleWS)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the analysis hub for lifecycle management.
func (s *Server) Hub() *Hub {
	return s.hub
}

type bestMoveRequest struct {
	FEN       string    `json:"fen"`
	Depth     int       `json:"depth"`
	Mode      string    `json:"mode"`
	Randomize bool      `json:"randomize"`
	History   []string  `json:"history"`
	Scores    []float64 `json:"scores,omitempty"`
	Target    float64   `json:"target,omitempty"`
	Acting    int       `json:"acting,omitempty"`
	Batches   int       `json:"batches,omitempty"`
}

type bestMoveResponse struct {
	Move     string `json:"move"`
	GameOver bool   `json:"game_over"`
}

type evaluateResponse struct {
	Score float64 `json:"score"`
}

// AnalysisEvent is one per-root-move progress report streamed to analysis
// observers.
type AnalysisEvent struct {
	Event string  `json:"event"`
	Move  string  `json:"move"`
	Score float64 `json:"score"`
}

func (req *bestMoveRequest) params() (engine.Params, error) {
	params := engine.Params{Mode: engine.ParseGameMode(req.Mode)}
	if req.Target > 0 && len(req.Scores) > 0 {
		if req.Acting < 0 || req.Acting >= len(req.Scores) {
			return engine.Params{}, fmt.Errorf("acting player %d out of range for %d scores", req.Acting, len(req.Scores))
		}
		params.Points = &engine.PointsState{
			Scores: req.Scores,
			Target: req.Target,
			Acting: req.Acting,
		}
	}
	return params, nil
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Depth < 1 {
		req.Depth = 3
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, side, last, err := board.ParseFEN(req.FEN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selector.OnRootMove = func(rm engine.RootMove) {
		s.hub.Broadcast(AnalysisEvent{Event: "root_move", Move: rm.Move.String(), Score: rm.Score})
	}
	defer func() { s.selector.OnRootMove = nil }()

	var move board.Move
	var ok bool
	if req.Batches > 1 {
		move, ok = s.selector.FindBestMoveParallel(b, side, last, req.Depth, params, req.Randomize, req.History, req.Batches)
	} else {
		move, ok = s.selector.FindBestMove(b, side, last, req.Depth, params, req.Randomize, req.History)
	}

	resp := bestMoveResponse{GameOver: !ok}
	if ok {
		resp.Move = move.String()
	}
	writeJSON(w, resp)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		http.Error(w, "missing fen", http.StatusBadRequest)
		return
	}

	b, side, _, err := board.ParseFEN(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := engine.Params{Mode: engine.ParseGameMode(r.URL.Query().Get("mode"))}

	s.mu.Lock()
	score := engine.Evaluate(&b, side, params, s.selector.Weights())
	s.mu.Unlock()

	writeJSON(w, evaluateResponse{Score: score})
}

func (s *Server) handleNewGame(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.selector.NewGame()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
