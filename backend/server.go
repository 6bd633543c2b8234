package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxRequestBytes = 1 << 20

var errMissingFields = errors.New("missing required fields: board and player")

type bestMoveRequest struct {
	Board      *[][]int         `json:"board"`
	Player     *int             `json:"player"`
	Heuristics *HeuristicConfig `json:"heuristics,omitempty"`
}

type bestMoveResponse struct {
	Move        rowCol   `json:"move"`
	Message     string   `json:"message"`
	Source      string   `json:"source"`
	Score       float64  `json:"score,omitempty"`
	ElapsedMs   float64  `json:"elapsed_ms"`
	Winning     bool     `json:"winning"`
	WinningLine []rowCol `json:"winning_line,omitempty"`
}

type configResponse struct {
	Config         Config             `json:"config"`
	HeuristicsHash string             `json:"heuristics_hash"`
	Patterns       map[string]float64 `json:"patterns"`
	BookEntries    int                `json:"book_entries"`
}

type configPayload struct {
	Heuristics *HeuristicConfig `json:"heuristics"`
}

func newRouter(advisor *Advisor, store *ConfigStore, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/best-move", func(w http.ResponseWriter, r *http.Request) {
		var payload bestMoveRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		resp, status, err := handleBestMove(advisor, payload)
		if err != nil {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentConfig(advisor, store))
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var payload configPayload
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Heuristics == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required field: heuristics"})
			return
		}
		cfg, err := advisor.UpdateHeuristics(*payload.Heuristics)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		hub.PublishConfig(cfg)
		writeJSON(w, http.StatusOK, currentConfig(advisor, store))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, advisor, w, r)
	})

	return r
}

// handleBestMove validates a request and returns the response with the HTTP
// status to use when err is not nil.
func handleBestMove(advisor *Advisor, payload bestMoveRequest) (bestMoveResponse, int, error) {
	if payload.Board == nil || payload.Player == nil {
		return bestMoveResponse{}, http.StatusBadRequest, errMissingFields
	}
	result, err := advisor.Advise(AdviceRequest{
		Board:      *payload.Board,
		Player:     *payload.Player,
		Heuristics: payload.Heuristics,
	})
	if err != nil {
		if isValidationError(err) {
			return bestMoveResponse{}, http.StatusBadRequest, err
		}
		return bestMoveResponse{}, http.StatusInternalServerError, err
	}
	resp := bestMoveResponse{
		Move:      rowCol(result.Move),
		Message:   "Success",
		Source:    string(result.Source),
		Score:     result.Score,
		ElapsedMs: result.ElapsedMs,
		Winning:   result.Winning,
	}
	for _, cell := range result.WinningLine {
		resp.WinningLine = append(resp.WinningLine, rowCol(cell))
	}
	return resp, http.StatusOK, nil
}

func isValidationError(err error) bool {
	for _, target := range []error{
		errMissingFields,
		ErrEmptyBoard,
		ErrRaggedBoard,
		ErrNotSquare,
		ErrInvalidCell,
		ErrInvalidPlayer,
		ErrBoardFull,
		ErrBoardTooLarge,
		ErrInvalidHeuristics,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func currentConfig(advisor *Advisor, store *ConfigStore) configResponse {
	engine := advisor.Engine()
	return configResponse{
		Config:         store.Get(),
		HeuristicsHash: fmt.Sprintf("0x%016x", advisor.HeuristicsHash()),
		Patterns:       engine.Weights().Table(),
		BookEntries:    engine.book.Len(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

const indexPage = `<html>
  <head><title>Gomoku API</title></head>
  <body>
    <h1>Gomoku API</h1>
    <p>Ask for the best move with <code>POST /api/best-move</code>:</p>
    <pre><code>{"board": [[0,0,0,0,0],[0,1,0,0,0],[0,0,2,0,0],[0,0,0,0,0],[0,0,0,0,0]], "player": 1}</code></pre>
    <p>The reply carries <code>"move": [row, col]</code>. Live suggestions stream on <code>/ws/</code>.</p>
  </body>
</html>
`
