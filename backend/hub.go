package main

import (
	"encoding/json"
	"sync"
)

// Hub fans suggestion and config events out to websocket clients.
type Hub struct {
	mu                  sync.Mutex
	clients             map[*Client]struct{}
	broadcastSuggestion chan suggestionPayload
	broadcastConfig     chan Config
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type suggestionPayload struct {
	BoardSize int     `json:"board_size"`
	Player    int     `json:"player"`
	Stones    int     `json:"stones"`
	Board     [][]int `json:"board"`
	Move      rowCol  `json:"move"`
	Source    string  `json:"source"`
	Score     float64 `json:"score,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Winning   bool    `json:"winning"`
}

// suggestionPayloadFrom describes a served move together with the position it
// was computed for.
func suggestionPayloadFrom(result AdviceResult, board Board) suggestionPayload {
	return suggestionPayload{
		BoardSize: result.BoardSize,
		Player:    int(result.Player),
		Stones:    board.StoneCount(),
		Board:     board.Rows(),
		Move:      rowCol(result.Move),
		Source:    string(result.Source),
		Score:     result.Score,
		ElapsedMs: result.ElapsedMs,
		Winning:   result.Winning,
	}
}

func NewHub() *Hub {
	return &Hub{
		clients:             make(map[*Client]struct{}),
		broadcastSuggestion: make(chan suggestionPayload, 32),
		broadcastConfig:     make(chan Config, 8),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastSuggestion:
			h.broadcast(wsMessage{Type: "suggestion", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastConfig:
			h.broadcast(wsMessage{Type: "config", Payload: mustMarshal(payload)})
		}
	}
}

func (h *Hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

// PublishSuggestion drops the event when the queue is full.
func (h *Hub) PublishSuggestion(payload suggestionPayload) {
	select {
	case h.broadcastSuggestion <- payload:
	default:
	}
}

func (h *Hub) PublishConfig(cfg Config) {
	select {
	case h.broadcastConfig <- cfg:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// leave detaches the client from its hub and closes its send queue.
func (c *Client) leave() {
	c.hub.Unregister(c)
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
