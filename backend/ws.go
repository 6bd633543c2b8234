package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

type wsError struct {
	Error string `json:"error"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// serveWS registers an analysis client. Clients receive every suggestion and
// config change and may ask for moves with "request_move".
func serveWS(hub *Hub, advisor *Advisor, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			client.leave()
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(wsError{Error: "invalid message"})})
			continue
		}
		switch msg.Type {
		case "request_move":
			var req bestMoveRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(wsError{Error: "invalid payload"})})
				continue
			}
			resp, _, err := handleBestMove(advisor, req)
			if err != nil {
				client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(wsError{Error: err.Error()})})
				continue
			}
			client.sendJSON(wsMessage{Type: "move", Payload: mustMarshal(resp)})
		case "ping":
			client.sendJSON(wsMessage{Type: "pong"})
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
