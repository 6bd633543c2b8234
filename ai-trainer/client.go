package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// statusError is a non-200 reply from the backend.
type statusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.Path, e.Code, e.Body)
}

type bestMoveRequest struct {
	Board      [][]int          `json:"board"`
	Player     int              `json:"player"`
	Heuristics *heuristicConfig `json:"heuristics,omitempty"`
}

type bestMoveResponse struct {
	Move    [2]int `json:"move"`
	Source  string `json:"source"`
	Winning bool   `json:"winning"`
}

type backendConfigResponse struct {
	Config struct {
		Heuristics heuristicConfig `json:"heuristics"`
	} `json:"config"`
	HeuristicsHash string `json:"heuristics_hash"`
}

func (t *trainer) requestMove(board [][]int, player int, heuristics heuristicConfig) (bestMoveResponse, error) {
	var resp bestMoveResponse
	err := t.postJSON("/api/best-move", bestMoveRequest{Board: board, Player: player, Heuristics: &heuristics}, &resp)
	return resp, err
}

func (t *trainer) fetchBackendHeuristics() (heuristicConfig, error) {
	var payload backendConfigResponse
	if err := t.getJSON("/api/config", &payload); err != nil {
		return heuristicConfig{}, err
	}
	return payload.Config.Heuristics, nil
}

func (t *trainer) publishHeuristics(heuristics heuristicConfig) error {
	var payload backendConfigResponse
	if err := t.postJSON("/api/config", map[string]any{"heuristics": heuristics}, &payload); err != nil {
		return err
	}
	t.logf("Published champion to backend (hash %s)", payload.HeuristicsHash)
	return nil
}

func (t *trainer) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := t.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, 1*time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timeout after 60s")
}

func (t *trainer) ping() error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health status %d", resp.StatusCode)
	}
	return nil
}

func (t *trainer) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode, Body: string(body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *trainer) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{Method: http.MethodPost, Path: path, Code: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
