package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

type statusBody struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	ToMove   int               `json:"toMove"`
	Opponent string            `json:"opponent"`
	History  []json.RawMessage `json:"history"`
}

func newTestServer(t *testing.T, ping time.Duration) (*Server, *httptest.Server) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Depth = 2
	srv := New(Options{Engine: cfg, Opponent: opponent.KindCasual, Seed: 7, PingInterval: ping}, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func createGame(t *testing.T, baseURL string, body any) statusBody {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, baseURL+"/api/games", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	var status statusBody
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return status
}

func TestPing(t *testing.T) {
	_, ts := newTestServer(t, time.Second)
	resp, data := doJSON(t, http.MethodGet, ts.URL+"/api/ping", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"ok":true`) {
		t.Fatalf("expected ok ping, got %d %s", resp.StatusCode, data)
	}
}

func TestCreateGetAndDeleteGame(t *testing.T) {
	srv, ts := newTestServer(t, time.Second)
	status := createGame(t, ts.URL, nil)
	if _, err := uuid.Parse(status.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", status.ID)
	}
	if status.Status != "running" || status.ToMove != int(board.Human) || status.Opponent != "casual" {
		t.Fatalf("expected fresh running casual game, got %+v", status)
	}

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/games/"+status.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/games/"+status.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/games/"+status.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
	if srv.sessions.len() != 0 {
		t.Fatalf("expected no sessions left, got %d", srv.sessions.len())
	}
}

func TestCreateGameValidation(t *testing.T) {
	_, ts := newTestServer(t, time.Second)
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/games", map[string]any{"opponent": "oracle"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown opponent, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/games", map[string]any{"depth": 99})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for deep search, got %d", resp.StatusCode)
	}
	status := createGame(t, ts.URL, map[string]any{"opponent": "minimax", "depth": 1})
	if status.Opponent != "minimax" {
		t.Fatalf("expected minimax opponent, got %s", status.Opponent)
	}
}

func TestLookupErrors(t *testing.T) {
	_, ts := newTestServer(t, time.Second)
	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/games/not-a-uuid", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/games/"+uuid.NewString(), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestPlayMove(t *testing.T) {
	_, ts := newTestServer(t, time.Second)
	status := createGame(t, ts.URL, nil)
	url := ts.URL + "/api/games/" + status.ID + "/moves"

	resp, data := doJSON(t, http.MethodPost, url, board.Move{Row: 7, Col: 7})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	var after statusBody
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(after.History) != 2 {
		t.Fatalf("expected human move and reply, got %d entries", len(after.History))
	}

	resp, _ = doJSON(t, http.MethodPost, url, board.Move{Row: 7, Col: 7})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for occupied cell, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, url, board.Move{Row: 20, Col: 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of bounds, got %d", resp.StatusCode)
	}
}

func TestAnalyze(t *testing.T) {
	_, ts := newTestServer(t, time.Second)
	var cells [board.Height][board.Width]board.Cell
	for col := 0; col < 4; col++ {
		cells[0][col] = board.CellComputer
	}
	cells[5][5] = board.CellHuman
	last := board.Move{Row: 5, Col: 5}

	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/analyze", map[string]any{
		"cells":    cells,
		"lastMove": last,
		"depth":    1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	var out analyzeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.WinningMove == nil || *out.WinningMove != (board.Move{Row: 0, Col: 4}) {
		t.Fatalf("expected winning move (0,4), got %v", out.WinningMove)
	}
	if out.BestMove == nil || out.Stats.Nodes == 0 {
		t.Fatalf("expected a searched best move, got %+v", out)
	}

	resp, data = doJSON(t, http.MethodPost, ts.URL+"/api/analyze", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for empty position, got %d", resp.StatusCode)
	}
	out = analyzeResponse{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.BestMove != nil || out.Score != 0 {
		t.Fatalf("expected nothing to search on an empty position, got %+v", out)
	}

	cells[1][1] = 7
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/analyze", map[string]any{"cells": cells})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid cell, got %d", resp.StatusCode)
	}
}

func dialGame(t *testing.T, ts *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/" + id
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ws message: %v", err)
	}
	return msg
}

func TestWebsocketStreamsStatus(t *testing.T) {
	_, ts := newTestServer(t, time.Minute)
	status := createGame(t, ts.URL, nil)
	conn := dialGame(t, ts, status.ID)

	first := readMessage(t, conn)
	if first.Type != "status" {
		t.Fatalf("expected initial status, got %s", first.Type)
	}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/games/"+status.ID+"/moves", board.Move{Row: 3, Col: 3})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected move to succeed, got %d", resp.StatusCode)
	}
	update := readMessage(t, conn)
	var body statusBody
	if err := json.Unmarshal(update.Payload, &body); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if update.Type != "status" || len(body.History) != 2 {
		t.Fatalf("expected status with two moves, got %s with %d", update.Type, len(body.History))
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_status"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if again := readMessage(t, conn); again.Type != "status" {
		t.Fatalf("expected requested status, got %s", again.Type)
	}
}

func TestWebsocketHeartbeatPing(t *testing.T) {
	_, ts := newTestServer(t, 20*time.Millisecond)
	status := createGame(t, ts.URL, nil)
	conn := dialGame(t, ts, status.ID)
	readMessage(t, conn)
	if msg := readMessage(t, conn); msg.Type != "ping" {
		t.Fatalf("expected idle ping, got %s", msg.Type)
	}
}

func TestWebsocketClosedWhenGameDeleted(t *testing.T) {
	_, ts := newTestServer(t, time.Minute)
	status := createGame(t, ts.URL, nil)
	conn := dialGame(t, ts, status.ID)
	readMessage(t, conn)
	resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/api/games/"+status.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected socket to close after delete")
	}
}
