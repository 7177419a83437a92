package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/game"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

const maxDepth = 6

type Options struct {
	Engine       engine.Config
	Opponent     opponent.Kind
	Seed         int64
	PingInterval time.Duration
}

// Server hosts human-vs-computer sessions over HTTP and streams their
// status over websockets.
type Server struct {
	opts         Options
	sessions     *sessions
	pingInterval time.Duration
	log          *zap.Logger
}

func New(opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Opponent == "" {
		opts.Opponent = opponent.KindMinimax
	}
	ping := opts.PingInterval
	if ping <= 0 {
		ping = 30 * time.Second
	}
	return &Server{
		opts:         opts,
		sessions:     newSessions(),
		pingInterval: ping,
		log:          logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.createGame)
		r.Get("/{id}", s.getGame)
		r.Delete("/{id}", s.deleteGame)
		r.Post("/{id}/moves", s.playMove)
	})
	r.Post("/api/analyze", s.analyze)
	r.Get("/ws/games/{id}", s.serveWS)
	return r
}

// Close ends every session and disconnects its watchers.
func (s *Server) Close() {
	s.sessions.closeAll()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type statusResponse struct {
	ID string `json:"id"`
	game.State
}

func newStatusResponse(sess *session) statusResponse {
	return statusResponse{ID: sess.id.String(), State: sess.controller.State()}
}

type createGameRequest struct {
	Opponent string `json:"opponent"`
	Depth    int    `json:"depth"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var payload createGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
	}

	kind := s.opts.Opponent
	if payload.Opponent != "" {
		parsed, err := opponent.ParseKind(payload.Opponent)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}
	cfg := s.opts.Engine
	if payload.Depth != 0 {
		if payload.Depth < 1 || payload.Depth > maxDepth {
			writeError(w, http.StatusBadRequest, "depth out of range")
			return
		}
		cfg.Depth = payload.Depth
	}

	logger := s.log.Named("game")
	computer, err := opponent.New(kind, cfg, s.opts.Seed, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := s.sessions.add(game.NewController(game.New(computer, cfg, logger)))
	s.log.Info("session created", zap.Stringer("id", sess.id), zap.String("opponent", string(kind)), zap.Int("depth", cfg.Depth))
	writeJSON(w, http.StatusCreated, newStatusResponse(sess))
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(sess))
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	sess, ok := s.sessions.remove(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	sess.hub.Close()
	s.log.Info("session closed", zap.Stringer("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) playMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var move board.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	state, err := sess.controller.Play(move)
	if len(state.History) > 0 {
		sess.hub.Broadcast(wsMessage{Type: "status", Payload: mustMarshal(statusResponse{ID: sess.id.String(), State: state})})
	}
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{ID: sess.id.String(), State: state})
}

type analyzeRequest struct {
	Cells    [board.Height][board.Width]board.Cell `json:"cells"`
	LastMove *board.Move                           `json:"lastMove"`
	Depth    int                                   `json:"depth"`
}

type analyzeResponse struct {
	WinningMove  *board.Move        `json:"winningMove,omitempty"`
	BlockingMove *board.Move        `json:"blockingMove,omitempty"`
	BestMove     *board.Move        `json:"bestMove,omitempty"`
	Score        int                `json:"score"`
	Stats        engine.SearchStats `json:"stats"`
}

// analyze runs the computer's decision procedures on a posted position
// without creating a session.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var payload analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	for row := range payload.Cells {
		for _, cell := range payload.Cells[row] {
			if cell < board.CellEmpty || cell > board.CellComputer {
				writeError(w, http.StatusBadRequest, "invalid cell value")
				return
			}
		}
	}
	cfg := s.opts.Engine
	if payload.Depth != 0 {
		if payload.Depth < 1 || payload.Depth > maxDepth {
			writeError(w, http.StatusBadRequest, "depth out of range")
			return
		}
		cfg.Depth = payload.Depth
	}

	var last board.Move
	hasLast := payload.LastMove != nil
	if hasLast {
		last = *payload.LastMove
		if !last.IsValid() {
			writeError(w, http.StatusBadRequest, "last move out of bounds")
			return
		}
	}
	grid := board.FromCells(payload.Cells, last, hasLast)
	eng := engine.New(grid, cfg, s.log.Named("engine"))

	var resp analyzeResponse
	if move, ok := eng.FindWinningMove(board.Computer); ok {
		resp.WinningMove = &move
	}
	if move, ok := eng.FindBlockingMove(board.Human); ok {
		resp.BlockingMove = &move
	}
	res := eng.Search(cfg.Depth)
	if res.Found {
		resp.BestMove = &res.Move
	}
	resp.Score = res.Score
	if !res.Found {
		resp.Score = eng.Evaluate()
	}
	resp.Stats = res.Stats
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return nil, false
	}
	sess, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	return sess, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrOutOfBounds), errors.Is(err, game.ErrOccupied):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotHumanTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
