// Package channel exposes the shell engine over HTTP as a browser
// terminal with a small JSON API.
package channel

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shellmate/internal/domain"
	"shellmate/internal/infra/middleware"
	"shellmate/internal/usecase/shell"
	"shellmate/internal/usecase/translate"
)

//go:embed terminal.html
var terminalPage []byte

const sessionCookie = "shellmate_session"

// historyShown caps the history entries returned by the history endpoint.
const historyShown = 50

// HistoryStore persists executed command lines across restarts.
type HistoryStore interface {
	Append(ctx context.Context, sessionKey, line string) error
	Tail(ctx context.Context, sessionKey string, n int) ([]string, error)
}

// Server is the web terminal HTTP channel.
type Server struct {
	engine     *shell.Engine
	translator *translate.Translator
	sessions   *shell.Manager
	store      HistoryStore
	logger     *slog.Logger
	addr       string

	requestsPerMin int
	burstSize      int

	server *http.Server

	// Actual bound address (set after Start)
	boundAddr string

	ctx    context.Context
	cancel context.CancelFunc
}

// Options configures a Server.
type Options struct {
	Addr           string
	RequestsPerMin int
	BurstSize      int
	Store          HistoryStore // nil disables persistence
}

// NewServer creates a web terminal server.
func NewServer(engine *shell.Engine, translator *translate.Translator, sessions *shell.Manager, opts Options, logger *slog.Logger) *Server {
	return &Server{
		engine:         engine,
		translator:     translator,
		sessions:       sessions,
		store:          opts.Store,
		logger:         logger,
		addr:           opts.Addr,
		requestsPerMin: opts.RequestsPerMin,
		burstSize:      opts.BurstSize,
	}
}

type executeRequest struct {
	Command   string `json:"command"`
	Interpret bool   `json:"interpret,omitempty"`
}

type executeResponse struct {
	Output      string `json:"output"`
	ExitCode    int    `json:"exit_code"`
	Prompt      string `json:"prompt,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Exit        bool   `json:"exit,omitempty"`
	Error       string `json:"error,omitempty"`
}

type completeRequest struct {
	Text      string `json:"text"`
	Line      string `json:"line"`
	Interpret bool   `json:"interpret,omitempty"`
}

type completeResponse struct {
	Suggestions []string `json:"suggestions"`
}

type historyResponse struct {
	History []string `json:"history"`
}

// Start begins the HTTP server. Non-blocking (serves in a goroutine).
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/v1/execute", s.handleExecute)
	mux.HandleFunc("/api/v1/complete", s.handleComplete)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/health", s.handleHealth)

	handler := middleware.SecurityHeaders(
		middleware.RequestLog(s.logger)(
			middleware.RateLimit(s.ctx, s.requestsPerMin, s.burstSize)(mux),
		),
	)

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.boundAddr = ln.Addr().String()

	go func() {
		s.logger.Info("web terminal started", "addr", s.boundAddr)
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the bound listen address after Start.
func (s *Server) Addr() string { return s.boundAddr }

// session resolves the browser session from a cookie, minting a new
// session key when none is present.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *shell.Session {
	key := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		key = c.Value
	}
	if key == "" {
		key = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}

	sess, created := s.sessions.GetOrCreate(key)
	if created && s.store != nil {
		if lines, err := s.store.Tail(r.Context(), key, historyShown); err == nil {
			sess.SeedHistory(lines)
		} else {
			s.logger.Warn("load session history", "session", key, "error", err)
		}
	}
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(terminalPage)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	sess := s.session(w, r)

	line := req.Command
	resp := executeResponse{}

	if req.Interpret {
		outcome := s.translator.Interpret(r.Context(), line)
		line = outcome.CommandLine
		resp.Explanation = outcome.Explanation
	}

	result := s.engine.Execute(r.Context(), sess, line)

	if result.IsExit() {
		s.sessions.Delete(sess.ExternalKey)
		resp.Output = "Terminal session ended."
		resp.ExitCode = domain.ExitOK
		resp.Exit = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if s.store != nil && line != "" {
		if err := s.store.Append(r.Context(), sess.ExternalKey, line); err != nil {
			s.logger.Warn("persist history", "session", sess.ExternalKey, "error", err)
		}
	}

	resp.Output = result.Output
	resp.ExitCode = result.ExitCode
	resp.Prompt = sess.Prompt()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var suggestions []string
	if req.Interpret {
		suggestions = s.translator.Suggest(req.Text)
	} else {
		sess := s.session(w, r)
		suggestions = s.engine.Complete(sess, req.Text, req.Line)
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, completeResponse{Suggestions: suggestions})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := s.session(w, r)
	hist := sess.HistoryTail(historyShown)
	if hist == nil {
		hist = []string{}
	}
	writeJSON(w, http.StatusOK, historyResponse{History: hist})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
