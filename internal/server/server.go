// Package server exposes the HTTP control surface: text dispatch for
// clients that bypass the microphone, skill introspection, health probes,
// and the Swagger UI.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/nadzzz/nova/internal/skill"
)

// Dispatcher is the assistant surface the server drives.
type Dispatcher interface {
	// DispatchText resolves a pre-transcribed utterance, wake-gated when
	// gated is set.
	DispatchText(ctx context.Context, text string, gated bool) (string, skill.Outcome)

	// Skills lists registered skill names in match priority order.
	Skills() []string

	// Stop ends the assistant session.
	Stop()
}

// DispatchRequest is the POST /dispatch body.
type DispatchRequest struct {
	// Text is the pre-transcribed utterance.
	Text string `json:"text"`

	// Gated runs the wake gate before routing, matching the microphone path.
	Gated bool `json:"gated,omitempty"`
}

// DispatchResponse reports how an utterance was resolved.
type DispatchResponse struct {
	Command    string `json:"command"`
	Outcome    string `json:"outcome"`
	SessionEnd bool   `json:"session_end"`
}

// SkillsResponse lists registered skills in match priority order.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// Server is the HTTP control surface.
type Server struct {
	port       int
	dispatcher Dispatcher
	ready      atomic.Bool
	server     *http.Server
}

// New creates a control server on the given port.
func New(port int, dispatcher Dispatcher) *Server {
	return &Server{port: port, dispatcher: dispatcher}
}

// SetReady marks the daemon as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /dispatch", s.handleDispatch)
	mux.HandleFunc("GET /skills", s.handleSkills)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleHealth)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// ListenAndServe starts the control server. It blocks until the context is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("control server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("control server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("control server: %w", err)
	}
	return nil
}

// handleDispatch processes a POST /dispatch request.
//
// @Summary     Dispatch a text command
// @Description Routes a pre-transcribed utterance through the skill router and fallback
// @Description chain, exactly as if it had been heard on the microphone. Set "gated" to
// @Description apply the wake phrase gate first.
// @Tags        dispatch
// @Accept      json
// @Produce     json
// @Param       request  body      DispatchRequest  true  "Utterance to dispatch"
// @Success     200  {object}  DispatchResponse  "Dispatch result"
// @Failure     400  {string}  string  "Invalid request body"
// @Router      /dispatch [post]
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	cmd, outcome := s.dispatcher.DispatchText(r.Context(), req.Text, req.Gated)
	if outcome == skill.SessionEnd {
		// An exit spoken over HTTP ends the session like a spoken one.
		s.dispatcher.Stop()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(DispatchResponse{
		Command:    cmd,
		Outcome:    outcome.String(),
		SessionEnd: outcome == skill.SessionEnd,
	})
}

// handleSkills lists registered skills.
//
// @Summary     List skills
// @Description Returns registered skill names in match priority order.
// @Tags        dispatch
// @Produce     json
// @Success     200  {object}  SkillsResponse  "Registered skills"
// @Router      /skills [get]
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SkillsResponse{Skills: s.dispatcher.Skills()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
