// Package web provides the HTTP control and status surface for the
// production monitor: the operator actions the touch panel exposes
// (stop/run, counter reset, settings) plus status and metrics views.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/counters"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/monitor"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/stops"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sysmetrics"
)

// MetricsHistory exposes the rolling host metrics buffer.
type MetricsHistory interface {
	History() []sysmetrics.Sample
}

// Deps are the shared state containers the handlers operate on.
type Deps struct {
	Holder     *monitor.Holder
	Metrics    MetricsHistory
	Stops      *stops.Machine
	Counters   *counters.Store
	Config     *config.Store
	ConfigPath string
	Logger     *zap.Logger
}

// Server serves the operator API over HTTP.
type Server struct {
	httpServer *http.Server
	deps       Deps
}

// New creates a Server bound to addr.
func New(addr string, deps Deps) *Server {
	s := &Server{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/metrics/history", s.handleHistory)
	mux.HandleFunc("/api/stop", s.handleStop)
	mux.HandleFunc("/api/run", s.handleRun)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/api/settings", s.handleSettings)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	payload, ok := s.deps.Holder.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot assembled yet")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	hist := s.deps.Metrics.History()
	if hist == nil {
		hist = []sysmetrics.Sample{}
	}
	writeJSON(w, http.StatusOK, hist)
}

type stopRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req stopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validReason(req.Reason) {
		writeError(w, http.StatusBadRequest, "unknown stop reason")
		return
	}

	s.deps.Stops.Stop(req.Reason)
	writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.deps.Stops.Clear()
	writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.deps.Counters.Reset()
	good, reject := s.deps.Counters.Counts()
	writeJSON(w, http.StatusOK, map[string]uint64{"qtBon": good, "qtRejet": reject})
}

// validReason checks the reason against the configured list.
func (s *Server) validReason(reason string) bool {
	if reason == "" {
		return false
	}
	for _, known := range s.deps.Config.Snapshot().StopReasons {
		if reason == known {
			return true
		}
	}
	return false
}

func (s *Server) stateResponse() map[string]interface{} {
	st := s.deps.Stops.State()
	resp := map[string]interface{}{"stopped": st.Stopped}
	if st.Stopped {
		resp["reason"] = st.Reason
	}
	return resp
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
