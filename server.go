package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/dispatch"
	"aqusens.io/nora/asrslink/session"
)

// LinkHealth reports whether the serial link is up.
type LinkHealth interface {
	Healthy() bool
}

// SessionState exposes the running and the last finished sample session.
type SessionState interface {
	Active() (session.Snapshot, bool)
	Last() (session.Outcome, bool)
}

// Server serves read-only health and status endpoints
type Server struct {
	Logger   *zap.Logger
	Link     LinkHealth
	Sessions SessionState
	Status   *dispatch.StatusCache
	Metrics  http.Handler
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}
	mux.ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.Logger != nil {
		s.Logger.Debug("Failed to write response", zap.Error(err))
	}
}

// handleHealth answers 200 while the serial link is up, 503 otherwise
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	type HealthResponse struct {
		Serial string `json:"serial"`
	}
	if s.Link == nil || !s.Link.Healthy() {
		s.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Serial: "down"})
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{Serial: "up"})
}

// handleStatus reports the session runner and the cached interval status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	type LastSession struct {
		ID        string  `json:"id"`
		State     string  `json:"state"`
		FailedIn  string  `json:"failed_in,omitempty"`
		Directory string  `json:"directory"`
		Readings  int     `json:"readings"`
		Elapsed   string  `json:"elapsed"`
		Error     string  `json:"error,omitempty"`
		MinTemp   float64 `json:"min_temp_c,omitempty"`
		MaxTemp   float64 `json:"max_temp_c,omitempty"`
		AvgTemp   float64 `json:"avg_temp_c,omitempty"`
	}
	type StatusResponse struct {
		Serial   string                   `json:"serial"`
		Active   *session.Snapshot        `json:"active_session,omitempty"`
		Last     *LastSession             `json:"last_session,omitempty"`
		Interval *dispatch.IntervalStatus `json:"interval_sampling,omitempty"`
	}

	resp := StatusResponse{Serial: "down"}
	if s.Link != nil && s.Link.Healthy() {
		resp.Serial = "up"
	}

	if s.Sessions != nil {
		if snap, ok := s.Sessions.Active(); ok {
			resp.Active = &snap
		}
		if out, ok := s.Sessions.Last(); ok {
			last := &LastSession{
				ID:        out.ID,
				State:     out.State.String(),
				Directory: out.Directory,
				Readings:  len(out.Readings),
				Elapsed:   out.Elapsed.String(),
			}
			if out.Err != nil {
				last.FailedIn = out.FailedIn.String()
				last.Error = out.Err.Error()
			}
			if out.Summary != nil {
				last.MinTemp = out.Summary.Min
				last.MaxTemp = out.Summary.Max
				last.AvgTemp = out.Summary.Mean
			}
			resp.Last = last
		}
	}

	if s.Status != nil {
		if st := s.Status.Load(); st.Known {
			resp.Interval = &st
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
