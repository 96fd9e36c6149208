package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/app"
	"github.com/healthsense/healthsense/internal/report"
	"github.com/healthsense/healthsense/internal/timeseries"
	"github.com/healthsense/healthsense/internal/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVitals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.VitalsForDisplay())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.ExtraMetricsForDisplay())
}

func (s *Server) handleSetMetrics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Metrics []string `json:"metrics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.controller.SetExtraMetrics(r.Context(), req.Metrics); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.ExtraMetrics())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Catalog())
}

func (s *Server) handleCreateReading(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Metric string `json:"metric"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.controller.RecordMetric(r.Context(), req.Metric, req.Value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	metric := mux.Vars(r)["metric"]

	window := timeseries.WeeklyWindow
	if v := r.URL.Query().Get("window"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || (parsed != timeseries.WeeklyWindow && parsed != timeseries.MonthlyWindow) {
			http.Error(w, "window must be 7 or 30", http.StatusBadRequest)
			return
		}
		window = parsed
	}

	writeJSON(w, http.StatusOK, s.controller.MetricHistory(metric, window))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := s.controller.Alerts()
	if alerts == nil {
		alerts = []types.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var err error
	if s.controller.State() == app.StateReady {
		err = s.controller.UpdateProfile(r.Context(), p)
	} else {
		err = s.controller.CompleteOnboarding(r.Context(), p)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Profile())
}

// summaryResponse is the non-streaming shape of the summary endpoint
type summaryResponse struct {
	Summary  string        `json:"summary"`
	Critical bool          `json:"critical"`
	Alerts   []types.Alert `json:"alerts"`
	Fallback bool          `json:"fallback"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	line := s.controller.MetricsLine()
	if line == "" {
		writeJSON(w, http.StatusOK, summaryResponse{
			Summary:  ai.FallbackNoData,
			Alerts:   []types.Alert{},
			Fallback: true,
		})
		return
	}
	if s.ai == nil {
		writeJSON(w, http.StatusOK, summaryResponse{
			Summary:  ai.FallbackGeneric,
			Alerts:   []types.Alert{},
			Fallback: true,
		})
		return
	}

	result, err := s.ai.StreamSummary(r.Context(), line, nil)
	if err != nil {
		writeJSON(w, http.StatusOK, summaryResponse{
			Summary:  ai.FallbackMessage(err),
			Alerts:   []types.Alert{},
			Fallback: true,
		})
		return
	}

	if _, err := s.controller.AddAlerts(r.Context(), result.Alerts); err != nil {
		http.Error(w, "failed to persist alerts", http.StatusInternalServerError)
		return
	}

	alerts := s.controller.Alerts()
	if alerts == nil {
		alerts = []types.Alert{}
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:  result.Summary,
		Critical: result.Critical,
		Alerts:   alerts,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	doc := report.Build(r.Context(), s.interpreter(), s.controller.ReportInput())

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, doc)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.renderer.Render(doc, w); err != nil {
		http.Error(w, "failed to render report", http.StatusInternalServerError)
	}
}

// interpreter adapts the optional AI client into the report builder's
// dependency; nil keeps report generation fully offline.
func (s *Server) interpreter() report.Interpreter {
	if s.ai == nil {
		return nil
	}
	return s.ai
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
