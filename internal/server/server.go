package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ogulcanaydogan/vitals-guardian/internal/metrics"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/monitor"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const defaultMaxBodySize = 64 * 1024

// Server exposes the patient directory and vital checks over HTTP.
type Server struct {
	store       storage.Storage
	monitor     *monitor.Monitor
	mux         *http.ServeMux
	maxBodySize int64
	logger      *slog.Logger
}

// NewServer creates an API server. A non-positive maxBodySize uses the default.
func NewServer(store storage.Storage, m *monitor.Monitor, maxBodySize int64, logger *slog.Logger) *Server {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	s := &Server{
		store:       store,
		monitor:     m,
		mux:         http.NewServeMux(),
		maxBodySize: maxBodySize,
		logger:      logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /healthz", s.handleHealth)
	s.handle("GET /api/v1/patients", s.handleListPatients)
	s.handle("GET /api/v1/patients/{id}", s.handleGetPatient)
	s.handle("POST /api/v1/patients/{id}/blood-pressure", s.handleBloodPressure)
	s.handle("POST /api/v1/patients/{id}/temperature", s.handleTemperature)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, instrument(pattern, h))
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// CheckResponse is returned by the vital check endpoints.
type CheckResponse struct {
	PatientID string      `json:"patient_id"`
	Vital     model.Vital `json:"vital"`
	Alert     bool        `json:"alert"`
}

type temperatureRequest struct {
	Temperature *decimal.Decimal `json:"temperature"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		s.logger.Error("list patients", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	writeJSON(w, http.StatusOK, patients)
}

func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patient, err := s.store.GetPatient(ctx, r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("get patient", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (s *Server) handleBloodPressure(w http.ResponseWriter, r *http.Request) {
	var reading model.BloodPressure
	if !s.decode(w, r, &reading) {
		return
	}
	if reading.Upper <= 0 || reading.Lower <= 0 {
		http.Error(w, "upper and lower must be positive", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	alerted, err := s.monitor.CheckBloodPressure(r.Context(), id, reading)
	s.respondCheck(w, id, model.VitalBloodPressure, alerted, err)
}

func (s *Server) handleTemperature(w http.ResponseWriter, r *http.Request) {
	var req temperatureRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Temperature == nil {
		http.Error(w, "missing temperature", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	alerted, err := s.monitor.CheckTemperature(r.Context(), id, *req.Temperature)
	s.respondCheck(w, id, model.VitalTemperature, alerted, err)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) respondCheck(w http.ResponseWriter, id string, vital model.Vital, alerted bool, err error) {
	metrics.RecordCheck(string(vital), alerted, err)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	case err != nil && alerted:
		// The deviation was detected but the notifier failed.
		metrics.NotifyFailuresTotal.Inc()
		s.logger.Error("deliver alert", "patient", id, "vital", vital, "error", err)
		http.Error(w, "alert delivery failed", http.StatusBadGateway)
		return
	case err != nil:
		s.logger.Error("check vital", "patient", id, "vital", vital, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, CheckResponse{PatientID: id, Vital: vital, Alert: alerted})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
