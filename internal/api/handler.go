// Package api provides the HTTP surface of the security analysis service.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/analyzer"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/domain"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/store"
)

// SSLAnalyzer runs the SSL analysis pipeline for a hostname
type SSLAnalyzer interface {
	Analyze(ctx context.Context, hostname, userID string) (*analyzer.SSLReport, error)
}

// DNSAnalyzer runs the DNS analysis pipeline for a domain
type DNSAnalyzer interface {
	Analyze(ctx context.Context, domain, userID string) (*analyzer.DNSReport, error)
}

// ReadStore serves the dashboard read paths over persisted records
type ReadStore interface {
	Get(ctx context.Context, id string) (*store.AnalysisRecord, error)
	ListByUser(ctx context.Context, userID string) ([]store.AnalysisRecord, error)
}

// Handler manages API endpoints
type Handler struct {
	ssl     SSLAnalyzer
	dns     DNSAnalyzer
	records ReadStore
}

// healthResponse is the health check payload
type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// analyzeRequest is the body of both analysis endpoints. The DNS endpoint
// accepts either field name since dashboard callers send both shapes.
type analyzeRequest struct {
	Hostname string `json:"hostname,omitempty"`
	Domain   string `json:"domain,omitempty"`
	UserID   string `json:"user_id"`
}

// sslAnalyzeResponse wraps an SSL report in the success envelope
type sslAnalyzeResponse struct {
	Success bool `json:"success"`
	*analyzer.SSLReport
}

// dnsAnalyzeResponse wraps a DNS report in the success envelope
type dnsAnalyzeResponse struct {
	Success bool `json:"success"`
	*analyzer.DNSReport
}

// listResponse wraps the analyses listing
type listResponse struct {
	Success  bool                   `json:"success"`
	Analyses []store.AnalysisRecord `json:"analyses"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   "security-analyzer",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSSLAnalyze runs an SSL/TLS analysis for a hostname
func (h *Handler) handleSSLAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidRequestBody.Error(), "")
		return
	}

	if req.Hostname == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, ErrMissingFields.Error(), "")
		return
	}

	info, err := domain.Parse(req.Hostname)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	report, err := h.ssl.Analyze(r.Context(), info.Hostname, req.UserID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sslAnalyzeResponse{Success: true, SSLReport: report})
}

// handleDNSAnalyze runs a DNS security analysis for a domain
func (h *Handler) handleDNSAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidRequestBody.Error(), "")
		return
	}

	target := req.Domain
	if target == "" {
		target = req.Hostname
	}

	if target == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, ErrMissingFields.Error(), "")
		return
	}

	info, err := domain.Parse(target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	report, err := h.dns.Analyze(r.Context(), info.Hostname, req.UserID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dnsAnalyzeResponse{Success: true, DNSReport: report})
}

// handleListAnalyses lists persisted analyses for a user, newest first
func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, ErrUserIDRequired.Error(), "")
		return
	}

	records, err := h.records.ListByUser(r.Context(), userID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Analyses: records})
}

// handleGetAnalysis fetches one persisted analysis by id
func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.records.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}

		writeInternalError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, record)
}
