package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/benedict-anokye-davies/glance/internal/analyzer"
	"github.com/benedict-anokye-davies/glance/internal/contextbuilder"
	"github.com/benedict-anokye-davies/glance/internal/reporter"
	"github.com/benedict-anokye-davies/glance/pkg/utils"
)

// Handler serves the local status API consumed by the conversational
// agent and any UI. The reporter may be nil when persistence is off.
type Handler struct {
	analyzer *analyzer.Analyzer
	builder  *contextbuilder.Builder
	reporter *reporter.Reporter
	started  time.Time
}

func NewHandler(a *analyzer.Analyzer, b *contextbuilder.Builder, r *reporter.Reporter) *Handler {
	return &Handler{
		analyzer: a,
		builder:  b,
		reporter: r,
		started:  time.Now(),
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/context", h.handleContext)
	mux.HandleFunc("/api/context/query", h.handleContextQuery)
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/status", h.handleStatus)

	mux.HandleFunc("/health", h.handleHealth)
}

// handleContext returns the full current conversation context.
func (h *Handler) handleContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := h.builder.Current()
	if ctx == nil {
		writeJSON(w, map[string]string{"summary": "no context available"})
		return
	}
	writeJSON(w, ctx)
}

// handleContextQuery returns the summary enriched for a specific query
// (?q=...).
func (h *Handler) handleContextQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	writeJSON(w, map[string]string{
		"query":   query,
		"summary": h.builder.SummaryForQuery(query),
	})
}

// handleHistory returns recent analysis results, most-recent-first
// (?limit=N).
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	results := h.analyzer.History()
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(results) {
			results = results[:limit]
		}
	}
	writeJSON(w, results)
}

// handleAnalyze runs one on-demand capture/analysis cycle ("what's on my
// screen right now?").
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.analyzer.CaptureAndAnalyze(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if result == nil {
		writeJSON(w, map[string]string{"status": "skipped"})
		return
	}
	writeJSON(w, result)
}

// handleReport returns the aggregated activity report (?period=day).
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.reporter == nil {
		http.Error(w, "persistence is disabled", http.StatusNotFound)
		return
	}

	report, err := h.reporter.GenerateReport(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"running":      h.analyzer.Running(),
		"uptime":       utils.FormatRoundedUnit(int64(time.Since(h.started).Seconds())),
		"history_size": len(h.analyzer.History()),
	}
	if latest := h.analyzer.Latest(); latest != nil {
		status["last_analysis"] = latest.Timestamp
		status["last_summary"] = latest.Summary
	}
	writeJSON(w, status)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
