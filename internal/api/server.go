// Package api exposes the ledger operations as a small JSON API, the
// headless counterpart of the interactive menu.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/report"
)

type Server struct {
	svc *ledger.Service
}

// NewServer builds an http.Server with the ledger routes and the
// timeouts used across the project.
func NewServer(addr string, svc *ledger.Service) *http.Server {
	s := &Server{svc: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/transactions", s.handleAdd)
	mux.HandleFunc("GET /api/transactions", s.handleList)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/categories", s.handleBreakdown)
	mux.HandleFunc("GET /api/report/{year}", s.handleMonthly)

	return &http.Server{
		Addr:           addr,
		Handler:        withLogging(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

type transactionJSON struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note,omitempty"`
}

type addRequest struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

func toJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:       t.ID,
		Date:     t.Date.String(),
		Type:     string(t.Type),
		Category: t.Category,
		Amount:   t.Amount.String(),
		Note:     t.Note,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	typ, err := core.ParseTxnType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var date core.Date
	if req.Date != "" {
		if date, err = core.ParseDate(req.Date); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	t, err := s.svc.Record(r.Context(), core.NewTransaction{
		Date:     date,
		Type:     typ,
		Category: req.Category,
		Amount:   amount,
		Note:     req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSON(t))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txns, err := s.svc.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]transactionJSON, len(txns))
	for i, t := range txns {
		out[i] = toJSON(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sum, err := s.svc.Summary(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"total_income":  sum.TotalIncome.String(),
		"total_expense": sum.TotalExpense.String(),
		"net":           sum.Net.String(),
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	breakdown, err := s.svc.Breakdown(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	type entry struct {
		Category string `json:"category"`
		Income   string `json:"income"`
		Expense  string `json:"expense"`
		Net      string `json:"net"`
	}
	out := make([]entry, len(breakdown))
	for i, b := range breakdown {
		out[i] = entry{b.Category, b.Income.String(), b.Expense.String(), b.Net.String()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid year"))
		return
	}
	monthly, err := s.svc.Monthly(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	bars := report.BarSeries(monthly)
	type entry struct {
		Month   string `json:"month"`
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Net     string `json:"net"`
	}
	out := make([]entry, len(bars))
	for i, b := range bars {
		out[i] = entry{b.Label, b.Income.String(), b.Expense.String(), monthly[i].Net.String()}
	}
	writeJSON(w, http.StatusOK, out)
}

// parseFilter builds a core.Filter from the year/month/category/type
// query parameters. Filter validation happens at this boundary so
// stores never see a month without a year.
func parseFilter(r *http.Request) (core.Filter, error) {
	var f core.Filter
	q := r.URL.Query()

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return core.Filter{}, errors.New("invalid year")
		}
		f.Year = &year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return core.Filter{}, errors.New("invalid month")
		}
		f.Month = &month
	}
	f.Category = q.Get("category")
	if v := q.Get("type"); v != "" {
		typ, err := core.ParseTxnType(v)
		if err != nil {
			return core.Filter{}, err
		}
		f.Type = &typ
	}

	if err := f.Validate(); err != nil {
		return core.Filter{}, err
	}
	return f, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// withLogging logs one line per request with method, path, status and
// duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
