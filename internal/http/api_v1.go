package http

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/core"
)

// registerV1Routes mounts the unauthenticated single-user API. Every record
// belongs to LocalUserID; multi-user access goes through /api/v2.
func (s *Server) registerV1Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/transactions", s.asLocal(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/v1/transactions", s.asLocal(s.handleListTransactions))
	mux.HandleFunc("GET /api/v1/transactions/{id}", s.asLocal(s.handleGetTransaction))
	mux.HandleFunc("DELETE /api/v1/transactions/{id}", s.asLocal(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/v1/balance", s.asLocal(s.handleBalance))
	mux.HandleFunc("GET /api/v1/reports", s.asLocal(s.handleReport))
	mux.HandleFunc("GET /api/v1/reports/summary", s.asLocal(s.handleReportSummary))
	mux.HandleFunc("GET /api/v1/categories", s.asLocal(s.handleListCategories))
	mux.HandleFunc("POST /api/v1/categories", s.asLocal(s.handleAddCategory))
	mux.HandleFunc("DELETE /api/v1/categories/{name}", s.asLocal(s.handleRemoveCategory))
	mux.HandleFunc("POST /api/v1/simulations/fixed", s.handleSimulateFixed)
	mux.HandleFunc("POST /api/v1/simulations/variable", s.handleSimulateVariable)
	mux.HandleFunc("POST /api/v1/simulations/compare", s.handleSimulateCompare)
}

// asLocal pins the request to the local single-user identity.
func (s *Server) asLocal(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userIDKey, LocalUserID)
		next(w, r.WithContext(ctx))
	}
}

type transactionRequest struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	OccurredAt  string `json:"occurred_at,omitempty"`
}

// parseOccurredAt accepts RFC 3339 or a bare date; empty means "now".
func parseOccurredAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errBadRequest
	}
	return t, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := core.NewMoney(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	occurredAt, err := parseOccurredAt(req.OccurredAt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := s.finance.AddTransaction(r.Context(), userID(r), core.Kind(req.Kind),
		amount, sanitizeInput(req.Description), sanitizeInput(req.Category), occurredAt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateReports(userID(r))
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.finance.ListTransactions(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs, "count": len(txs)})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.finance.GetTransaction(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.RemoveTransaction(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateReports(userID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.finance.Balance(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Money{"balance": balance})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	groupBy := core.GroupBy(r.URL.Query().Get("group_by"))
	if groupBy == "" {
		groupBy = core.GroupByCategory
	}
	if !groupBy.Valid() {
		writeBadRequest(w, "group_by must be category or month")
		return
	}
	dateRange, err := parseDateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var report map[string]core.Money
	if groupBy == core.GroupByMonth {
		report, err = s.reports.ByMonth(r.Context(), userID(r), dateRange)
	} else {
		report, err = s.reports.ByCategory(r.Context(), userID(r), dateRange)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group_by": groupBy, "report": report})
}

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.MonthlySummary(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	months, err := s.reports.AvailableMonths(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if months == nil {
		months = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"months": months, "summary": summary})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := core.NewCategory(sanitizeInput(req.Name))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.categories.Add(r.Context(), category); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Remove(r.Context(), r.PathValue("name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fixedSimulationRequest struct {
	Initial      string  `json:"initial"`
	Contribution string  `json:"contribution"`
	MonthlyRate  float64 `json:"monthly_rate"`
	Months       int     `json:"months"`
}

type variableSimulationRequest struct {
	Initial       string   `json:"initial"`
	Contributions []string `json:"contributions"`
	MonthlyRate   float64  `json:"monthly_rate"`
}

type compareSimulationRequest struct {
	Initial       string   `json:"initial"`
	Contributions []string `json:"contributions"`
	MonthlyRate   float64  `json:"monthly_rate"`
	Months        int      `json:"months"`
}

func parseMoneyList(values []string) ([]core.Money, error) {
	out := make([]core.Money, len(values))
	for i, v := range values {
		m, err := core.NewMoney(v)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func (s *Server) handleSimulateFixed(w http.ResponseWriter, r *http.Request) {
	var req fixedSimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	initial, err := core.NewMoney(req.Initial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contribution, err := core.NewMoney(req.Contribution)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.simulations.FixedProjection(r.Context(), initial, contribution, req.MonthlyRate, req.Months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimulateVariable(w http.ResponseWriter, r *http.Request) {
	var req variableSimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	initial, err := core.NewMoney(req.Initial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contributions, err := parseMoneyList(req.Contributions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.simulations.VariableProjection(r.Context(), initial, contributions, req.MonthlyRate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimulateCompare(w http.ResponseWriter, r *http.Request) {
	var req compareSimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	initial, err := core.NewMoney(req.Initial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contributions, err := parseMoneyList(req.Contributions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scenarios, err := s.simulations.Compare(r.Context(), initial, contributions, req.MonthlyRate, req.Months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": scenarios})
}

// invalidateReports drops the cached dashboard aggregation after a write.
func (s *Server) invalidateReports(uid string) {
	s.reportCache.Delete("category:" + uid)
}
