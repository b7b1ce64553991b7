package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

// registerV2Routes mounts the multi-user API. Everything except registration
// and login requires a bearer token; records are scoped to the token subject.
func (s *Server) registerV2Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v2/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v2/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v2/auth/me", s.requireJWT(s.handleMe))

	mux.HandleFunc("POST /api/v2/transactions", s.requireJWT(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/v2/transactions", s.requireJWT(s.handleListTransactions))
	mux.HandleFunc("GET /api/v2/transactions/{id}", s.requireJWT(s.handleGetTransaction))
	mux.HandleFunc("DELETE /api/v2/transactions/{id}", s.requireJWT(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/v2/balance", s.requireJWT(s.handleBalance))
	mux.HandleFunc("GET /api/v2/reports", s.requireJWT(s.handleReport))
	mux.HandleFunc("GET /api/v2/reports/summary", s.requireJWT(s.handleReportSummary))
	mux.HandleFunc("GET /api/v2/reports/monthly-by-category", s.requireJWT(s.handleMonthlyByCategory))
	mux.HandleFunc("GET /api/v2/reports/category-by-month", s.requireJWT(s.handleCategoryByMonth))
	mux.HandleFunc("POST /api/v2/reports/export", s.requireJWT(s.handleExportReport))
	mux.HandleFunc("GET /api/v2/categories", s.requireJWT(s.handleListCategories))
	mux.HandleFunc("POST /api/v2/categories", s.requireJWT(s.handleAddCategory))
	mux.HandleFunc("DELETE /api/v2/categories/{name}", s.requireJWT(s.handleRemoveCategory))

	mux.HandleFunc("POST /api/v2/simulations/fixed", s.requireJWT(s.handleSimulateFixed))
	mux.HandleFunc("POST /api/v2/simulations/variable", s.requireJWT(s.handleSimulateVariable))
	mux.HandleFunc("POST /api/v2/simulations/compare", s.requireJWT(s.handleSimulateCompare))

	mux.HandleFunc("POST /api/v2/investments", s.requireJWT(s.handleCreateInvestment))
	mux.HandleFunc("GET /api/v2/investments", s.requireJWT(s.handleListInvestments))
	mux.HandleFunc("GET /api/v2/investments/{id}", s.requireJWT(s.handleGetInvestment))
	mux.HandleFunc("PATCH /api/v2/investments/{id}", s.requireJWT(s.handleUpdateInvestment))
	mux.HandleFunc("DELETE /api/v2/investments/{id}", s.requireJWT(s.handleDeleteInvestment))
	mux.HandleFunc("POST /api/v2/investments/{id}/projection", s.requireJWT(s.handleProjectInvestment))
	mux.HandleFunc("GET /api/v2/portfolio", s.requireJWT(s.handlePortfolio))

	mux.HandleFunc("POST /api/v2/assets", s.requireJWT(s.handleTrackAsset))
	mux.HandleFunc("GET /api/v2/assets", s.requireJWT(s.handleListAssets))
	mux.HandleFunc("DELETE /api/v2/assets/{id}", s.requireJWT(s.handleUntrackAsset))
	mux.HandleFunc("POST /api/v2/assets/refresh", s.requireJWT(s.handleRefreshAssets))
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest identifies the account by username or email. The login field
// takes either; email is kept as an alias for older clients.
type loginRequest struct {
	Login    string `json:"login,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (r loginRequest) identifier() string {
	if r.Login != "" {
		return r.Login
	}
	return r.Email
}

// userResponse is the public view of an account; the hash never leaves.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserResponse(u core.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := s.authSvc.Register(r.Context(), sanitizeInput(req.Username), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := s.authSvc.Login(r.Context(), sanitizeInput(req.identifier()), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (s *Server) handleMonthlyByCategory(w http.ResponseWriter, r *http.Request) {
	year, err := parseOptionalInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := parseOptionalInt(r, "month")
	if err != nil || month > 12 {
		writeError(w, r, errBadRequest)
		return
	}
	report, err := s.reports.MonthlyByCategory(r.Context(), userID(r), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (s *Server) handleCategoryByMonth(w http.ResponseWriter, r *http.Request) {
	category := sanitizeInput(r.URL.Query().Get("category"))
	if category == "" {
		writeBadRequest(w, "category is required")
		return
	}
	year, err := parseOptionalInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := s.reports.CategoryByMonth(r.Context(), userID(r), category, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category, "report": report})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authSvc.GetUser(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type investmentRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	InitialAmount string  `json:"initial_amount"`
	CurrentAmount string  `json:"current_amount,omitempty"`
	MonthlyRate   float64 `json:"monthly_rate"`
	StartDate     string  `json:"start_date,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	initial, err := core.NewMoney(req.InitialAmount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	current := initial
	if req.CurrentAmount != "" {
		if current, err = core.NewMoney(req.CurrentAmount); err != nil {
			writeError(w, r, err)
			return
		}
	}
	var startDate time.Time
	if req.StartDate != "" {
		if startDate, err = parseOccurredAt(req.StartDate); err != nil {
			writeError(w, r, err)
			return
		}
	}
	inv, err := s.investments.Create(r.Context(), userID(r), sanitizeInput(req.Name),
		core.InvestmentType(req.Type), initial, current, req.MonthlyRate, startDate, sanitizeInput(req.Notes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := s.investments.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if investments == nil {
		investments = []core.Investment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"investments": investments, "count": len(investments)})
}

func (s *Server) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	inv, err := s.investments.Get(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type investmentUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	CurrentAmount *string  `json:"current_amount,omitempty"`
	MonthlyRate   *float64 `json:"monthly_rate,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	update := core.InvestmentUpdate{
		Name:        req.Name,
		MonthlyRate: req.MonthlyRate,
		Notes:       req.Notes,
	}
	if req.CurrentAmount != nil {
		amount, err := core.NewMoney(*req.CurrentAmount)
		if err != nil {
			writeError(w, r, err)
			return
		}
		update.CurrentAmount = &amount
	}
	inv, err := s.investments.Update(r.Context(), r.PathValue("id"), userID(r), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := s.investments.Delete(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectInvestment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contribution string `json:"contribution"`
		Months       int    `json:"months"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	contribution, err := core.NewMoney(req.Contribution)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.investments.Project(r.Context(), r.PathValue("id"), userID(r), contribution, req.Months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := s.investments.Portfolio(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type assetRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency,omitempty"`
}

func (s *Server) handleTrackAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	asset, err := s.assets.Track(r.Context(), userID(r), sanitizeInput(req.Symbol),
		sanitizeInput(req.Name), core.AssetType(req.Type), sanitizeInput(req.Currency))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if assets == nil {
		assets = []core.Asset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": assets, "count": len(assets)})
}

func (s *Server) handleUntrackAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Untrack(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRefreshAssets queues a quote refresh for each of the caller's assets.
// With no queue configured the refresh runs inline before responding.
func (s *Server) handleRefreshAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, asset := range assets {
		if err := s.assets.RequestRefresh(r.Context(), asset.Symbol, asset.Type); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"requested": len(assets)})
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "export is not configured"})
		return
	}
	var req struct {
		Title string `json:"title,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	dateRange, err := parseDateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := s.reports.ByCategory(r.Context(), userID(r), dateRange)
	if err != nil {
		writeError(w, r, err)
		return
	}
	title := sanitizeInput(req.Title)
	if title == "" {
		title = "Category report " + time.Now().UTC().Format("2006-01-02")
	}
	ref, err := s.exporter.ExportCategoryReport(r.Context(), title, report)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"exported_to": ref})
}
