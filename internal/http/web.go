package http

import (
	"net/http"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// registerWebRoutes mounts the server-rendered pages. Authentication uses an
// opaque session cookie; the JSON APIs never touch it.
func (s *Server) registerWebRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLoginSubmit)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegisterSubmit)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET /dashboard", s.requireSession(s.handleDashboard))
	mux.HandleFunc("POST /transactions", s.requireSession(s.handleWebAddTransaction))
	mux.HandleFunc("POST /transactions/{id}/delete", s.requireSession(s.handleWebDeleteTransaction))
	mux.HandleFunc("GET /simulator", s.requireSession(s.handleSimulatorPage))
	mux.HandleFunc("POST /simulator", s.requireSession(s.handleSimulatorRun))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "render template", "template", name, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", map[string]any{"Title": "Sign in"})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := sanitizeInput(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	user, err := s.authSvc.Login(r.Context(), email, password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, r, "login.html", map[string]any{
			"Title": "Sign in",
			"Error": "Invalid email or password.",
			"Email": email,
		})
		return
	}
	if err := s.startSession(w, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", map[string]any{"Title": "Create account"})
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := sanitizeInput(r.PostFormValue("username"))
	email := sanitizeInput(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	user, err := s.authSvc.Register(r.Context(), username, email, password)
	if err != nil {
		w.WriteHeader(statusFor(err))
		s.render(w, r, "register.html", map[string]any{
			"Title":    "Create account",
			"Error":    err.Error(),
			"Username": username,
			"Email":    email,
		})
		return
	}
	if err := s.startSession(w, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		s.sessions.Destroy(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) startSession(w http.ResponseWriter, uid string) error {
	token, err := s.sessions.Create(uid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// handleDashboard shows the balance, recent entries and the per-category
// breakdown. The breakdown is memoized briefly; writes invalidate it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)

	balance, err := s.finance.Balance(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	txs, err := s.finance.ListTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Newest first, capped for the page.
	recent := make([]core.Transaction, 0, 10)
	for i := len(txs) - 1; i >= 0 && len(recent) < 10; i-- {
		recent = append(recent, txs[i])
	}

	byCategory, ok := s.reportCache.Get("category:" + uid)
	if !ok {
		byCategory, err = s.reports.ByCategory(r.Context(), uid, nil)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.reportCache.Set("category:"+uid, byCategory)
	}

	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.render(w, r, "dashboard.html", map[string]any{
		"Title":      "Dashboard",
		"Balance":    balance,
		"Recent":     recent,
		"ByCategory": byCategory,
		"Categories": categories,
		"Today":      time.Now().UTC().Format("2006-01-02"),
	})
}

func (s *Server) handleWebAddTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	amount, err := core.NewMoney(sanitizeInput(r.PostFormValue("amount")))
	if err != nil {
		http.Error(w, "invalid amount", http.StatusUnprocessableEntity)
		return
	}
	occurredAt, err := parseOccurredAt(sanitizeInput(r.PostFormValue("occurred_at")))
	if err != nil {
		http.Error(w, "invalid date", http.StatusUnprocessableEntity)
		return
	}
	uid := userID(r)
	_, err = s.finance.AddTransaction(r.Context(), uid,
		core.Kind(r.PostFormValue("kind")), amount,
		sanitizeInput(r.PostFormValue("description")),
		sanitizeInput(r.PostFormValue("category")), occurredAt)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.invalidateReports(uid)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleWebDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.finance.RemoveTransaction(r.Context(), r.PathValue("id"), uid); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.invalidateReports(uid)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleSimulatorPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "simulator.html", map[string]any{"Title": "Simulator"})
}

func (s *Server) handleSimulatorRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	initial, err := core.NewMoney(sanitizeInput(r.PostFormValue("initial")))
	if err != nil {
		http.Error(w, "invalid initial amount", http.StatusUnprocessableEntity)
		return
	}
	contribution, err := core.NewMoney(sanitizeInput(r.PostFormValue("contribution")))
	if err != nil {
		http.Error(w, "invalid contribution", http.StatusUnprocessableEntity)
		return
	}
	rate, err := parseRatePercent(r.PostFormValue("rate_percent"))
	if err != nil {
		http.Error(w, "invalid rate", http.StatusUnprocessableEntity)
		return
	}
	months, err := parsePositiveInt(r.PostFormValue("months"))
	if err != nil {
		http.Error(w, "invalid horizon", http.StatusUnprocessableEntity)
		return
	}

	result, err := s.simulations.FixedProjection(r.Context(), initial, contribution, rate, months)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.render(w, r, "simulator.html", map[string]any{
		"Title":  "Simulator",
		"Result": result,
		"Form": map[string]string{
			"Initial":      initial.String(),
			"Contribution": contribution.String(),
			"RatePercent":  r.PostFormValue("rate_percent"),
			"Months":       r.PostFormValue("months"),
		},
	})
}
