// Package http exposes the application over three surfaces: the
// server-rendered web app, the plain single-user API under /api/v1 and the
// JWT-protected multi-user API under /api/v2.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
	appweb "fintrack/web"
)

// LocalUserID owns every record created through the unauthenticated
// surfaces (the v1 API and the terminal client).
const LocalUserID = services.LocalUserID

// ReportExporter pushes a category report to an external spreadsheet.
// Optional; requests fail with 503 when it is not configured.
type ReportExporter interface {
	ExportCategoryReport(ctx context.Context, title string, report map[string]core.Money) (string, error)
}

// Deps carries everything the server needs. Exporter may be nil.
type Deps struct {
	Finance     *services.FinanceService
	Reports     *services.ReportService
	Simulations *services.SimulationService
	Investments *services.InvestmentService
	Assets      *services.AssetService
	Auth        *services.AuthService
	Categories  services.CategoryStore
	Tokens      *auth.TokenIssuer
	Sessions    *auth.SessionStore
	Exporter    ReportExporter
}

type Server struct {
	http.Server

	templates   *template.Template
	finance     *services.FinanceService
	reports     *services.ReportService
	simulations *services.SimulationService
	investments *services.InvestmentService
	assets      *services.AssetService
	authSvc     *services.AuthService
	categories  services.CategoryStore
	tokens      *auth.TokenIssuer
	sessions    *auth.SessionStore
	exporter    ReportExporter

	limiter     *ratelimit.Limiter
	reportCache *cache.Cache[map[string]core.Money]
	logger      *log.Logger

	shutdownOnce sync.Once
}

// NewServer wires routes, templates and middleware into a ready-to-run
// server.
func NewServer(addr string, deps Deps, logger *log.Logger) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		finance:     deps.Finance,
		reports:     deps.Reports,
		simulations: deps.Simulations,
		investments: deps.Investments,
		assets:      deps.Assets,
		authSvc:     deps.Auth,
		categories:  deps.Categories,
		tokens:      deps.Tokens,
		sessions:    deps.Sessions,
		exporter:    deps.Exporter,
		limiter:     ratelimit.NewLimiter(60),
		reportCache: cache.New[map[string]core.Money](200, 5*time.Minute),
		logger:      logger.WithComponent(log.ComponentHTTP),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	// Static assets from the embedded FS, with a small cache policy.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssets(3600)(static))
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	s.registerWebRoutes(mux)
	s.registerV1Routes(mux)
	s.registerV2Routes(mux)

	handler := trace.Middleware(clientIP)(
		security.Headers(
			s.limiter.Middleware(clientIP)(mux)))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Shutdown stops the limiter's background goroutine and drains the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type contextKey string

const userIDKey contextKey = "user_id"

func userID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// requireJWT guards the v2 API with a bearer token.
func (s *Server) requireJWT(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		uid, err := s.tokens.Verify(header[len(prefix):])
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next(w, r.WithContext(ctx))
	}
}

// requireSession guards web pages with the session cookie, redirecting
// anonymous visitors to the login page.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		uid, ok := s.sessions.Resolve(cookie.Value)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next(w, r.WithContext(ctx))
	}
}
