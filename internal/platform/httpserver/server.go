package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	sessiongateway "meridian/contexts/identity-access/session-gateway"
	roleservice "meridian/contexts/identity-access/role-service"
	tenanttransfer "meridian/contexts/internal-ops/tenant-transfer-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "meridian/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	handler   http.Handler
	logger    *slog.Logger
	addr      string
	sessions  sessiongateway.Module
	roles     roleservice.Module
	transfers tenanttransfer.Module
}

func New(
	sessions sessiongateway.Module,
	roles roleservice.Module,
	transfers tenanttransfer.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		sessions:  sessions,
		roles:     roles,
		transfers: transfers,
	}
	s.registerRoutes()

	// Every route goes through the session guard. The guard refreshes the
	// session cookie, classifies the path, and redirects navigations that
	// are not allowed to proceed.
	s.handler = sessions.Middleware.Wrap(s.mux)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/me", s.handleMe)
	s.mux.HandleFunc("GET /api/me/workspace", s.handleWorkspace)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	s.mux.HandleFunc("PATCH /resources/{resource_id}/organization", s.handleReassignOrganization)

	s.mux.HandleFunc("GET /{$}", s.pageHandler("Meridian"))
	s.mux.HandleFunc("GET /login", s.pageHandler("Sign in"))
	s.mux.HandleFunc("GET /signup", s.pageHandler("Create account"))
	s.mux.HandleFunc("GET /dashboard", s.pageHandler("Dashboard"))
	s.mux.HandleFunc("GET /share/{share_token}", s.pageHandler("Shared view"))
	s.mux.HandleFunc("GET /invite/{invite_token}", s.pageHandler("Invitation"))
	s.mux.HandleFunc("GET /org-invite/{invite_token}", s.pageHandler("Organization invitation"))
}

// pageHandler serves a placeholder shell for dashboard pages. Route policy is
// enforced by the guard middleware before these handlers run.
func (s *Server) pageHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<!doctype html><html><head><title>" + title + "</title></head><body><h1>" + title + "</h1></body></html>"))
	}
}

func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	target any,
	writeError func(http.ResponseWriter, int, string, string),
) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
