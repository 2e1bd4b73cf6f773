package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"foodie-storefront/session"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	adminLogin     = "/admin"
	adminDashboard = "/admin/dashboard"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL       string
	StorefrontSvcURL string
	FrontendDir      string
}

type Gateway struct {
	config   Config
	client   HTTPClient
	sessions *session.Manager
}

func NewGateway(config Config, client HTTPClient, sessions *session.Manager) *Gateway {
	if config.FrontendDir == "" {
		config.FrontendDir = "./frontend"
	}
	return &Gateway{
		config:   config,
		client:   client,
		sessions: sessions,
	}
}

var menuPrefixes = []string{"/api/menu", "/api/sync", "/api/upload", "/api/auth", "/api/outlets", "/uploads/"}

var storefrontPrefixes = []string{"/api/food", "/api/qr", "/api/cart", "/api/checkout"}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", targetURL).Msg("proxy")

	target := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		log.Error().Err(err).Str("target", target).Msg("failed to create request")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("target", targetURL).Msg("failed to proxy")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Error().Err(err).Msg("failed to copy response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if hasAnyPrefix(path, menuPrefixes) {
		g.ProxyRequest(w, r, g.config.MenuSvcURL)
		return
	}

	if hasAnyPrefix(path, storefrontPrefixes) {
		g.ProxyRequest(w, r, g.config.StorefrontSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		log.Warn().Str("path", path).Msg("unmatched API route")
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	if path == adminLogin || strings.HasPrefix(path, adminLogin+"/") {
		g.AdminGate(w, r)
		return
	}

	g.serveFrontend(w, r, "index.html")
}

// AdminGate keeps admin pages behind a session. The login page stays public
// but bounces signed-in admins to the dashboard.
func (g *Gateway) AdminGate(w http.ResponseWriter, r *http.Request) {
	authed := g.sessions != nil && g.sessions.Authenticated(r)
	path := strings.TrimRight(r.URL.Path, "/")

	if path == adminLogin {
		if authed {
			http.Redirect(w, r, adminDashboard, http.StatusFound)
			return
		}
		g.serveFrontend(w, r, "admin.html")
		return
	}

	if !authed {
		http.Redirect(w, r, adminLogin+"?redirect="+url.QueryEscape(r.URL.Path), http.StatusFound)
		return
	}
	g.serveFrontend(w, r, "admin.html")
}

func (g *Gateway) serveFrontend(w http.ResponseWriter, r *http.Request, page string) {
	http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, page))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.FrontendDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}
