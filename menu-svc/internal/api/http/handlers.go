package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"foodie-storefront/menu-svc/internal/domain"
	"foodie-storefront/menu-svc/internal/service"
	"foodie-storefront/session"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const maxUploadMemory = 10 << 20

type Handler struct {
	Menu     service.MenuServiceInterface
	Sync     service.SyncServiceInterface
	Auth     service.AuthServiceInterface
	Upload   service.UploadServiceInterface
	QR       service.QRGenerator
	Sessions *session.Manager

	// UploadDir is served at /uploads/ when images are stored on disk.
	UploadDir string
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.listItems).Methods("GET")
	r.Handle("/api/menu", h.Sessions.Require(http.HandlerFunc(h.saveItem))).Methods("POST")
	r.Handle("/api/menu", h.Sessions.Require(http.HandlerFunc(h.deleteItem))).Methods("DELETE")
	r.Handle("/api/sync", h.Sessions.Require(http.HandlerFunc(h.syncMenu))).Methods("POST")
	r.Handle("/api/upload", h.Sessions.Require(http.HandlerFunc(h.uploadImage))).Methods("POST")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/check", h.checkAuth).Methods("GET")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")

	r.HandleFunc("/api/outlets/{outletId}/tables/{tableId}/qrcode", h.tableQRCode).Methods("GET")

	if h.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list menu items")
		writeError(w, http.StatusInternalServerError, "Failed to load menu items")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) saveItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	result, err := h.Menu.Save(r.Context(), &item)
	if err != nil {
		if errors.Is(err, service.ErrInvalidItem) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("save menu item")
		writeError(w, http.StatusInternalServerError, "Failed to save menu item")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		if errors.Is(err, service.ErrMissingID) {
			writeError(w, http.StatusBadRequest, "Item ID is required")
			return
		}
		log.Error().Err(err).Msg("delete menu item")
		writeError(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) syncMenu(w http.ResponseWriter, r *http.Request) {
	var req domain.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	result, err := h.Sync.Sync(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("sync menu")
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrSyncFailed) {
			status = http.StatusBadGateway
		}
		writeError(w, status, "Failed to sync data")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	url, err := h.Upload.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	switch {
	case errors.Is(err, service.ErrUnsupportedImage):
		writeError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed")
	case errors.Is(err, service.ErrImageTooLarge):
		writeError(w, http.StatusBadRequest, "File too large")
	case err != nil:
		log.Error().Err(err).Str("file", header.Filename).Msg("upload image")
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	token, expires, err := h.Auth.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Invalid credentials"})
			return
		}
		log.Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Sessions.SetCookie(w, token, expires)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	if !h.Sessions.Authenticated(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"authenticated": false, "error": "Not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()
	png, err := h.QR.Generate(domain.TableQR{
		OutletID:    vars["outletId"],
		TableID:     vars["tableId"],
		OutletName:  query.Get("outletName"),
		TableNumber: query.Get("tableNumber"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTable) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("generate table qr code")
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
