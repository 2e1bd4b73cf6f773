package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/service"
	"foodie-storefront/storefront-svc/internal/service/cart"
	"foodie-storefront/storefront-svc/internal/service/checkout"
	"foodie-storefront/storefront-svc/internal/service/qr"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	SessionHeader  = "X-Cart-Session"
	maxFrameMemory = 10 << 20
	maxScanBytes   = 16 << 20
	maxScanFrames  = 5
	// 4000x3000, a large phone camera frame
	maxFramePixels = 12_000_000
)

var errFrameTooLarge = errors.New("frame too large")

type LocationResolver interface {
	Locate(ctx context.Context, lat, lon *float64) domain.Location
}

type FrameScanner interface {
	Scan(ctx context.Context, src qr.FrameSource) (domain.QRCodeData, error)
}

type Handler struct {
	Menu    service.MenuServiceInterface
	Cart    service.CartServiceInterface
	Locator LocationResolver
	Scanner FrameScanner
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/food", h.outletFood).Methods("POST")

	r.HandleFunc("/api/qr/resolve", h.resolveQR).Methods("POST")
	r.HandleFunc("/api/qr/scan", h.scanQR).Methods("POST")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{key}", h.setCartQuantity).Methods("PUT")
	r.HandleFunc("/api/checkout/{action}", h.checkout).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type foodRequest struct {
	OutletID flexID   `json:"outletId"`
	Category string   `json:"category"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

func (h *Handler) outletFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	items, err := h.Menu.OutletMenu(r.Context(), domain.MenuRequest{
		OutletID: string(req.OutletID),
		Category: req.Category,
		Location: h.locate(r.Context(), req.Lat, req.Lon),
	})
	if err != nil {
		log.Error().Err(err).Str("outlet", string(req.OutletID)).Msg("fetch outlet food")
		writeError(w, http.StatusBadGateway, "Failed to fetch food data")
		return
	}

	q := r.URL.Query()
	filtered := service.Filter(items, domain.MenuFilter{
		Search:     q.Get("search"),
		Categories: q["category"],
		Veg:        queryBool(q.Get("veg")),
		NonVeg:     queryBool(q.Get("nonveg")),
		Bestseller: queryBool(q.Get("bestseller")),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      filtered,
		"categories": service.Categories(items),
	})
}

type resolveRequest struct {
	Text string   `json:"text"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

func (h *Handler) resolveQR(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	data, err := qr.Resolve(req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeResolved(w, r, data, req.Lat, req.Lon)
}

func (h *Handler) scanQR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxScanBytes)
	if err := r.ParseMultipartForm(maxFrameMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := r.MultipartForm.File["frame"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No frame provided")
		return
	}
	if len(files) > maxScanFrames {
		writeError(w, http.StatusBadRequest, "Too many frames")
		return
	}

	frames := make([]image.Image, 0, len(files))
	for _, fh := range files {
		img, err := decodeFrame(fh)
		if errors.Is(err, errFrameTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Frame too large")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid image")
			return
		}
		frames = append(frames, img)
	}

	data, err := h.Scanner.Scan(r.Context(), qr.NewSliceFrames(frames...))
	if err != nil {
		switch {
		case errors.Is(err, qr.ErrNoCode), errors.Is(err, qr.ErrCameraUnavailable):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, qr.ErrInvalidPayload), errors.Is(err, qr.ErrMissingFields):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("scan frames")
			writeError(w, http.StatusInternalServerError, "Failed to scan QR code")
		}
		return
	}

	lat := formFloat(r.FormValue("lat"))
	lon := formFloat(r.FormValue("lon"))
	h.writeResolved(w, r, data, lat, lon)
}

// decodeFrame checks the image header before decoding so a small file
// cannot claim a huge canvas.
func decodeFrame(fh *multipart.FileHeader) (image.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxFramePixels {
		return nil, fmt.Errorf("%w: %dx%d", errFrameTooLarge, cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(f)
	return img, err
}

func (h *Handler) writeResolved(w http.ResponseWriter, r *http.Request, data domain.QRCodeData, lat, lon *float64) {
	loc := h.locate(r.Context(), lat, lon)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":     data,
		"redirect": qr.MenuRedirect(data, loc),
	})
}

func (h *Handler) locate(ctx context.Context, lat, lon *float64) domain.Location {
	if h.Locator == nil {
		if lat == nil || lon == nil {
			return domain.Location{}
		}
		return domain.Location{Lat: *lat, Lon: *lon}
	}
	return h.Locator.Locate(ctx, lat, lon)
}

// cartView is the session as the storefront renders it.
type cartView struct {
	SessionID         string          `json:"sessionId"`
	Stage             checkout.Stage  `json:"stage"`
	OutletID          string          `json:"outletId,omitempty"`
	TableID           string          `json:"tableId,omitempty"`
	Items             []cart.Item     `json:"items"`
	TotalItems        int             `json:"totalItems"`
	TotalPrice        int64           `json:"totalPrice"`
	FormattedTotal    string          `json:"formattedTotal"`
	Phone             string          `json:"phone,omitempty"`
	OTPSent           bool            `json:"otpSent"`
	PaymentMethod     string          `json:"paymentMethod,omitempty"`
	DeepLink          string          `json:"deepLink,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	Order             *confirmedOrder `json:"order,omitempty"`
}

type confirmedOrder struct {
	TotalPrice     int64  `json:"totalPrice"`
	FormattedTotal string `json:"formattedTotal"`
}

func newCartView(s *checkout.Session) cartView {
	items := s.Cart.Items
	if items == nil {
		items = []cart.Item{}
	}
	view := cartView{
		SessionID:      s.ID,
		Stage:          s.Stage,
		OutletID:       s.OutletID,
		TableID:        s.TableID,
		Items:          items,
		TotalItems:     s.Cart.TotalItems(),
		TotalPrice:     s.Cart.TotalPrice(),
		FormattedTotal: cart.FormatPrice(s.Cart.TotalPrice()),
		Phone:          s.Phone,
		OTPSent:        s.OTPSent,
		PaymentMethod:  s.PaymentMethod,
		DeepLink:       s.DeepLink,
	}
	if !s.EstimatedDelivery.IsZero() {
		eta := s.EstimatedDelivery
		view.EstimatedDelivery = &eta
	}
	return view
}

func (h *Handler) writeSession(w http.ResponseWriter, s *checkout.Session) {
	w.Header().Set(SessionHeader, s.ID)
	writeJSON(w, http.StatusOK, newCartView(s))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Cart.Session(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		h.cartError(w, err)
		return
	}
	h.writeSession(w, sess)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	sess, err := h.Cart.AddItem(r.Context(), r.Header.Get(SessionHeader), req)
	if err != nil {
		h.cartError(w, err)
		return
	}
	h.writeSession(w, sess)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	key := mux.Vars(r)["key"]
	sess, err := h.Cart.SetQuantity(r.Context(), r.Header.Get(SessionHeader), key, req.Quantity)
	if err != nil {
		h.cartError(w, err)
		return
	}
	h.writeSession(w, sess)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	action := mux.Vars(r)["action"]
	if action == service.ActionComplete {
		h.completeOrder(w, r)
		return
	}

	sess, err := h.Cart.Checkout(r.Context(), r.Header.Get(SessionHeader), action, req)
	if err != nil {
		h.cartError(w, err)
		return
	}
	h.writeSession(w, sess)
}

// completeOrder reports the confirmed order's total next to the reset cart.
func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	sess, order, err := h.Cart.Complete(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		h.cartError(w, err)
		return
	}

	view := newCartView(sess)
	total := order.Cart.TotalPrice()
	view.Order = &confirmedOrder{TotalPrice: total, FormattedTotal: cart.FormatPrice(total)}
	w.Header().Set(SessionHeader, sess.ID)
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) cartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownAction):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, checkout.ErrInvalidStage),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidPhone),
		errors.Is(err, checkout.ErrOTPNotSent),
		errors.Is(err, checkout.ErrInvalidOTP),
		errors.Is(err, checkout.ErrInvalidPaymentMethod):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("cart session")
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
	}
}

// flexID accepts an outlet id sent as a string or a number.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func queryBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func formFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
