package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/service/checkout"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ActionOpenCart  = "open-cart"
	ActionSummary   = "summary"
	ActionPhone     = "phone"
	ActionSendOTP   = "send-otp"
	ActionVerifyOTP = "verify-otp"
	ActionPayment   = "payment"
	ActionUPIApp    = "upi-app"
	ActionComplete  = "complete"
	ActionBack      = "back"
)

var (
	ErrUnknownAction = errors.New("unknown checkout action")
	ErrInvalidItem   = errors.New("invalid cart item")
)

type AddItemRequest struct {
	Item     domain.MenuItem `json:"item"`
	AddOns   []string        `json:"addOns"`
	OutletID string          `json:"outletId,omitempty"`
	TableID  string          `json:"tableId,omitempty"`
}

type ActionRequest struct {
	Phone  string `json:"phone,omitempty"`
	OTP    string `json:"otp,omitempty"`
	Method string `json:"method,omitempty"`
	App    string `json:"app,omitempty"`
}

type CartService struct {
	store     SessionStore
	flow      *checkout.Flow
	publisher OrderPublisher
}

// NewCartService keeps cart and checkout state per session id. publisher
// may be nil.
func NewCartService(store SessionStore, flow *checkout.Flow, publisher OrderPublisher) *CartService {
	return &CartService{store: store, flow: flow, publisher: publisher}
}

// Session loads a session or starts and stores a new one when id is empty
// or unknown.
func (s *CartService) Session(ctx context.Context, id string) (*checkout.Session, error) {
	if id != "" {
		sess, err := s.store.Load(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}

	sess := checkout.NewSession(uuid.NewString())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *CartService) AddItem(ctx context.Context, id string, req AddItemRequest) (*checkout.Session, error) {
	if err := validateItem(req.Item); err != nil {
		return nil, err
	}
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanEditCart() {
		return nil, fmt.Errorf("%w: cart is locked at %s", checkout.ErrInvalidStage, sess.Stage)
	}

	if req.OutletID != "" {
		sess.OutletID = req.OutletID
	}
	if req.TableID != "" {
		sess.TableID = req.TableID
	}
	sess.Cart.Add(req.Item, req.AddOns)
	return sess, s.store.Save(ctx, sess)
}

func validateItem(item domain.MenuItem) error {
	if strings.TrimSpace(item.ID) == "" || item.Price < 0 {
		return ErrInvalidItem
	}
	for _, addOn := range item.AddOns {
		if strings.TrimSpace(addOn.ID) == "" || addOn.Price < 0 {
			return fmt.Errorf("%w: invalid add-on", ErrInvalidItem)
		}
	}
	return nil
}

func (s *CartService) SetQuantity(ctx context.Context, id, key string, quantity int) (*checkout.Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanEditCart() {
		return nil, fmt.Errorf("%w: cart is locked at %s", checkout.ErrInvalidStage, sess.Stage)
	}

	sess.Cart.SetQuantity(key, quantity)
	s.flow.CartChanged(sess)
	return sess, s.store.Save(ctx, sess)
}

// Checkout applies one stage transition and saves the session.
func (s *CartService) Checkout(ctx context.Context, id, action string, req ActionRequest) (*checkout.Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionOpenCart:
		err = s.flow.OpenCart(sess)
	case ActionSummary:
		err = s.flow.ProceedToSummary(sess)
	case ActionPhone:
		err = s.flow.ProceedToPhone(sess)
	case ActionSendOTP:
		err = s.flow.SendOTP(sess, req.Phone)
	case ActionVerifyOTP:
		err = s.flow.VerifyOTP(ctx, sess, req.OTP)
	case ActionPayment:
		err = s.flow.SelectPayment(sess, req.Method)
	case ActionUPIApp:
		_, err = s.flow.SelectUPIApp(sess, req.App)
	case ActionBack:
		err = s.flow.Back(sess)
	case ActionComplete:
		if _, err := s.complete(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	if err != nil {
		return nil, err
	}

	return sess, s.store.Save(ctx, sess)
}

// Complete confirms the placed order and returns the reset session together
// with the confirmed order. Unknown sessions have nothing to complete and are
// not created.
func (s *CartService) Complete(ctx context.Context, id string) (*checkout.Session, *checkout.Session, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: no order to complete", checkout.ErrInvalidStage)
	}
	sess, err := s.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil, fmt.Errorf("%w: no order to complete", checkout.ErrInvalidStage)
	}
	if err != nil {
		return nil, nil, err
	}
	confirmed, err := s.complete(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, confirmed, nil
}

// complete stores the reset session before the order is published.
func (s *CartService) complete(ctx context.Context, sess *checkout.Session) (*checkout.Session, error) {
	confirmed, err := s.flow.Complete(sess)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(ctx, confirmed)
	return confirmed, nil
}

func (s *CartService) publish(ctx context.Context, order *checkout.Session) {
	if s.publisher == nil {
		return
	}

	lines := make([]domain.OrderLine, 0, len(order.Cart.Items))
	for _, it := range order.Cart.Items {
		lines = append(lines, domain.OrderLine{ItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	event := domain.OrderEvent{
		Type:          domain.OrderConfirmed,
		OrderID:       uuid.NewString(),
		OutletID:      order.OutletID,
		TableID:       order.TableID,
		Items:         lines,
		Total:         order.Cart.TotalPrice(),
		PaymentMethod: order.PaymentMethod,
		Timestamp:     s.flow.Now().UTC(),
	}
	if event.OutletID == "" {
		event.OutletID = fmt.Sprint(DefaultOutletID)
	}

	// publish failures never undo a confirmed order
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		log.Error().Err(err).Str("order", event.OrderID).Msg("failed to publish order")
		return
	}
	log.Info().Str("order", event.OrderID).Str("outlet", event.OutletID).Int64("total", event.Total).Msg("order confirmed")
}
