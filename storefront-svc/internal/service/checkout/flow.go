// Package checkout drives a diner session from browsing through payment.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"foodie-storefront/storefront-svc/internal/service/cart"
)

type Stage string

const (
	StageBrowsing          Stage = "browsing"
	StageCart              Stage = "cart"
	StageSummary           Stage = "summary"
	StagePhoneVerification Stage = "phone_verification"
	StagePaymentMethod     Stage = "payment_method"
	StageUPIApps           Stage = "upi_apps"
	StageSuccess           Stage = "success"
)

const (
	MethodPayLater = "paylater"
	MethodCard     = "card"
	MethodUPI      = "upi"
)

const (
	DefaultOTPDelay    = time.Second
	DefaultDeliveryETA = 15 * time.Minute
	minPhoneDigits     = 10
	minOTPLength       = 4
)

var (
	ErrInvalidStage         = errors.New("action not allowed at this stage")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPhone         = errors.New("phone number must have at least 10 digits")
	ErrOTPNotSent           = errors.New("otp has not been sent")
	ErrInvalidOTP           = errors.New("otp must have at least 4 characters")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)

var previous = map[Stage]Stage{
	StageCart:              StageBrowsing,
	StageSummary:           StageCart,
	StagePhoneVerification: StageSummary,
	StagePaymentMethod:     StagePhoneVerification,
	StageUPIApps:           StagePaymentMethod,
}

// Session is everything remembered about one diner between requests.
type Session struct {
	ID                string    `json:"id"`
	OutletID          string    `json:"outletId,omitempty"`
	TableID           string    `json:"tableId,omitempty"`
	Cart              cart.Cart `json:"cart"`
	Stage             Stage     `json:"stage"`
	Phone             string    `json:"phone,omitempty"`
	OTPSent           bool      `json:"otpSent,omitempty"`
	PaymentMethod     string    `json:"paymentMethod,omitempty"`
	UPIApp            string    `json:"upiApp,omitempty"`
	DeepLink          string    `json:"deepLink,omitempty"`
	EstimatedDelivery time.Time `json:"estimatedDelivery,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{ID: id, Stage: StageBrowsing}
}

// CanEditCart reports whether lines may still change.
func (s *Session) CanEditCart() bool {
	switch s.Stage {
	case StageBrowsing, StageCart, StageSummary, "":
		return true
	}
	return false
}

type Flow struct {
	OTPDelay    time.Duration
	DeliveryETA time.Duration
	Payee       Payee
	Now         func() time.Time
}

func NewFlow(payee Payee) *Flow {
	return &Flow{
		OTPDelay:    DefaultOTPDelay,
		DeliveryETA: DefaultDeliveryETA,
		Payee:       payee,
		Now:         time.Now,
	}
}

func (f *Flow) OpenCart(s *Session) error {
	if err := expect(s, StageBrowsing); err != nil {
		return err
	}
	if s.Cart.IsEmpty() {
		return ErrEmptyCart
	}
	s.Stage = StageCart
	return nil
}

func (f *Flow) ProceedToSummary(s *Session) error {
	if err := expect(s, StageCart); err != nil {
		return err
	}
	if s.Cart.IsEmpty() {
		return ErrEmptyCart
	}
	s.Stage = StageSummary
	return nil
}

func (f *Flow) ProceedToPhone(s *Session) error {
	if err := expect(s, StageSummary); err != nil {
		return err
	}
	s.Stage = StagePhoneVerification
	return nil
}

func (f *Flow) SendOTP(s *Session, phone string) error {
	if err := expect(s, StagePhoneVerification); err != nil {
		return err
	}
	if countDigits(phone) < minPhoneDigits {
		return ErrInvalidPhone
	}
	s.Phone = phone
	s.OTPSent = true
	return nil
}

// VerifyOTP accepts any code of the minimum length after a fixed delay.
// No code is actually checked.
func (f *Flow) VerifyOTP(ctx context.Context, s *Session, otp string) error {
	if err := expect(s, StagePhoneVerification); err != nil {
		return err
	}
	if !s.OTPSent {
		return ErrOTPNotSent
	}
	if len(otp) < minOTPLength {
		return ErrInvalidOTP
	}

	if f.OTPDelay > 0 {
		timer := time.NewTimer(f.OTPDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.OTPSent = false
	s.Stage = StagePaymentMethod
	return nil
}

func (f *Flow) SelectPayment(s *Session, method string) error {
	if err := expect(s, StagePaymentMethod); err != nil {
		return err
	}
	switch method {
	case MethodPayLater, MethodCard:
		s.PaymentMethod = method
		f.succeed(s)
	case MethodUPI:
		s.PaymentMethod = method
		s.Stage = StageUPIApps
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	return nil
}

// SelectUPIApp returns the deep link that hands payment to app.
func (f *Flow) SelectUPIApp(s *Session, app string) (string, error) {
	if err := expect(s, StageUPIApps); err != nil {
		return "", err
	}
	s.UPIApp = app
	s.DeepLink = DeepLink(app, f.Payee, s.Cart.TotalPrice())
	f.succeed(s)
	return s.DeepLink, nil
}

// Complete ends an order and returns the session to browsing with an empty
// cart. The returned copy holds the confirmed order.
func (f *Flow) Complete(s *Session) (*Session, error) {
	if err := expect(s, StageSuccess); err != nil {
		return nil, err
	}
	confirmed := *s
	confirmed.Cart.Items = append([]cart.Item(nil), s.Cart.Items...)

	s.Cart.Reset()
	s.Stage = StageBrowsing
	s.Phone = ""
	s.OTPSent = false
	s.PaymentMethod = ""
	s.UPIApp = ""
	s.DeepLink = ""
	s.EstimatedDelivery = time.Time{}
	return &confirmed, nil
}

// Back steps to the previous stage. Browsing is the floor and a placed order
// can only be completed.
func (f *Flow) Back(s *Session) error {
	switch s.Stage {
	case StageBrowsing, "":
		s.Stage = StageBrowsing
		return nil
	case StageSuccess:
		return ErrInvalidStage
	}
	if s.Stage == StagePhoneVerification {
		s.OTPSent = false
	}
	s.Stage = previous[s.Stage]
	return nil
}

// CartChanged returns an emptied cart to browsing.
func (f *Flow) CartChanged(s *Session) {
	if s.Cart.IsEmpty() && (s.Stage == StageCart || s.Stage == StageSummary) {
		s.Stage = StageBrowsing
	}
}

func (f *Flow) succeed(s *Session) {
	s.Stage = StageSuccess
	s.EstimatedDelivery = f.Now().Add(f.DeliveryETA)
}

func expect(s *Session, stage Stage) error {
	current := s.Stage
	if current == "" {
		current = StageBrowsing
	}
	if current != stage {
		return fmt.Errorf("%w: %s (expected %s)", ErrInvalidStage, current, stage)
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
