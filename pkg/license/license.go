// Package license sells builder licenses through a hosted payment checkout
// and activates them when the payment provider reports a paid payment.
package license

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

var (
	// ErrMissingID is returned by HandleWebhook without a payment id.
	ErrMissingID = errors.New("license: missing id")
	// ErrMissingAPIKey is returned when no payment provider could be built.
	ErrMissingAPIKey = errors.New("license: missing payment provider api key")
	// ErrNoCheckoutURL is returned when a created payment has no checkout link.
	ErrNoCheckoutURL = errors.New("license: payment has no checkout url")
)

// StatusPaid is the provider status of a completed payment.
const StatusPaid = "paid"

const (
	DefaultAmount      = "49.00"
	DefaultCurrency    = "EUR"
	DefaultDescription = "FormBuilder licentie"
	DefaultMethod      = "ideal"
	DefaultRedirect    = "/thanks"
	DefaultWebhook     = "/api/purchase/webhook"
)

var amountPattern = regexp.MustCompile(`^[0-9]+\.[0-9]{2}$`)

// ValidAmount reports whether s is a decimal with exactly two fraction
// digits, the format payment providers expect.
func ValidAmount(s string) bool {
	return amountPattern.MatchString(s)
}

// Config describes the product being sold.
type Config struct {
	APIKey      string `yaml:"apiKey,omitempty"`
	AppURL      string `yaml:"appUrl"`
	Amount      string `yaml:"amount"`
	Currency    string `yaml:"currency"`
	Description string `yaml:"description"`
	Method      string `yaml:"method"`
}

// DefaultConfig returns the standard license offer for appURL.
func DefaultConfig(appURL string) Config {
	return Config{AppURL: appURL}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Amount == "" {
		c.Amount = DefaultAmount
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Description == "" {
		c.Description = DefaultDescription
	}
	if c.Method == "" {
		c.Method = DefaultMethod
	}
	return c
}

// RedirectURL is where the customer lands after checkout.
func (c Config) RedirectURL() string {
	return strings.TrimRight(c.AppURL, "/") + DefaultRedirect
}

// WebhookURL is where the provider reports payment status changes.
func (c Config) WebhookURL() string {
	return strings.TrimRight(c.AppURL, "/") + DefaultWebhook
}

// PaymentRequest is a provider-neutral payment creation request.
type PaymentRequest struct {
	Amount      string
	Currency    string
	Description string
	Method      string
	RedirectURL string
	WebhookURL  string
}

// Payment is the provider-neutral view of a payment.
type Payment struct {
	ID          string
	Status      string
	CheckoutURL string
}

// Paid reports whether the payment completed.
func (p Payment) Paid() bool {
	return p.Status == StatusPaid
}

// Provider creates and looks up payments.
type Provider interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (Payment, error)
	GetPayment(ctx context.Context, id string) (Payment, error)
}

// Activator grants the license for a paid payment.
type Activator interface {
	Activate(ctx context.Context, payment Payment) error
}

// ActivatorFunc adapts a function to Activator.
type ActivatorFunc func(ctx context.Context, payment Payment) error

func (f ActivatorFunc) Activate(ctx context.Context, payment Payment) error {
	return f(ctx, payment)
}

// LogActivator only records the activation. Persisting licenses is left to
// the deployment.
type LogActivator struct {
	Logger zl.Logger
}

func (a LogActivator) Activate(ctx context.Context, payment Payment) error {
	l := logging.FromContextOr(ctx, a.Logger)
	l.Info().Str("payment", payment.ID).Msg("license activated")
	return nil
}

// Service runs the purchase flow.
type Service struct {
	cfg       Config
	provider  Provider
	activator Activator
	logger    zl.Logger
}

type Option func(*Service)

// WithProvider sets the payment provider. Without one, a Mollie provider is
// built from Config.APIKey.
func WithProvider(p Provider) Option {
	return func(s *Service) {
		s.provider = p
	}
}

// WithActivator replaces the LogActivator.
func WithActivator(a Activator) Option {
	return func(s *Service) {
		if a != nil {
			s.activator = a
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l zl.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService builds a Service. A missing API key is not an error here; the
// purchase calls report ErrMissingAPIKey instead so the rest of the
// application can run without payments configured.
func NewService(cfg Config, options ...Option) (*Service, error) {
	s := &Service{cfg: cfg.withDefaults(), logger: logging.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if !ValidAmount(s.cfg.Amount) {
		return nil, fmt.Errorf("license: invalid amount %q", s.cfg.Amount)
	}
	if s.activator == nil {
		s.activator = LogActivator{Logger: s.logger}
	}
	if s.provider == nil && s.cfg.APIKey != "" {
		provider, err := NewMollieProvider(s.cfg.APIKey, logging.Client(0, s.logger))
		if err != nil {
			return nil, err
		}
		s.provider = provider
	}
	return s, nil
}

// Enabled reports whether payments can be created.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Create starts a payment and returns the checkout URL the customer must
// be sent to.
func (s *Service) Create(ctx context.Context) (string, error) {
	if s.provider == nil {
		return "", ErrMissingAPIKey
	}
	payment, err := s.provider.CreatePayment(ctx, PaymentRequest{
		Amount:      s.cfg.Amount,
		Currency:    s.cfg.Currency,
		Description: s.cfg.Description,
		Method:      s.cfg.Method,
		RedirectURL: s.cfg.RedirectURL(),
		WebhookURL:  s.cfg.WebhookURL(),
	})
	if err != nil {
		return "", fmt.Errorf("license: create payment: %w", err)
	}
	if payment.CheckoutURL == "" {
		return "", ErrNoCheckoutURL
	}
	s.log(ctx).Info().Str("payment", payment.ID).Msg("payment created")
	return payment.CheckoutURL, nil
}

// HandleWebhook looks up payment id and activates the license when it is
// paid. Any other status is acknowledged without action.
func (s *Service) HandleWebhook(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if s.provider == nil {
		return ErrMissingAPIKey
	}
	payment, err := s.provider.GetPayment(ctx, id)
	if err != nil {
		return fmt.Errorf("license: get payment %s: %w", id, err)
	}
	if !payment.Paid() {
		s.log(ctx).Debug().Str("payment", id).Str("status", payment.Status).Msg("payment not paid")
		return nil
	}
	if err := s.activator.Activate(ctx, payment); err != nil {
		return fmt.Errorf("license: activate %s: %w", id, err)
	}
	return nil
}

func (s *Service) log(ctx context.Context) *zl.Logger {
	l := logging.FromContextOr(ctx, s.logger)
	return &l
}
