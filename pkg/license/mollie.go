package license

import (
	"context"
	"net/http"
	"strings"

	"github.com/VictorAvelar/mollie-api-go/v4/mollie"
)

// MollieProvider implements Provider with the Mollie payments API.
type MollieProvider struct {
	client *mollie.Client
}

// NewMollieProvider returns a provider authenticated with apiKey. A nil
// httpClient uses the library default.
func NewMollieProvider(apiKey string, httpClient *http.Client) (*MollieProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := mollie.NewClient(httpClient, mollie.NewAPIConfig(true))
	if err != nil {
		return nil, err
	}
	if err := client.WithAuthenticationValue(apiKey); err != nil {
		return nil, err
	}
	return &MollieProvider{client: client}, nil
}

func (p *MollieProvider) CreatePayment(ctx context.Context, req PaymentRequest) (Payment, error) {
	create := mollie.CreatePayment{
		Description: req.Description,
		RedirectURL: req.RedirectURL,
		WebhookURL:  req.WebhookURL,
		Amount: &mollie.Amount{
			Currency: req.Currency,
			Value:    req.Amount,
		},
	}
	if req.Method != "" {
		create.Method = []mollie.PaymentMethod{mollie.PaymentMethod(req.Method)}
	}

	_, payment, err := p.client.Payments.Create(ctx, create, nil)
	if err != nil {
		return Payment{}, err
	}
	return fromMollie(payment), nil
}

func (p *MollieProvider) GetPayment(ctx context.Context, id string) (Payment, error) {
	_, payment, err := p.client.Payments.Get(ctx, id, nil)
	if err != nil {
		return Payment{}, err
	}
	return fromMollie(payment), nil
}

func fromMollie(p *mollie.Payment) Payment {
	if p == nil {
		return Payment{}
	}
	out := Payment{ID: p.ID, Status: p.Status}
	if p.Links.Checkout != nil {
		out.CheckoutURL = p.Links.Checkout.Href
	}
	return out
}
