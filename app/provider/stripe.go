package provider

import (
	"context"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

type StripeConfig struct {
	SecretKey string

	// APIBaseURL overrides the Stripe API endpoint. Empty means production.
	APIBaseURL string

	// ExpandBalanceTransaction also expands the charge's balance transaction
	// so processor fees flow into the normalized record. Off by default,
	// which keeps the documented fee-of-zero behavior.
	ExpandBalanceTransaction bool

	HTTPTimeout time.Duration
}

// StripeProcessor resolves charge and payment-intent ids against the Stripe
// API, expanding the linked objects the reconciliation pipeline needs.
type StripeProcessor struct {
	cfg StripeConfig
	api *client.API
}

func NewStripeProcessor(cfg StripeConfig) *StripeProcessor {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.APIBaseURL != "" {
		backendCfg.URL = stripe.String(cfg.APIBaseURL)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
	})

	return &StripeProcessor{cfg: cfg, api: api}
}

func (p *StripeProcessor) FetchCharge(ctx context.Context, id string) (*stripe.Charge, error) {
	params := &stripe.ChargeParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("payment_intent")
	if p.cfg.ExpandBalanceTransaction {
		params.AddExpand("balance_transaction")
	}

	return p.api.Charges.Get(id, params)
}

func (p *StripeProcessor) FetchPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")
	params.AddExpand("payment_method")
	params.AddExpand("customer")
	if p.cfg.ExpandBalanceTransaction {
		params.AddExpand("latest_charge.balance_transaction")
	}

	return p.api.PaymentIntents.Get(id, params)
}
