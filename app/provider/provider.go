package provider

import (
	"context"

	stripe "github.com/stripe/stripe-go/v74"
)

// RawDonation is the transient object graph fetched from the processor for
// a single donation. Charge is always present and authoritative for money
// fields; PaymentIntent and Customer are supplementary and may be partially
// populated depending on which identifier kind resolved the graph.
// BalanceTransaction stays nil unless fee expansion is enabled on the client.
type RawDonation struct {
	PaymentIntent      *stripe.PaymentIntent
	Customer           *stripe.Customer
	Charge             *stripe.Charge
	BalanceTransaction *stripe.BalanceTransaction
}

// ProcessorClient is the injected capability for resolving processor ids to
// their expanded object graphs. Implementations own authentication, timeouts,
// and any retry policy; callers issue exactly one fetch per call.
type ProcessorClient interface {
	FetchCharge(ctx context.Context, id string) (*stripe.Charge, error)
	FetchPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}
