package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kinship-canada/ms-go-donations/app/provider"
)

var (
	ErrInvalidReference = errors.New("invalid donation reference")

	// ErrInternalReference marks a well-formed internal donation id (UUID).
	// Internal ids identify stored donations and cannot be resolved against
	// the payment processor.
	ErrInternalReference = errors.New("reference is an internal donation id")

	// ErrIncompleteDonation marks a payment intent with no charge attached
	// yet. Expected for pending async payment methods such as ACSS debit;
	// callers should retry reconciliation later.
	ErrIncompleteDonation = errors.New("incomplete donation")
)

// UpstreamError wraps a processor client failure with the reference that
// triggered the fetch.
type UpstreamError struct {
	Reference string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetch %s from processor: %v", e.Reference, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type ReferenceKind int

const (
	KindInvalid ReferenceKind = iota
	KindCharge
	KindPaymentIntent
	KindInternal
)

// Classify inspects an opaque donation reference. The prefix convention is
// load-bearing: charge ids start with "ch_", payment-intent ids with "pi_",
// and internal ids are UUIDs. Checks are case-sensitive and ordered.
func Classify(reference string) ReferenceKind {
	switch {
	case reference == "":
		return KindInvalid
	case strings.HasPrefix(reference, "ch_"):
		return KindCharge
	case strings.HasPrefix(reference, "pi_"):
		return KindPaymentIntent
	}
	if _, err := uuid.Parse(reference); err == nil {
		return KindInternal
	}
	return KindInvalid
}

// Resolver fetches the full processor object graph for a donation
// reference. It issues exactly one outbound fetch per call and carries no
// retry logic of its own.
type Resolver struct {
	processor provider.ProcessorClient
}

func New(processor provider.ProcessorClient) *Resolver {
	return &Resolver{processor: processor}
}

func (r *Resolver) Resolve(ctx context.Context, reference string) (*provider.RawDonation, error) {
	switch Classify(reference) {
	case KindCharge:
		return r.fromCharge(ctx, reference)
	case KindPaymentIntent:
		return r.fromPaymentIntent(ctx, reference)
	case KindInternal:
		return nil, fmt.Errorf("%w: %s", ErrInternalReference, reference)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, reference)
	}
}

func (r *Resolver) fromCharge(ctx context.Context, id string) (*provider.RawDonation, error) {
	charge, err := r.processor.FetchCharge(ctx, id)
	if err != nil {
		return nil, &UpstreamError{Reference: id, Err: err}
	}

	return &provider.RawDonation{
		PaymentIntent:      charge.PaymentIntent,
		Customer:           charge.Customer,
		Charge:             charge,
		BalanceTransaction: charge.BalanceTransaction,
	}, nil
}

func (r *Resolver) fromPaymentIntent(ctx context.Context, id string) (*provider.RawDonation, error) {
	intent, err := r.processor.FetchPaymentIntent(ctx, id)
	if err != nil {
		return nil, &UpstreamError{Reference: id, Err: err}
	}

	// A pending ACSS debit donation still has a charge object attached, so
	// a missing charge means the donation has not progressed far enough to
	// reconcile at all.
	if intent.LatestCharge == nil {
		return nil, fmt.Errorf("%w: %s has no charge attached", ErrIncompleteDonation, id)
	}

	return &provider.RawDonation{
		PaymentIntent:      intent,
		Customer:           intent.Customer,
		Charge:             intent.LatestCharge,
		BalanceTransaction: intent.LatestCharge.BalanceTransaction,
	}, nil
}
