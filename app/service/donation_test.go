package service

import (
	"context"
	"errors"
	"testing"

	stripe "github.com/stripe/stripe-go/v74"

	"github.com/kinship-canada/ms-go-donations/app/entity"
	"github.com/kinship-canada/ms-go-donations/app/mapper"
	"github.com/kinship-canada/ms-go-donations/app/resolver"
	"github.com/kinship-canada/ms-go-donations/app/schema"
)

type serviceProcessor struct {
	charge    *stripe.Charge
	chargeErr error
	intent    *stripe.PaymentIntent
	intentErr error

	fetchCalls int
}

func (p *serviceProcessor) FetchCharge(_ context.Context, _ string) (*stripe.Charge, error) {
	p.fetchCalls++
	if p.chargeErr != nil {
		return nil, p.chargeErr
	}
	return p.charge, nil
}

func (p *serviceProcessor) FetchPaymentIntent(_ context.Context, _ string) (*stripe.PaymentIntent, error) {
	p.fetchCalls++
	if p.intentErr != nil {
		return nil, p.intentErr
	}
	return p.intent, nil
}

func wellFormedCharge() *stripe.Charge {
	return &stripe.Charge{
		ID:       "ch_ABC123",
		Amount:   5000,
		Created:  1700000000,
		Currency: "cad",
		Status:   "succeeded",
		Metadata: map[string]string{
			"internal_donation_id":     "don_1",
			"internal_donation_status": "fully_distributed",
			"amount_donated_in_cents":  "5000",
		},
		PaymentMethodDetails: &stripe.ChargePaymentMethodDetails{
			Card: &stripe.ChargePaymentMethodDetailsCard{
				Last4:    "4242",
				ExpMonth: 12,
				ExpYear:  2030,
			},
		},
		Customer: &stripe.Customer{
			ID:    "cus_1",
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Address: &stripe.Address{
				City:       "Toronto",
				Country:    "CA",
				Line1:      "1 Front St W",
				PostalCode: "M5J 2X5",
				State:      "ON",
			},
		},
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
	}
}

func newDonationServiceForTest(processor *serviceProcessor) *DonationService {
	return NewDonationService(
		resolver.New(processor),
		mapper.NewDonationMapper(mapper.Options{}),
	)
}

func TestReconcileChargeReference(t *testing.T) {
	processor := &serviceProcessor{charge: wellFormedCharge()}
	svc := newDonationServiceForTest(processor)

	donation, err := svc.Reconcile(context.Background(), "ch_ABC123")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if donation.ID != "don_1" {
		t.Fatalf("expected donation id from metadata, got %s", donation.ID)
	}
	if got := donation.CreatedAt.UnixMilli(); got != 1700000000000 {
		t.Fatalf("expected charge seconds scaled to milliseconds, got %d", got)
	}
	if donation.DonationDetails.Status != entity.DonationStatusFullyDistributed {
		t.Fatalf("unexpected donation status: %s", donation.DonationDetails.Status)
	}
	if donation.PaymentDetails.PaymentMethod.CreditCard == nil || donation.PaymentDetails.PaymentMethod.CreditCard.CCEndsIn != "4242" {
		t.Fatal("expected credit card branch with masked digits")
	}
	if processor.fetchCalls != 1 {
		t.Fatalf("expected exactly one processor fetch, got %d", processor.fetchCalls)
	}
}

func TestReconcileInvalidReference(t *testing.T) {
	processor := &serviceProcessor{}
	svc := newDonationServiceForTest(processor)

	_, err := svc.Reconcile(context.Background(), "not-a-reference")
	if !errors.Is(err, resolver.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if processor.fetchCalls != 0 {
		t.Fatalf("expected no processor fetch, got %d", processor.fetchCalls)
	}
}

func TestReconcileIncompletePaymentIntent(t *testing.T) {
	processor := &serviceProcessor{intent: &stripe.PaymentIntent{ID: "pi_1"}}
	svc := newDonationServiceForTest(processor)

	_, err := svc.Reconcile(context.Background(), "pi_1")
	if !errors.Is(err, resolver.ErrIncompleteDonation) {
		t.Fatalf("expected ErrIncompleteDonation, got %v", err)
	}
}

func TestReconcileSurfacesValidationFailure(t *testing.T) {
	charge := wellFormedCharge()
	charge.Currency = "usd"
	processor := &serviceProcessor{charge: charge}
	svc := newDonationServiceForTest(processor)

	_, err := svc.Reconcile(context.Background(), "ch_ABC123")

	var validationErr *schema.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.ChargeID != "ch_ABC123" {
		t.Fatalf("expected charge id in validation error, got %q", validationErr.ChargeID)
	}
	if validationErr.Rule != schema.RuleCurrency {
		t.Fatalf("expected currency rule, got %s", validationErr.Rule)
	}
}

func TestReconcileSurfacesUpstreamFailure(t *testing.T) {
	processor := &serviceProcessor{chargeErr: errors.New("api unreachable")}
	svc := newDonationServiceForTest(processor)

	_, err := svc.Reconcile(context.Background(), "ch_ABC123")

	var upstreamErr *resolver.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
