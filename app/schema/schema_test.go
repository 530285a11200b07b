package schema

import (
	"errors"
	"testing"

	stripe "github.com/stripe/stripe-go/v74"

	"github.com/kinship-canada/ms-go-donations/app/provider"
)

func validRawDonation() *provider.RawDonation {
	return &provider.RawDonation{
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
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
		Charge: &stripe.Charge{
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
		},
	}
}

func expectRuleFailure(t *testing.T, raw *provider.RawDonation, rule string) *ValidationError {
	t.Helper()
	_, err := Validate(raw)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Rule != rule {
		t.Fatalf("expected rule %q to fail, got %q: %s", rule, validationErr.Rule, validationErr.Message)
	}
	return validationErr
}

func TestValidateAcceptsWellFormedGraph(t *testing.T) {
	validated, err := Validate(validRawDonation())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if validated.Metadata.InternalDonationID != "don_1" {
		t.Fatalf("unexpected internal donation id: %s", validated.Metadata.InternalDonationID)
	}
	if validated.Metadata.AmountDonatedInCents != 5000 {
		t.Fatalf("unexpected donated amount: %d", validated.Metadata.AmountDonatedInCents)
	}
	if validated.Metadata.Cause != nil {
		t.Fatal("expected no cause when metadata carries none")
	}
}

func TestValidateParsesCause(t *testing.T) {
	raw := validRawDonation()
	raw.Charge.Metadata["cause"] = `{"name":"Water Wells","region":"East Africa"}`

	validated, err := Validate(raw)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if validated.Metadata.Cause == nil {
		t.Fatal("expected parsed cause")
	}
	if validated.Metadata.Cause.Name != "Water Wells" || validated.Metadata.Cause.Region != "East Africa" {
		t.Fatalf("unexpected cause: %+v", validated.Metadata.Cause)
	}
}

func TestValidateRejectsMissingCharge(t *testing.T) {
	raw := validRawDonation()
	raw.Charge = nil
	expectRuleFailure(t, raw, RuleCharge)
}

func TestValidateRejectsMissingPaymentIntent(t *testing.T) {
	raw := validRawDonation()
	raw.PaymentIntent = nil
	expectRuleFailure(t, raw, RulePaymentIntent)
}

func TestValidateRejectsShortOrSpacelessName(t *testing.T) {
	raw := validRawDonation()
	raw.Customer.Name = "Jo"
	expectRuleFailure(t, raw, RuleCustomerName)

	raw = validRawDonation()
	raw.Customer.Name = "Madonna"
	expectRuleFailure(t, raw, RuleCustomerName)
}

func TestValidateRejectsBadEmail(t *testing.T) {
	raw := validRawDonation()
	raw.Customer.Email = "not-an-email"
	expectRuleFailure(t, raw, RuleCustomerEmail)

	raw = validRawDonation()
	raw.Customer.Email = ""
	expectRuleFailure(t, raw, RuleCustomerEmail)
}

func TestValidateRejectsIncompleteAddress(t *testing.T) {
	raw := validRawDonation()
	raw.Customer.Address = nil
	expectRuleFailure(t, raw, RuleCustomerAddress)

	raw = validRawDonation()
	raw.Customer.Address.PostalCode = ""
	expectRuleFailure(t, raw, RuleCustomerAddress)
}

func TestValidateRejectsMalformedMetadata(t *testing.T) {
	raw := validRawDonation()
	delete(raw.Charge.Metadata, "internal_donation_id")
	expectRuleFailure(t, raw, RuleMetadata)

	raw = validRawDonation()
	raw.Charge.Metadata["internal_donation_status"] = "refunded"
	expectRuleFailure(t, raw, RuleMetadata)

	raw = validRawDonation()
	raw.Charge.Metadata["amount_donated_in_cents"] = "lots"
	expectRuleFailure(t, raw, RuleMetadata)

	raw = validRawDonation()
	raw.Charge.Metadata["amount_donated_in_cents"] = "-1"
	expectRuleFailure(t, raw, RuleMetadata)

	raw = validRawDonation()
	raw.Charge.Metadata["cause"] = `{"name":"Water Wells"}`
	expectRuleFailure(t, raw, RuleMetadata)
}

func TestValidateRequiresExactlyOnePaymentMethod(t *testing.T) {
	raw := validRawDonation()
	raw.Charge.PaymentMethodDetails.ACSSDebit = &stripe.ChargePaymentMethodDetailsACSSDebit{Last4: "6789"}
	expectRuleFailure(t, raw, RulePaymentMethodDetails)

	raw = validRawDonation()
	raw.Charge.PaymentMethodDetails.Card = nil
	expectRuleFailure(t, raw, RulePaymentMethodDetails)

	raw = validRawDonation()
	raw.Charge.PaymentMethodDetails = nil
	expectRuleFailure(t, raw, RulePaymentMethodDetails)
}

func TestValidateRejectsNonCADCurrency(t *testing.T) {
	raw := validRawDonation()
	raw.Charge.Currency = "usd"

	validationErr := expectRuleFailure(t, raw, RuleCurrency)
	if validationErr.ChargeID != "ch_ABC123" {
		t.Fatalf("expected charge id in validation error, got %q", validationErr.ChargeID)
	}

	// Restoring only the currency flips the result back to success.
	raw.Charge.Currency = "cad"
	if _, err := Validate(raw); err != nil {
		t.Fatalf("expected currency fix to validate, got %v", err)
	}
}
