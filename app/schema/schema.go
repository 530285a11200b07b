package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	stripe "github.com/stripe/stripe-go/v74"

	"github.com/kinship-canada/ms-go-donations/app/entity"
	"github.com/kinship-canada/ms-go-donations/app/provider"
)

// Donation statuses carried in charge metadata, controlled by the
// processor-side integration.
const (
	MetadataStatusProcessing           = "processing"
	MetadataStatusDeliveredToPartners  = "delivered_to_partners"
	MetadataStatusPartiallyDistributed = "partially_distributed"
	MetadataStatusFullyDistributed     = "fully_distributed"
)

// Validation rule identifiers, reported on failure.
const (
	RuleCharge               = "charge"
	RuleCustomer             = "customer"
	RuleCustomerName         = "customer.name"
	RuleCustomerEmail        = "customer.email"
	RuleCustomerAddress      = "customer.address"
	RulePaymentIntent        = "payment_intent"
	RuleMetadata             = "charge.metadata"
	RulePaymentMethodDetails = "charge.payment_method_details"
	RuleCurrency             = "charge.currency"
)

// DonationMetadata is the schema-validated, parsed form of the donation
// fields the processor-side integration stores in charge metadata.
type DonationMetadata struct {
	InternalDonationID     string
	InternalDonationStatus string
	AmountDonatedInCents   int64
	Cause                  *entity.Cause
}

// ValidatedDonation is a RawDonation that passed every schema check, plus
// the parsed metadata. Downstream code only ever sees this type.
type ValidatedDonation struct {
	PaymentIntent      *stripe.PaymentIntent
	Customer           *stripe.Customer
	Charge             *stripe.Charge
	BalanceTransaction *stripe.BalanceTransaction
	Metadata           DonationMetadata
}

type ValidationError struct {
	ChargeID string
	Rule     string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("malformed processor response for donation %s: %s: %s", e.ChargeID, e.Rule, e.Message)
}

var validate = validator.New()

// Validate checks the fetched object graph against the donation schema and
// returns the validated graph on success. The first violated rule fails the
// whole graph; nothing is ever partially normalized.
func Validate(raw *provider.RawDonation) (*ValidatedDonation, error) {
	if raw == nil || raw.Charge == nil {
		return nil, &ValidationError{Rule: RuleCharge, Message: "charge object is missing"}
	}
	charge := raw.Charge

	if raw.PaymentIntent == nil {
		return nil, fail(charge.ID, RulePaymentIntent, "payment intent object is missing")
	}

	customer := raw.Customer
	if customer == nil {
		return nil, fail(charge.ID, RuleCustomer, "customer object is missing")
	}
	if len(customer.Name) < 3 || !strings.Contains(customer.Name, " ") {
		return nil, fail(charge.ID, RuleCustomerName, "name must be at least 3 characters and contain a space")
	}
	if err := validate.Var(customer.Email, "required,email"); err != nil {
		return nil, fail(charge.ID, RuleCustomerEmail, "email is not a valid email address")
	}
	if err := checkAddress(customer.Address); err != nil {
		return nil, fail(charge.ID, RuleCustomerAddress, err.Error())
	}

	metadata, err := parseMetadata(charge.ID, charge.Metadata)
	if err != nil {
		return nil, err
	}

	pmd := charge.PaymentMethodDetails
	if pmd == nil {
		return nil, fail(charge.ID, RulePaymentMethodDetails, "payment method details are missing")
	}
	// Exactly one of card or acss_debit, deliberately stricter than the
	// processor's own "at least one" guarantee.
	if (pmd.Card != nil) == (pmd.ACSSDebit != nil) {
		return nil, fail(charge.ID, RulePaymentMethodDetails, "exactly one of card or acss_debit must be present")
	}

	if string(charge.Currency) != "cad" {
		return nil, fail(charge.ID, RuleCurrency, fmt.Sprintf("only cad donations accepted currently, got %q", charge.Currency))
	}

	return &ValidatedDonation{
		PaymentIntent:      raw.PaymentIntent,
		Customer:           customer,
		Charge:             charge,
		BalanceTransaction: raw.BalanceTransaction,
		Metadata:           metadata,
	}, nil
}

func checkAddress(address *stripe.Address) error {
	if address == nil {
		return fmt.Errorf("address is missing")
	}
	fields := map[string]string{
		"city":        address.City,
		"country":     address.Country,
		"line1":       address.Line1,
		"postal_code": address.PostalCode,
		"state":       address.State,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("address is missing %s", name)
		}
	}
	return nil
}

func parseMetadata(chargeID string, md map[string]string) (DonationMetadata, error) {
	var result DonationMetadata

	id := md["internal_donation_id"]
	if id == "" {
		return result, fail(chargeID, RuleMetadata, "internal_donation_id is missing")
	}

	status := md["internal_donation_status"]
	switch status {
	case MetadataStatusProcessing,
		MetadataStatusDeliveredToPartners,
		MetadataStatusPartiallyDistributed,
		MetadataStatusFullyDistributed:
	default:
		return result, fail(chargeID, RuleMetadata, fmt.Sprintf("internal_donation_status %q is not a known status", status))
	}

	amountRaw, ok := md["amount_donated_in_cents"]
	if !ok {
		return result, fail(chargeID, RuleMetadata, "amount_donated_in_cents is missing")
	}
	amount, err := strconv.ParseInt(amountRaw, 10, 64)
	if err != nil || amount < 0 {
		return result, fail(chargeID, RuleMetadata, fmt.Sprintf("amount_donated_in_cents %q is not a non-negative integer", amountRaw))
	}

	var cause *entity.Cause
	if causeRaw, ok := md["cause"]; ok && causeRaw != "" {
		var parsed entity.Cause
		if err := json.Unmarshal([]byte(causeRaw), &parsed); err != nil {
			return result, fail(chargeID, RuleMetadata, "cause is not a valid json object")
		}
		if parsed.Name == "" || parsed.Region == "" {
			return result, fail(chargeID, RuleMetadata, "cause must carry both name and region")
		}
		cause = &parsed
	}

	return DonationMetadata{
		InternalDonationID:     id,
		InternalDonationStatus: status,
		AmountDonatedInCents:   amount,
		Cause:                  cause,
	}, nil
}

func fail(chargeID, rule, message string) *ValidationError {
	return &ValidationError{ChargeID: chargeID, Rule: rule, Message: message}
}
