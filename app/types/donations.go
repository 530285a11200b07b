package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ReconcileDonationRequest struct {
	Reference string
}

func NewReconcileDonationRequestFromContext(ctx echo.Context) (*ReconcileDonationRequest, error) {
	return &ReconcileDonationRequest{
		Reference: strings.TrimSpace(ctx.Param("reference")),
	}, nil
}

func (r *ReconcileDonationRequest) Validate() error {
	if r.Reference == "" {
		return errors.New("reference is required")
	}
	return nil
}

type DonationEnvelopeResponse struct {
	Donation *Donation `json:"donation"`
}

// Donation is the wire form of the canonical donation record. Timestamps
// are milliseconds since epoch.
type Donation struct {
	ID              string          `json:"id"`
	CreatedAt       int64           `json:"createdAt"`
	ProofDetails    []string        `json:"proofDetails"`
	DonorDetails    DonorDetails    `json:"donorDetails"`
	DonationDetails DonationDetails `json:"donationDetails"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
}

type DonorDetails struct {
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	Address           Address  `json:"address"`
	StripeCustomerIDs []string `json:"stripeCustomerIds"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type Cause struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type DonationDetails struct {
	Status               string   `json:"status"`
	Cause                *Cause   `json:"cause"`
	AdheringLabels       []string `json:"adheringLabels"`
	DonatedAt            int64    `json:"donatedAt"`
	AmountDonatedInCents int64    `json:"amountDonatedInCents"`
}

type PaymentDetails struct {
	TransactionStatus    string        `json:"transactionStatus"`
	AmountChargedInCents int64         `json:"amountChargedInCents"`
	Currency             string        `json:"currency"`
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
}

type PaymentMethod struct {
	CreditCard *CreditCardDetails `json:"creditCard"`
	AcssDebit  *AcssDebitDetails  `json:"acssDebit"`
	Cash       bool               `json:"cash"`
}

type CreditCardDetails struct {
	ProcessorFeeInCents   int64  `json:"processorFeeInCents"`
	CCEndsIn              string `json:"ccEndsIn"`
	CCExpiryMonth         int64  `json:"ccExpiryMonth"`
	CCExpiryYear          int64  `json:"ccExpiryYear"`
	StripePaymentIntentID string `json:"stripePaymentIntentId"`
	StripeCustomerID      string `json:"stripeCustomerId"`
	StripeBalanceTxnID    string `json:"stripeBalanceTxnId"`
	StripeChargeID        string `json:"stripeChargeId"`
}

type AcssDebitDetails struct {
	ProcessorFeeInCents   int64  `json:"processorFeeInCents"`
	BankName              string `json:"bankName"`
	Fingerprint           string `json:"fingerPrint"`
	InstitutionNumber     string `json:"institutionNumber"`
	AccountEndsIn         string `json:"accountEndsIn"`
	TransitNumber         string `json:"transitNumber"`
	StripePaymentIntentID string `json:"stripePaymentIntentId"`
	StripeCustomerID      string `json:"stripeCustomerId"`
	StripeBalanceTxnID    string `json:"stripeBalanceTxnId"`
	StripeChargeID        string `json:"stripeChargeId"`
}
