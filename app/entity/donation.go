package entity

import "time"

type DonationStatus string

const (
	DonationStatusProcessing           DonationStatus = "PROCESSING"
	DonationStatusDeliveredToPartners  DonationStatus = "DELIVERED_TO_PARTNERS"
	DonationStatusPartiallyDistributed DonationStatus = "PARTIALLY_DISTRIBUTED"
	DonationStatusFullyDistributed     DonationStatus = "FULLY_DISTRIBUTED"
)

type TransactionStatus string

const (
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

type Currency string

const CurrencyCAD Currency = "CAD"

// Donation is the canonical internal record produced by reconciliation.
// It is a value type with no references back to the processor object graph.
type Donation struct {
	ID        string
	CreatedAt time.Time

	ProofDetails []string

	DonorDetails    DonorDetails
	DonationDetails DonationDetails
	PaymentDetails  PaymentDetails
}

type DonorDetails struct {
	FirstName string
	LastName  string
	Email     string
	Address   Address

	// All processor customer ids ever associated with this donor.
	// Starts with a single element at reconciliation time.
	StripeCustomerIDs []string
}

type Address struct {
	Street  string
	City    string
	Zip     string
	State   string
	Country string
}

type Cause struct {
	Name   string
	Region string
}

type DonationDetails struct {
	Status               DonationStatus
	Cause                *Cause
	AdheringLabels       []string
	DonatedAt            time.Time
	AmountDonatedInCents int64
}

type PaymentDetails struct {
	TransactionStatus    TransactionStatus
	AmountChargedInCents int64
	Currency             Currency
	PaymentMethod        PaymentMethod
}

// PaymentMethod carries exactly one populated branch. Cash has no
// reconciliation path and is always false.
type PaymentMethod struct {
	CreditCard *CreditCardDetails
	AcssDebit  *AcssDebitDetails
	Cash       bool
}

type CreditCardDetails struct {
	ProcessorFeeInCents   int64
	CCEndsIn              string
	CCExpiryMonth         int64
	CCExpiryYear          int64
	StripePaymentIntentID string
	StripeCustomerID      string
	StripeBalanceTxnID    string
	StripeChargeID        string
}

type AcssDebitDetails struct {
	ProcessorFeeInCents   int64
	BankName              string
	Fingerprint           string
	InstitutionNumber     string
	AccountEndsIn         string
	TransitNumber         string
	StripePaymentIntentID string
	StripeCustomerID      string
	StripeBalanceTxnID    string
	StripeChargeID        string
}
