package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/kinship-canada/ms-go-donations/app/entity"
	"github.com/kinship-canada/ms-go-donations/app/schema"
)

// UnmappedStatusError marks a charge status outside the known enumeration.
// Silently coercing an unknown status would corrupt financial state, so it
// is a hard failure.
type UnmappedStatusError struct {
	ChargeID string
	Status   string
}

func (e *UnmappedStatusError) Error() string {
	return fmt.Sprintf("charge %s has unmapped status %q", e.ChargeID, e.Status)
}

type Options struct {
	// FullStatusMapping maps all four metadata distribution statuses onto
	// distinct donation statuses. The default collapses everything except
	// fully_distributed into DELIVERED_TO_PARTNERS, matching the behavior
	// the rest of the system was built against.
	FullStatusMapping bool
}

// DonationMapper normalizes a validated processor object graph into the
// canonical Donation record. Pure mapping, no I/O.
type DonationMapper struct {
	opts Options
}

func NewDonationMapper(opts Options) *DonationMapper {
	return &DonationMapper{opts: opts}
}

func (m *DonationMapper) Donation(v *schema.ValidatedDonation) (*entity.Donation, error) {
	charge := v.Charge
	customer := v.Customer
	metadata := v.Metadata

	txStatus, err := transactionStatus(charge.ID, string(charge.Status))
	if err != nil {
		return nil, err
	}

	// Charge timestamps are seconds since epoch; the canonical record uses
	// millisecond resolution.
	createdAt := time.UnixMilli(charge.Created * 1000).UTC()

	firstName, lastName := splitName(customer.Name)

	var fee int64
	var balanceTxnID string
	if v.BalanceTransaction != nil {
		fee = v.BalanceTransaction.Fee
		balanceTxnID = v.BalanceTransaction.ID
	}

	paymentMethod := entity.PaymentMethod{Cash: false}
	if card := charge.PaymentMethodDetails.Card; card != nil {
		paymentMethod.CreditCard = &entity.CreditCardDetails{
			ProcessorFeeInCents:   fee,
			CCEndsIn:              card.Last4,
			CCExpiryMonth:         card.ExpMonth,
			CCExpiryYear:          card.ExpYear,
			StripePaymentIntentID: v.PaymentIntent.ID,
			StripeCustomerID:      customer.ID,
			StripeBalanceTxnID:    balanceTxnID,
			StripeChargeID:        charge.ID,
		}
	}
	if debit := charge.PaymentMethodDetails.ACSSDebit; debit != nil {
		paymentMethod.AcssDebit = &entity.AcssDebitDetails{
			ProcessorFeeInCents:   fee,
			BankName:              debit.BankName,
			Fingerprint:           debit.Fingerprint,
			InstitutionNumber:     debit.InstitutionNumber,
			AccountEndsIn:         debit.Last4,
			TransitNumber:         debit.TransitNumber,
			StripePaymentIntentID: v.PaymentIntent.ID,
			StripeCustomerID:      customer.ID,
			StripeBalanceTxnID:    balanceTxnID,
			StripeChargeID:        charge.ID,
		}
	}

	return &entity.Donation{
		ID:           metadata.InternalDonationID,
		CreatedAt:    createdAt,
		ProofDetails: []string{},
		DonorDetails: entity.DonorDetails{
			FirstName: firstName,
			LastName:  lastName,
			Email:     customer.Email,
			Address: entity.Address{
				Street:  customer.Address.Line1,
				City:    customer.Address.City,
				Zip:     customer.Address.PostalCode,
				State:   customer.Address.State,
				Country: customer.Address.Country,
			},
			StripeCustomerIDs: []string{customer.ID},
		},
		DonationDetails: entity.DonationDetails{
			Status:               m.donationStatus(metadata.InternalDonationStatus),
			Cause:                metadata.Cause,
			AdheringLabels:       []string{},
			DonatedAt:            createdAt,
			AmountDonatedInCents: metadata.AmountDonatedInCents,
		},
		PaymentDetails: entity.PaymentDetails{
			TransactionStatus:    txStatus,
			AmountChargedInCents: charge.Amount,
			// Only cad passes validation, so the canonical currency is fixed.
			Currency:      entity.CurrencyCAD,
			PaymentMethod: paymentMethod,
		},
	}, nil
}

func (m *DonationMapper) donationStatus(metadataStatus string) entity.DonationStatus {
	if m.opts.FullStatusMapping {
		switch metadataStatus {
		case schema.MetadataStatusProcessing:
			return entity.DonationStatusProcessing
		case schema.MetadataStatusPartiallyDistributed:
			return entity.DonationStatusPartiallyDistributed
		case schema.MetadataStatusFullyDistributed:
			return entity.DonationStatusFullyDistributed
		default:
			return entity.DonationStatusDeliveredToPartners
		}
	}

	if metadataStatus == schema.MetadataStatusFullyDistributed {
		return entity.DonationStatusFullyDistributed
	}
	return entity.DonationStatusDeliveredToPartners
}

func transactionStatus(chargeID, chargeStatus string) (entity.TransactionStatus, error) {
	switch chargeStatus {
	case "succeeded":
		return entity.TransactionStatusSucceeded, nil
	case "pending":
		return entity.TransactionStatusPending, nil
	case "failed":
		return entity.TransactionStatusFailed, nil
	default:
		return "", &UnmappedStatusError{ChargeID: chargeID, Status: chargeStatus}
	}
}

// splitName splits a "First Last" display name on the first space only;
// everything after the first space belongs to the last name.
func splitName(name string) (string, string) {
	idx := strings.Index(name, " ")
	return name[:idx], name[idx+1:]
}
