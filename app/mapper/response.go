package mapper

import (
	"github.com/kinship-canada/ms-go-donations/app/entity"
	"github.com/kinship-canada/ms-go-donations/app/types"
)

func DonationToResponse(item *entity.Donation) *types.Donation {
	if item == nil {
		return nil
	}

	return &types.Donation{
		ID:           item.ID,
		CreatedAt:    item.CreatedAt.UnixMilli(),
		ProofDetails: cloneStrings(item.ProofDetails),
		DonorDetails: types.DonorDetails{
			FirstName: item.DonorDetails.FirstName,
			LastName:  item.DonorDetails.LastName,
			Email:     item.DonorDetails.Email,
			Address: types.Address{
				Street:  item.DonorDetails.Address.Street,
				City:    item.DonorDetails.Address.City,
				Zip:     item.DonorDetails.Address.Zip,
				State:   item.DonorDetails.Address.State,
				Country: item.DonorDetails.Address.Country,
			},
			StripeCustomerIDs: cloneStrings(item.DonorDetails.StripeCustomerIDs),
		},
		DonationDetails: types.DonationDetails{
			Status:               string(item.DonationDetails.Status),
			Cause:                causeToResponse(item.DonationDetails.Cause),
			AdheringLabels:       cloneStrings(item.DonationDetails.AdheringLabels),
			DonatedAt:            item.DonationDetails.DonatedAt.UnixMilli(),
			AmountDonatedInCents: item.DonationDetails.AmountDonatedInCents,
		},
		PaymentDetails: types.PaymentDetails{
			TransactionStatus:    string(item.PaymentDetails.TransactionStatus),
			AmountChargedInCents: item.PaymentDetails.AmountChargedInCents,
			Currency:             string(item.PaymentDetails.Currency),
			PaymentMethod: types.PaymentMethod{
				CreditCard: creditCardToResponse(item.PaymentDetails.PaymentMethod.CreditCard),
				AcssDebit:  acssDebitToResponse(item.PaymentDetails.PaymentMethod.AcssDebit),
				Cash:       item.PaymentDetails.PaymentMethod.Cash,
			},
		},
	}
}

func causeToResponse(cause *entity.Cause) *types.Cause {
	if cause == nil {
		return nil
	}
	return &types.Cause{Name: cause.Name, Region: cause.Region}
}

func creditCardToResponse(card *entity.CreditCardDetails) *types.CreditCardDetails {
	if card == nil {
		return nil
	}
	return &types.CreditCardDetails{
		ProcessorFeeInCents:   card.ProcessorFeeInCents,
		CCEndsIn:              card.CCEndsIn,
		CCExpiryMonth:         card.CCExpiryMonth,
		CCExpiryYear:          card.CCExpiryYear,
		StripePaymentIntentID: card.StripePaymentIntentID,
		StripeCustomerID:      card.StripeCustomerID,
		StripeBalanceTxnID:    card.StripeBalanceTxnID,
		StripeChargeID:        card.StripeChargeID,
	}
}

func acssDebitToResponse(debit *entity.AcssDebitDetails) *types.AcssDebitDetails {
	if debit == nil {
		return nil
	}
	return &types.AcssDebitDetails{
		ProcessorFeeInCents:   debit.ProcessorFeeInCents,
		BankName:              debit.BankName,
		Fingerprint:           debit.Fingerprint,
		InstitutionNumber:     debit.InstitutionNumber,
		AccountEndsIn:         debit.AccountEndsIn,
		TransitNumber:         debit.TransitNumber,
		StripePaymentIntentID: debit.StripePaymentIntentID,
		StripeCustomerID:      debit.StripeCustomerID,
		StripeBalanceTxnID:    debit.StripeBalanceTxnID,
		StripeChargeID:        debit.StripeChargeID,
	}
}

func cloneStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
