package service

import (
	"context"

	"github.com/kinship-canada/ms-go-donations/app/entity"
	"github.com/kinship-canada/ms-go-donations/app/mapper"
	"github.com/kinship-canada/ms-go-donations/app/provider"
	"github.com/kinship-canada/ms-go-donations/app/schema"
)

type donationResolver interface {
	Resolve(ctx context.Context, reference string) (*provider.RawDonation, error)
}

// DonationService reconciles donation references against the payment
// processor: resolve the object graph, validate it, normalize it. Stateless;
// repeated calls for the same reference re-fetch from the processor, and
// because normalization is a pure function of fetched state, concurrent
// calls for the same donation converge regardless of ordering.
type DonationService struct {
	resolver donationResolver
	mapper   *mapper.DonationMapper
}

func NewDonationService(resolver donationResolver, donationMapper *mapper.DonationMapper) *DonationService {
	return &DonationService{
		resolver: resolver,
		mapper:   donationMapper,
	}
}

func (s *DonationService) Reconcile(ctx context.Context, reference string) (*entity.Donation, error) {
	raw, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return nil, err
	}

	validated, err := schema.Validate(raw)
	if err != nil {
		return nil, err
	}

	return s.mapper.Donation(validated)
}
