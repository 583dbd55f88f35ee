package husbandry

import (
	"context"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

// PoultryInput carries the husbandry profile fields supplied by the caller.
type PoultryInput struct {
	TypeOfPoultry    string
	AgeWeeks         uint64
	FeedType         string
	VaccinationWeeks uint64
}

// PoultryService stores husbandry profiles keyed by a generated NFC tag id.
type PoultryService struct {
	ledger[models.PoultryRecord]
}

// Create stores a new profile under a fresh tag.
func (s *PoultryService) Create(ctx context.Context, in PoultryInput) (models.PoultryRecord, error) {
	rec := models.PoultryRecord{
		NFCTagID:         s.ids.Next(),
		CreatedAt:        s.clock.Now(),
		TypeOfPoultry:    in.TypeOfPoultry,
		AgeWeeks:         in.AgeWeeks,
		FeedType:         in.FeedType,
		VaccinationWeeks: in.VaccinationWeeks,
	}
	return s.insert(ctx, models.EventProfiled, rec.NFCTagID, rec)
}

// GetByID returns the profile for the tag; ok is false when absent.
func (s *PoultryService) GetByID(ctx context.Context, tag identity.Identifier) (models.PoultryRecord, bool, error) {
	return s.get(ctx, tag)
}

// List returns every profile in store order.
func (s *PoultryService) List(ctx context.Context) ([]models.PoultryRecord, error) {
	return s.list(ctx)
}
