package husbandry

import (
	"context"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

// BroilerService records broiler flock arrivals and sales.
type BroilerService struct {
	ledger[models.Broiler]
}

// Create records a new flock: available=count, sold=0.
func (s *BroilerService) Create(ctx context.Context, ageWeeks, count uint64, breed string) (models.Broiler, error) {
	return s.record(ctx, models.EventCreated, ageWeeks, count, breed)
}

// Sell records a sale as a brand-new row: available=0, sold=count. The row is
// not linked to, and does not modify, any creation row.
func (s *BroilerService) Sell(ctx context.Context, ageWeeks, count uint64, breed string) (models.Broiler, error) {
	return s.record(ctx, models.EventSold, ageWeeks, count, breed)
}

func (s *BroilerService) record(ctx context.Context, event models.EventType, ageWeeks, count uint64, breed string) (models.Broiler, error) {
	rec := models.Broiler{
		ID:               s.ids.Next(),
		Event:            event,
		AgeWeeks:         ageWeeks,
		NumberOfBroilers: count,
		Breed:            breed,
		CreatedAt:        s.clock.Now(),
	}
	if event == models.EventSold {
		rec.Sold = count
	} else {
		rec.Available = count
	}
	return s.insert(ctx, event, rec.ID, rec)
}

// GetByID returns the broiler row with the given identifier; ok is false when absent.
func (s *BroilerService) GetByID(ctx context.Context, id identity.Identifier) (models.Broiler, bool, error) {
	return s.get(ctx, id)
}

// List returns every broiler row in store order.
func (s *BroilerService) List(ctx context.Context) ([]models.Broiler, error) {
	return s.list(ctx)
}
