package husbandry

import (
	"context"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

// LayerService records layer flock arrivals and sales.
type LayerService struct {
	ledger[models.Layer]
}

// Create records a new flock: available=count, sold=0.
func (s *LayerService) Create(ctx context.Context, ageWeeks, count uint64, breed string) (models.Layer, error) {
	rec := models.Layer{
		ID:             s.ids.Next(),
		Event:          models.EventCreated,
		AgeWeeks:       ageWeeks,
		NumberOfLayers: count,
		Breed:          breed,
		CreatedAt:      s.clock.Now(),
		Available:      count,
	}
	return s.insert(ctx, models.EventCreated, rec.ID, rec)
}

// Sell records a sale row: available=0, sold=sold. NumberOfLayers keeps the
// flock size the caller reports; a zero flock size falls back to the sold
// count.
func (s *LayerService) Sell(ctx context.Context, ageWeeks, flockSize, sold uint64, breed string) (models.Layer, error) {
	if flockSize == 0 {
		flockSize = sold
	}
	rec := models.Layer{
		ID:             s.ids.Next(),
		Event:          models.EventSold,
		AgeWeeks:       ageWeeks,
		NumberOfLayers: flockSize,
		Breed:          breed,
		CreatedAt:      s.clock.Now(),
		Sold:           sold,
	}
	return s.insert(ctx, models.EventSold, rec.ID, rec)
}

// GetByID returns the layer row with the given identifier; ok is false when absent.
func (s *LayerService) GetByID(ctx context.Context, id identity.Identifier) (models.Layer, bool, error) {
	return s.get(ctx, id)
}

// List returns every layer row in store order.
func (s *LayerService) List(ctx context.Context) ([]models.Layer, error) {
	return s.list(ctx)
}
