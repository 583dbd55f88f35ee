package husbandry

import (
	"context"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

// EggService records laid, sold and damaged eggs. Every call inserts a new
// row in which only the quantity for that event is set.
type EggService struct {
	ledger[models.Egg]
}

// RecordLaid stores laid eggs; they also count as available.
func (s *EggService) RecordLaid(ctx context.Context, breed string, count uint64) (models.Egg, error) {
	return s.record(ctx, models.EventLaid, breed, count)
}

// RecordSold stores a sale of eggs.
func (s *EggService) RecordSold(ctx context.Context, breed string, count uint64) (models.Egg, error) {
	return s.record(ctx, models.EventSold, breed, count)
}

// RecordDamaged stores eggs lost to breakage.
func (s *EggService) RecordDamaged(ctx context.Context, breed string, count uint64) (models.Egg, error) {
	return s.record(ctx, models.EventDamaged, breed, count)
}

func (s *EggService) record(ctx context.Context, event models.EventType, breed string, count uint64) (models.Egg, error) {
	rec := models.Egg{
		ID:        s.ids.Next(),
		Event:     event,
		Breed:     breed,
		CreatedAt: s.clock.Now(),
	}
	switch event {
	case models.EventLaid:
		rec.LaidEggs = count
		rec.Available = count
	case models.EventSold:
		rec.Sold = count
	case models.EventDamaged:
		rec.DamagedEggs = count
	}
	return s.insert(ctx, event, rec.ID, rec)
}

// GetByID returns the egg row with the given identifier; ok is false when absent.
func (s *EggService) GetByID(ctx context.Context, id identity.Identifier) (models.Egg, bool, error) {
	return s.get(ctx, id)
}

// List returns every egg row in store order.
func (s *EggService) List(ctx context.Context) ([]models.Egg, error) {
	return s.list(ctx)
}
