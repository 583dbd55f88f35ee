// Package husbandry implements the create and query operations for every
// record kind. Each operation generates an identifier, stamps the time,
// builds an immutable record and inserts it into the kind's own store.
package husbandry

import (
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/metrics"
	"github.com/mamadbah2/poultry/internal/repository"
)

// Stores holds one isolated store per record kind.
type Stores struct {
	Poultry  repository.Store[models.PoultryRecord]
	Broilers repository.Store[models.Broiler]
	Layers   repository.Store[models.Layer]
	Eggs     repository.Store[models.Egg]
}

// Options carries the injectable collaborators. Zero values fall back to
// crypto/rand identifiers, the wall clock and no metrics.
type Options struct {
	IDs     identity.Generator
	Now     func() time.Time
	Metrics metrics.Recorder
}

// Services is the single owned instance of every kind's service, built once
// at startup and handed to each boundary adapter.
type Services struct {
	Poultry  *PoultryService
	Broilers *BroilerService
	Layers   *LayerService
	Eggs     *EggService
}

// NewServices wires the per-kind services over the given stores.
func NewServices(stores Stores, opts Options, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IDs == nil {
		opts.IDs = identity.NewRandomGenerator()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	clock := newMonotonicClock(opts.Now)

	return &Services{
		Poultry:  &PoultryService{ledger: newLedger(models.KindPoultry, stores.Poultry, opts, clock, logger)},
		Broilers: &BroilerService{ledger: newLedger(models.KindBroiler, stores.Broilers, opts, clock, logger)},
		Layers:   &LayerService{ledger: newLedger(models.KindLayer, stores.Layers, opts, clock, logger)},
		Eggs:     &EggService{ledger: newLedger(models.KindEgg, stores.Eggs, opts, clock, logger)},
	}
}

func newLedger[T any](kind models.Kind, store repository.Store[T], opts Options, clock *monotonicClock, logger *zap.Logger) ledger[T] {
	return ledger[T]{
		kind:    kind,
		store:   store,
		ids:     opts.IDs,
		clock:   clock,
		metrics: opts.Metrics,
		logger:  logger,
	}
}
