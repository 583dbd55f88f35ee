// Package backup copies every record namespace to object storage.
package backup

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
)

// keyTimeLayout sorts lexically in chronological order.
const keyTimeLayout = "20060102T150405Z"

// Uploader stores one object.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) error
}

// Source is one namespace that can serialize all of its records.
type Source interface {
	Kind() models.Kind
	Snapshot(ctx context.Context) ([]byte, error)
}

// Service snapshots each source under <prefix>/<timestamp>/<namespace>.json.
type Service struct {
	uploader Uploader
	sources  []Source
	prefix   string
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a backup service.
func NewService(uploader Uploader, prefix string, sources []Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		uploader: uploader,
		sources:  sources,
		prefix:   prefix,
		logger:   logger,
		now:      time.Now,
	}
}

// Run uploads a snapshot of every source and returns the written keys. A
// failing namespace does not stop the others; all failures are joined.
func (s *Service) Run(ctx context.Context) ([]string, error) {
	stamp := s.now().UTC().Format(keyTimeLayout)
	keys := make([]string, 0, len(s.sources))
	var errs []error

	for _, src := range s.sources {
		key := path.Join(s.prefix, stamp, string(src.Kind())+".json")

		data, err := src.Snapshot(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("snapshot %s: %w", src.Kind(), err))
			continue
		}
		if err := s.uploader.Upload(ctx, key, data); err != nil {
			errs = append(errs, fmt.Errorf("upload %s: %w", src.Kind(), err))
			continue
		}

		s.logger.Info("namespace backed up", zap.String("kind", string(src.Kind())), zap.String("key", key), zap.Int("bytes", len(data)))
		keys = append(keys, key)
	}

	return keys, errors.Join(errs...)
}
