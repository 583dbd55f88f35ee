package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
)

const dateLayout = "2006-01-02"

// BroilerLister lists broiler rows.
type BroilerLister interface {
	List(ctx context.Context) ([]models.Broiler, error)
}

// LayerLister lists layer rows.
type LayerLister interface {
	List(ctx context.Context) ([]models.Layer, error)
}

// EggLister lists egg rows.
type EggLister interface {
	List(ctx context.Context) ([]models.Egg, error)
}

// ProfileLister lists poultry profiles.
type ProfileLister interface {
	List(ctx context.Context) ([]models.PoultryRecord, error)
}

// Sources groups the listers the report folds over.
type Sources struct {
	Broilers BroilerLister
	Layers   LayerLister
	Eggs     EggLister
	Profiles ProfileLister
}

// Service folds event rows into stock figures. Stores never reconcile
// available and sold counts; this is the reader that does.
type Service struct {
	src    Sources
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(src Sources, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{src: src, logger: logger, now: time.Now}
}

// Inventory folds every row created in [from, to]. A zero from covers all history.
func (s *Service) Inventory(ctx context.Context, from, to time.Time) (models.InventoryReport, error) {
	report := models.InventoryReport{From: from, To: to, GeneratedAt: s.now().UTC()}

	if s.src.Broilers != nil {
		rows, err := s.src.Broilers.List(ctx)
		if err != nil {
			return report, fmt.Errorf("load broilers: %w", err)
		}
		flocks := newFlockFold()
		for _, r := range rows {
			if inWindow(r.CreatedAt, from, to) {
				flocks.add(r.Breed, r.Available, r.Sold)
			}
		}
		report.Broilers = flocks.result()
	}

	if s.src.Layers != nil {
		rows, err := s.src.Layers.List(ctx)
		if err != nil {
			return report, fmt.Errorf("load layers: %w", err)
		}
		flocks := newFlockFold()
		for _, r := range rows {
			if inWindow(r.CreatedAt, from, to) {
				flocks.add(r.Breed, r.Available, r.Sold)
			}
		}
		report.Layers = flocks.result()
	}

	if s.src.Eggs != nil {
		rows, err := s.src.Eggs.List(ctx)
		if err != nil {
			return report, fmt.Errorf("load eggs: %w", err)
		}
		report.Eggs = foldEggs(rows, from, to)
	}

	if s.src.Profiles != nil {
		rows, err := s.src.Profiles.List(ctx)
		if err != nil {
			return report, fmt.Errorf("load poultry profiles: %w", err)
		}
		for _, r := range rows {
			if inWindow(r.CreatedAt, from, to) {
				report.ProfileCount++
			}
		}
	}

	s.logger.Debug("inventory folded",
		zap.Int("broiler_breeds", len(report.Broilers)),
		zap.Int("layer_breeds", len(report.Layers)),
		zap.Int("egg_breeds", len(report.Eggs)))

	return report, nil
}

// GenerateWeeklyReport renders the inventory for the seven days ending at now,
// followed by the all-time standing stock.
func (s *Service) GenerateWeeklyReport(ctx context.Context, now time.Time) (string, error) {
	weekly, err := s.Inventory(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		return "", err
	}
	standing, err := s.Inventory(ctx, time.Time{}, now)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Format(weekly))
	sb.WriteString("\n\nStanding stock:\n")
	sb.WriteString(formatSections(standing))
	return sb.String(), nil
}

// Format renders a report as chat-friendly text.
func Format(r models.InventoryReport) string {
	var header string
	if r.From.IsZero() {
		header = fmt.Sprintf("Inventory up to %s", r.To.Format(dateLayout))
	} else {
		header = fmt.Sprintf("Inventory %s - %s", r.From.Format(dateLayout), r.To.Format(dateLayout))
	}
	return header + "\n" + formatSections(r)
}

func formatSections(r models.InventoryReport) string {
	var lines []string

	if len(r.Broilers) == 0 {
		lines = append(lines, "Broilers: no records yet.")
	}
	for _, f := range r.Broilers {
		lines = append(lines, fmt.Sprintf("Broilers %s: %d added, %d sold, %d remaining.", f.Breed, f.Added, f.Sold, f.Remaining))
	}

	if len(r.Layers) == 0 {
		lines = append(lines, "Layers: no records yet.")
	}
	for _, f := range r.Layers {
		lines = append(lines, fmt.Sprintf("Layers %s: %d added, %d sold, %d remaining.", f.Breed, f.Added, f.Sold, f.Remaining))
	}

	if len(r.Eggs) == 0 {
		lines = append(lines, "Eggs: no records yet.")
	}
	for _, e := range r.Eggs {
		lines = append(lines, fmt.Sprintf("Eggs %s: %d laid, %d sold, %d damaged, %d in stock.", e.Breed, e.Laid, e.Sold, e.Damaged, e.InStock))
	}

	if r.ProfileCount > 0 {
		lines = append(lines, fmt.Sprintf("Poultry profiles: %d.", r.ProfileCount))
	}

	return strings.Join(lines, "\n")
}

type flockFold struct {
	byBreed map[string]*models.FlockStock
}

func newFlockFold() *flockFold {
	return &flockFold{byBreed: make(map[string]*models.FlockStock)}
}

func (f *flockFold) add(breed string, added, sold uint64) {
	key := normalizeBreed(breed)
	stock, ok := f.byBreed[key]
	if !ok {
		stock = &models.FlockStock{Breed: displayBreed(breed)}
		f.byBreed[key] = stock
	}
	stock.Added += added
	stock.Sold += sold
	stock.Remaining = int64(stock.Added) - int64(stock.Sold)
}

func (f *flockFold) result() []models.FlockStock {
	out := make([]models.FlockStock, 0, len(f.byBreed))
	for _, v := range f.byBreed {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Breed < out[j].Breed })
	return out
}

func foldEggs(rows []models.Egg, from, to time.Time) []models.EggStock {
	byBreed := make(map[string]*models.EggStock)
	for _, r := range rows {
		if !inWindow(r.CreatedAt, from, to) {
			continue
		}
		key := normalizeBreed(r.Breed)
		stock, ok := byBreed[key]
		if !ok {
			stock = &models.EggStock{Breed: displayBreed(r.Breed)}
			byBreed[key] = stock
		}
		stock.Laid += r.LaidEggs
		stock.Sold += r.Sold
		stock.Damaged += r.DamagedEggs
		stock.InStock = int64(stock.Laid) - int64(stock.Sold) - int64(stock.Damaged)
	}

	out := make([]models.EggStock, 0, len(byBreed))
	for _, v := range byBreed {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Breed < out[j].Breed })
	return out
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func normalizeBreed(breed string) string {
	return strings.ToLower(strings.TrimSpace(breed))
}

func displayBreed(breed string) string {
	if b := strings.TrimSpace(breed); b != "" {
		return b
	}
	return "unspecified"
}
