package sheets

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
)

type fakeSheet struct {
	mu      sync.Mutex
	rows    map[string][][]interface{}
	failing bool
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{rows: map[string][][]interface{}{}}
}

func (f *fakeSheet) AppendRecord(_ context.Context, tab, id, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("quota exceeded")
	}
	f.rows[tab] = append(f.rows[tab], []interface{}{id, payload})
	return nil
}

func (f *fakeSheet) ReadRecords(_ context.Context, tab string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errors.New("quota exceeded")
	}
	return f.rows[tab], nil
}

func TestSheetStore_InsertGetValues(t *testing.T) {
	ctx := context.Background()
	sheet := newFakeSheet()
	sheet.rows["layers"] = [][]interface{}{{"id", "payload"}} // header row

	store := NewStore[models.Layer](sheet, "layers", nil)
	gen := identity.NewSequenceGenerator(0)

	a := models.Layer{ID: gen.Next(), Breed: "Leghorn", NumberOfLayers: 100, Available: 100}
	b := models.Layer{ID: gen.Next(), Breed: "Sussex", NumberOfLayers: 40, Sold: 40}
	for _, rec := range []models.Layer{a, b} {
		if err := store.Insert(ctx, rec.ID, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, ok, err := store.Get(ctx, b.ID)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.Breed != "Sussex" || got.Sold != 40 {
		t.Fatalf("unexpected record %+v", got)
	}

	values, err := store.Values(ctx)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(values) != 2 || values[0].ID != a.ID || values[1].ID != b.ID {
		t.Fatalf("unexpected values %+v", values)
	}

	if _, ok, err := store.Get(ctx, gen.Next()); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
}

func TestSheetStore_LastRowWins(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Egg](newFakeSheet(), "eggs", nil)
	id := identity.NewSequenceGenerator(0).Next()

	_ = store.Insert(ctx, id, models.Egg{ID: id, LaidEggs: 1})
	_ = store.Insert(ctx, id, models.Egg{ID: id, LaidEggs: 2})

	got, _, _ := store.Get(ctx, id)
	if got.LaidEggs != 2 {
		t.Fatalf("expected overwrite, got %d", got.LaidEggs)
	}
	values, _ := store.Values(ctx)
	if len(values) != 1 || values[0].LaidEggs != 2 {
		t.Fatalf("expected a single overwritten value, got %+v", values)
	}
}

func TestSheetStore_FaultsWrapErrStorage(t *testing.T) {
	sheet := newFakeSheet()
	sheet.failing = true
	store := NewStore[models.Broiler](sheet, "broilers", nil)

	if _, err := store.Values(context.Background()); !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if _, _, err := store.Get(context.Background(), identity.NewRandomGenerator().Next()); !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestSheetStore_CorruptPayloadIsFault(t *testing.T) {
	ctx := context.Background()
	sheet := newFakeSheet()
	store := NewStore[models.Egg](sheet, "eggs", nil)
	id := identity.NewSequenceGenerator(0).Next()

	if err := store.Insert(ctx, id, models.Egg{ID: id, LaidEggs: 12, Available: 12}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	sheet.rows["eggs"] = append(sheet.rows["eggs"], []interface{}{id.String(), "{corrupt"})

	if _, _, err := store.Get(ctx, id); !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("Get: expected ErrStorage, got %v", err)
	}
	values, err := store.Values(ctx)
	if !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("Values: expected ErrStorage, got %v (len=%d)", err, len(values))
	}
	if values != nil {
		t.Fatalf("expected no partial result, got %+v", values)
	}
}
