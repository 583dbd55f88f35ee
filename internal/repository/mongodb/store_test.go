package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

func TestMongoStore_RoundTrip(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri, fmt.Sprintf("poultry_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.client.Database(client.dbName).Drop(context.Background())
		_ = client.Close(context.Background())
	})

	store := NewStore[models.Egg](client, string(models.KindEgg))
	gen := identity.NewSequenceGenerator(0)
	createdAt := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)

	laid := models.Egg{ID: gen.Next(), Event: models.EventLaid, Breed: "Sussex", LaidEggs: 90, Available: 90, CreatedAt: createdAt}
	sold := models.Egg{ID: gen.Next(), Event: models.EventSold, Breed: "Sussex", Sold: 30, CreatedAt: createdAt.Add(time.Hour)}
	for _, rec := range []models.Egg{laid, sold} {
		if err := store.Insert(ctx, rec.ID, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, ok, err := store.Get(ctx, laid.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != laid.ID || got.LaidEggs != 90 || !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, ok, err := store.Get(ctx, gen.Next()); err != nil || ok {
		t.Fatalf("expected absence, ok=%v err=%v", ok, err)
	}

	all, err := store.Values(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("values: %d err=%v", len(all), err)
	}
}
