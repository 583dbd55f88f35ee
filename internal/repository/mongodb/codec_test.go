package mongodb

import (
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
)

func TestRegistry_CountsAboveMaxInt64RoundTrip(t *testing.T) {
	reg := newRegistry()
	id := identity.NewSequenceGenerator(0).Next()
	createdAt := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)

	for _, count := range []uint64{0, 42, math.MaxInt64, math.MaxInt64 + 1, math.MaxUint64} {
		in := document[models.Broiler]{
			ID:         id.String(),
			InsertedAt: createdAt,
			Record: models.Broiler{
				ID:               id,
				Event:            models.EventCreated,
				AgeWeeks:         3,
				NumberOfBroilers: count,
				Breed:            "Cobb",
				CreatedAt:        createdAt,
				Available:        count,
			},
		}

		raw, err := bson.MarshalWithRegistry(reg, in)
		if err != nil {
			t.Fatalf("marshal %d: %v", count, err)
		}
		var out document[models.Broiler]
		if err := bson.UnmarshalWithRegistry(reg, raw, &out); err != nil {
			t.Fatalf("unmarshal %d: %v", count, err)
		}
		if out.Record != in.Record {
			t.Fatalf("count %d: got %+v, want %+v", count, out.Record, in.Record)
		}
	}
}

func TestRegistry_SmallCountsStayInt64(t *testing.T) {
	raw, err := bson.MarshalWithRegistry(newRegistry(), bson.M{"n": uint64(7)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := bson.Raw(raw).Lookup("n").Int64OK(); !ok {
		t.Fatalf("expected int64 element, got %v", bson.Raw(raw).Lookup("n").Type)
	}

	raw, err = bson.MarshalWithRegistry(newRegistry(), bson.M{"n": uint64(math.MaxUint64)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := bson.Raw(raw).Lookup("n").Decimal128OK(); !ok {
		t.Fatalf("expected decimal128 element, got %v", bson.Raw(raw).Lookup("n").Type)
	}
}

func TestRegistry_RejectsNegativeCounts(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"n": int64(-1)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		N uint64 `bson:"n"`
	}
	if err := bson.UnmarshalWithRegistry(newRegistry(), raw, &out); err == nil {
		t.Fatal("expected negative count to be rejected")
	}

	frac, _ := primitive.ParseDecimal128("1.5")
	raw, _ = bson.Marshal(bson.M{"n": frac})
	if err := bson.UnmarshalWithRegistry(newRegistry(), raw, &out); err == nil {
		t.Fatal("expected fractional decimal to be rejected")
	}
}
