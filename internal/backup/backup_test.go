package backup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/repository/memory"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
)

type memoryUploader struct {
	objects map[string][]byte
	fail    string
}

func (u *memoryUploader) Upload(_ context.Context, key string, body []byte) error {
	if u.fail != "" && strings.Contains(key, u.fail) {
		return errors.New("bucket unavailable")
	}
	if u.objects == nil {
		u.objects = make(map[string][]byte)
	}
	u.objects[key] = body
	return nil
}

type brokenSource struct{}

func (brokenSource) Kind() models.Kind { return models.KindEgg }
func (brokenSource) Snapshot(context.Context) ([]byte, error) { return nil, errors.New("read failed") }

func newRecords(t *testing.T) *husbandry.Services {
	t.Helper()
	return husbandry.NewServices(husbandry.Stores{
		Poultry:  memory.NewStore[models.PoultryRecord](),
		Broilers: memory.NewStore[models.Broiler](),
		Layers:   memory.NewStore[models.Layer](),
		Eggs:     memory.NewStore[models.Egg](),
	}, husbandry.Options{}, nil)
}

func TestRun_WritesOneObjectPerNamespace(t *testing.T) {
	ctx := context.Background()
	records := newRecords(t)
	if _, err := records.Broilers.Create(ctx, 10, 50, "Ross"); err != nil {
		t.Fatalf("create: %v", err)
	}

	up := &memoryUploader{}
	svc := NewService(up, "farm", []Source{records.Poultry, records.Broilers, records.Layers, records.Eggs}, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC) }

	keys, err := svc.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %v", keys)
	}

	body, ok := up.objects["farm/20250301T020000Z/broilers.json"]
	if !ok {
		t.Fatalf("missing broilers object, have %v", keys)
	}
	var rows []models.Broiler
	if err := json.Unmarshal(body, &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].NumberOfBroilers != 50 {
		t.Fatalf("unexpected snapshot %+v", rows)
	}
	if string(up.objects["farm/20250301T020000Z/eggs.json"]) != "[]" {
		t.Fatalf("empty namespace must snapshot as []")
	}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	records := newRecords(t)
	up := &memoryUploader{fail: "layers"}
	svc := NewService(up, "farm", []Source{records.Layers, brokenSource{}, records.Broilers}, nil)

	keys, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "upload layers") || !strings.Contains(err.Error(), "snapshot eggs") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(keys) != 1 || !strings.HasSuffix(keys[0], "broilers.json") {
		t.Fatalf("expected only broilers to succeed, got %v", keys)
	}
}
