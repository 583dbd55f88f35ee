package reporting

import (
	"time"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/repository/memory"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
)

func husbandryServices(now func() time.Time) *husbandry.Services {
	return husbandry.NewServices(husbandry.Stores{
		Poultry:  memory.NewStore[models.PoultryRecord](),
		Broilers: memory.NewStore[models.Broiler](),
		Layers:   memory.NewStore[models.Layer](),
		Eggs:     memory.NewStore[models.Egg](),
	}, husbandry.Options{Now: now}, nil)
}
