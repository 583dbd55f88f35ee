package models

import "time"

// FlockStock aggregates broiler or layer rows for one breed.
type FlockStock struct {
	Breed     string `json:"breed" bson:"breed"`
	Added     uint64 `json:"added" bson:"added"`
	Sold      uint64 `json:"sold" bson:"sold"`
	Remaining int64  `json:"remaining" bson:"remaining"`
}

// EggStock aggregates egg rows for one breed.
type EggStock struct {
	Breed   string `json:"breed" bson:"breed"`
	Laid    uint64 `json:"laid" bson:"laid"`
	Sold    uint64 `json:"sold" bson:"sold"`
	Damaged uint64 `json:"damaged" bson:"damaged"`
	InStock int64  `json:"inStock" bson:"in_stock"`
}

// InventoryReport is the folded view over every stored row in a period.
// A zero From means "since the beginning".
type InventoryReport struct {
	From         time.Time    `json:"from" bson:"from"`
	To           time.Time    `json:"to" bson:"to"`
	Broilers     []FlockStock `json:"broilers" bson:"broilers"`
	Layers       []FlockStock `json:"layers" bson:"layers"`
	Eggs         []EggStock   `json:"eggs" bson:"eggs"`
	ProfileCount int          `json:"profileCount" bson:"profile_count"`
	GeneratedAt  time.Time    `json:"generatedAt" bson:"generated_at"`
}
