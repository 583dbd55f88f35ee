package models

import (
	"time"

	"github.com/mamadbah2/poultry/internal/identity"
)

// Kind names a record family. Each kind lives in its own store namespace.
type Kind string

const (
	KindPoultry Kind = "poultry_records"
	KindBroiler Kind = "broilers"
	KindLayer   Kind = "layers"
	KindEgg     Kind = "eggs"
)

// EventType tags what a row represents. Rows keep their flat quantity fields;
// the tag only spares readers from inferring the event from zeroed columns.
type EventType string

const (
	EventCreated  EventType = "created"
	EventSold     EventType = "sold"
	EventLaid     EventType = "laid"
	EventDamaged  EventType = "damaged"
	EventProfiled EventType = "profiled"
)

// Broiler is one broiler flock event. A creation row carries Available=count
// and Sold=0; a sale row carries Available=0 and Sold=count.
type Broiler struct {
	ID               identity.Identifier `json:"id" bson:"id"`
	Event            EventType           `json:"event" bson:"event"`
	AgeWeeks         uint64              `json:"ageWeeks" bson:"age_weeks"`
	NumberOfBroilers uint64              `json:"numberOfBroilers" bson:"number_of_broilers"`
	Breed            string              `json:"breed" bson:"breed"`
	CreatedAt        time.Time           `json:"createdAt" bson:"created_at"`
	Available        uint64              `json:"available" bson:"available"`
	Sold             uint64              `json:"sold" bson:"sold"`
}

// Layer is one layer flock event, with the same available/sold split as Broiler.
// On sale rows NumberOfLayers keeps the flock size reported by the caller.
type Layer struct {
	ID             identity.Identifier `json:"id" bson:"id"`
	Event          EventType           `json:"event" bson:"event"`
	AgeWeeks       uint64              `json:"ageWeeks" bson:"age_weeks"`
	NumberOfLayers uint64              `json:"numberOfLayers" bson:"number_of_layers"`
	Breed          string              `json:"breed" bson:"breed"`
	CreatedAt      time.Time           `json:"createdAt" bson:"created_at"`
	Available      uint64              `json:"available" bson:"available"`
	Sold           uint64              `json:"sold" bson:"sold"`
}

// Egg is one egg event: laid, sold or damaged. Only the quantity matching the
// event is non-zero (laid rows also report the eggs as available).
type Egg struct {
	ID          identity.Identifier `json:"id" bson:"id"`
	Event       EventType           `json:"event" bson:"event"`
	Breed       string              `json:"breed" bson:"breed"`
	CreatedAt   time.Time           `json:"createdAt" bson:"created_at"`
	Available   uint64              `json:"available" bson:"available"`
	Sold        uint64              `json:"sold" bson:"sold"`
	LaidEggs    uint64              `json:"laidEggs" bson:"laid_eggs"`
	DamagedEggs uint64              `json:"damagedEggs" bson:"damaged_eggs"`
}

// PoultryRecord is a husbandry profile keyed by its NFC tag.
type PoultryRecord struct {
	NFCTagID         identity.Identifier `json:"nfcTagId" bson:"nfc_tag_id"`
	CreatedAt        time.Time           `json:"createdAt" bson:"created_at"`
	TypeOfPoultry    string              `json:"typeOfPoultry" bson:"type_of_poultry"`
	AgeWeeks         uint64              `json:"ageWeeks" bson:"age_weeks"`
	FeedType         string              `json:"feedType" bson:"feed_type"`
	VaccinationWeeks uint64              `json:"vaccinationWeeks" bson:"vaccination_weeks"`
}
