package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
)

// document wraps a record with its key; one collection per namespace.
type document[T any] struct {
	ID         string    `bson:"_id"`
	InsertedAt time.Time `bson:"inserted_at"`
	Record     T         `bson:"record"`
}

// Store is a repository.Store backed by one MongoDB collection.
type Store[T any] struct {
	client    *Client
	namespace string
	now       func() time.Time
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

// NewStore binds a typed store to the collection named namespace.
func NewStore[T any](client *Client, namespace string) *Store[T] {
	return &Store[T]{client: client, namespace: namespace, now: time.Now}
}

// Insert upserts the record document keyed by the textual identifier.
func (s *Store[T]) Insert(ctx context.Context, key identity.Identifier, value T) error {
	doc := document[T]{ID: key.String(), InsertedAt: s.now().UTC(), Record: value}

	_, err := s.client.collection(s.namespace).ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return repository.Fault("insert into", s.namespace, err)
	}
	return nil
}

// Get finds the document stored under key.
func (s *Store[T]) Get(ctx context.Context, key identity.Identifier) (T, bool, error) {
	var zero T
	var doc document[T]

	err := s.client.collection(s.namespace).FindOne(ctx, bson.M{"_id": key.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, repository.Fault("get from", s.namespace, err)
	}
	return doc.Record, true, nil
}

// Values lists the collection ordered by insertion time.
func (s *Store[T]) Values(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "inserted_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.client.collection(s.namespace).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, repository.Fault("list", s.namespace, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []document[T]
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, repository.Fault("decode", s.namespace, err)
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Record)
	}
	return out, nil
}
