package identity

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MarshalBSONValue stores identifiers as their textual form in MongoDB.
func (id Identifier) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.String())
}

// UnmarshalBSONValue decodes the textual form written by MarshalBSONValue.
func (id *Identifier) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	text, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("%w: bson type %s is not a string", ErrInvalidIdentifier, t)
	}
	return id.UnmarshalText([]byte(text))
}
