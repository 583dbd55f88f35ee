package mongodb

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var uint64Type = reflect.TypeOf(uint64(0))

// newRegistry returns the default registry with uint64 counts stored as
// int64 while they fit and as Decimal128 above math.MaxInt64.
func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(uint64Type, bsoncodec.ValueEncoderFunc(encodeUint64))
	reg.RegisterTypeDecoder(uint64Type, bsoncodec.ValueDecoderFunc(decodeUint64))
	return reg
}

func encodeUint64(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != uint64Type {
		return bsoncodec.ValueEncoderError{Name: "Uint64EncodeValue", Types: []reflect.Type{uint64Type}, Received: val}
	}
	u := val.Uint()
	if u <= math.MaxInt64 {
		return vw.WriteInt64(int64(u))
	}
	d, err := primitive.ParseDecimal128(strconv.FormatUint(u, 10))
	if err != nil {
		return err
	}
	return vw.WriteDecimal128(d)
}

func decodeUint64(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != uint64Type {
		return bsoncodec.ValueDecoderError{Name: "Uint64DecodeValue", Types: []reflect.Type{uint64Type}, Received: val}
	}

	var u uint64
	switch t := vr.Type(); t {
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative count %d", i)
		}
		u = uint64(i)
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		if err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative count %d", i)
		}
		u = uint64(i)
	case bsontype.Decimal128:
		d, err := vr.ReadDecimal128()
		if err != nil {
			return err
		}
		bi, exp, err := d.BigInt()
		if err != nil {
			return err
		}
		if exp < 0 {
			return fmt.Errorf("decimal %s is not a count", d.String())
		}
		if exp > 0 {
			bi.Mul(bi, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		}
		if bi.Sign() < 0 || !bi.IsUint64() {
			return fmt.Errorf("decimal %s is not a count", d.String())
		}
		u = bi.Uint64()
	default:
		return fmt.Errorf("cannot decode %v into uint64", t)
	}

	val.SetUint(u)
	return nil
}
