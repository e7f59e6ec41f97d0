package executor

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/99designs/gqlgen/graphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// orderedObject keeps response keys in selection order.
type orderedObject struct {
	keys   []string
	values []any
}

func newOrderedObject(size int) *orderedObject {
	return &orderedObject{
		keys:   make([]string, 0, size),
		values: make([]any, 0, size),
	}
}

func (o *orderedObject) set(key string, value any) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

func encodeResult(value any) ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	writeValue(stream, value)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func writeValue(stream *jsoniter.Stream, value any) {
	switch v := value.(type) {
	case nil:
		stream.WriteNil()
	case *orderedObject:
		stream.WriteObjectStart()
		for i, key := range v.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			writeValue(stream, v.values[i])
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, item := range v {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case string:
		stream.WriteString(v)
	case bool:
		stream.WriteBool(v)
	case int:
		stream.WriteInt(v)
	case int64:
		stream.WriteInt64(v)
	case float64:
		stream.WriteFloat64(v)
	default:
		stream.WriteVal(v)
	}
}

// coerceScalar serializes a resolved Go value as the named built-in scalar.
// Unknown scalars pass through and are encoded as JSON.
func coerceScalar(name string, value any) (any, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch name {
	case "Int":
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n := rv.Int()
			if n > math.MaxInt32 || n < math.MinInt32 {
				return nil, fmt.Errorf("%d overflows Int", n)
			}
			return n, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n := rv.Uint()
			if n > math.MaxInt32 {
				return nil, fmt.Errorf("%d overflows Int", n)
			}
			return int64(n), nil
		}
	case "Float":
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		}
	case "String":
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case "Boolean":
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case "ID":
		switch rv.Kind() {
		case reflect.String:
			return rv.String(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(rv.Int(), 10), nil
		}
	default:
		if m, ok := value.(graphql.Marshaler); ok {
			return marshalerValue{m}, nil
		}
		return rv.Interface(), nil
	}

	return nil, fmt.Errorf("%T is not a valid %s", value, name)
}

func coerceEnum(def *ast.Definition, value any) (any, error) {
	var name string
	switch v := value.(type) {
	case string:
		name = v
	case fmt.Stringer:
		name = v.String()
	default:
		rv := reflect.Indirect(reflect.ValueOf(value))
		if rv.Kind() != reflect.String {
			return nil, fmt.Errorf("%T is not a valid %s", value, def.Name)
		}
		name = rv.String()
	}
	if def.EnumValues.ForName(name) == nil {
		return nil, fmt.Errorf("%s is not a valid %s", name, def.Name)
	}
	return name, nil
}

// marshalerValue adapts custom scalars that know how to write themselves.
type marshalerValue struct {
	graphql.Marshaler
}

func (m marshalerValue) MarshalJSON() ([]byte, error) {
	var buf bytesWriter
	m.MarshalGQL(&buf)
	return buf, nil
}

type bytesWriter []byte

func (b *bytesWriter) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
