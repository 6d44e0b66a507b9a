package surql

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// jsonNumber matches json.Number from either encoder.
type jsonNumber interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// Convert turns a Go value into a SurrealQL literal.
//
// Supported: nil, Value, bool, integers, floats, strings, []byte (base64
// strand), time.Time, time.Duration, uuid.UUID, models.RecordID,
// models.Table, slices, arrays, string-keyed maps, pointers and structs.
// Structs are converted through their JSON encoding so json tags apply.
func Convert(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case string:
		return Strand(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint64:
		return uintValue(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case []byte:
		return Strand(base64.StdEncoding.EncodeToString(x)), nil
	case time.Time:
		return Datetime(x), nil
	case time.Duration:
		return Duration(x), nil
	case uuid.UUID:
		return Uuid(x), nil
	case models.RecordID:
		return Thing{Table: x.Table, ID: x.ID}, nil
	case *models.RecordID:
		if x == nil {
			return Null{}, nil
		}
		return Thing{Table: x.Table, ID: x.ID}, nil
	case models.Table:
		return Table(string(x)), nil
	case jsonNumber:
		return numberValue(x), nil
	case map[string]any:
		return convertMap(reflect.ValueOf(x))
	case []any:
		return convertSlice(reflect.ValueOf(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return Convert(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return Array{}, nil
		}
		return convertSlice(rv)
	case reflect.Array:
		return convertSlice(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %s", ErrUnsupportedValue, rv.Type().Key())
		}
		return convertMap(rv)
	case reflect.String:
		return Strand(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintValue(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	}

	if tm, ok := v.(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %T: %v", ErrUnsupportedValue, v, err)
		}
		return Strand(text), nil
	}
	if rv.Kind() == reflect.Struct {
		return convertJSON(v)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// ValueOf is like Convert but yields NULL for unsupported values.
func ValueOf(v any) Value {
	val, err := Convert(v)
	if err != nil {
		return Null{}
	}
	return val
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Decimal(strconv.FormatUint(u, 10))
	}
	return Int(u)
}

func numberValue(n jsonNumber) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
		return Decimal(s)
	}
	f, err := n.Float64()
	if err != nil {
		return Decimal(s)
	}
	return Float(f)
}

func convertSlice(rv reflect.Value) (Value, error) {
	arr := make(Array, rv.Len())
	for i := range arr {
		elem, err := Convert(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		arr[i] = elem
	}
	return arr, nil
}

func convertMap(rv reflect.Value) (Value, error) {
	obj := make(Object, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		elem, err := Convert(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", iter.Key().String(), err)
		}
		obj[iter.Key().String()] = elem
	}
	return obj, nil
}

// convertJSON converts a struct through its JSON encoding.
func convertJSON(v any) (Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %v", ErrUnsupportedValue, v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %T: %v", ErrUnsupportedValue, v, err)
	}
	return Convert(generic)
}
