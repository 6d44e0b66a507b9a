// Package value converts between Go values and SurrealQL values through
// their JSON encoding.
//
// Types that implement json.Marshaler or carry json tags convert exactly as
// they serialise, which keeps CONTENT and MERGE payloads identical to what
// the same struct would produce over an HTTP API.
package value

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pthm/surrealkit/pkg/surql"
)

// Kind is the SurrealQL type a Go type maps to.
type Kind string

const (
	KindAny      Kind = "any"
	KindNull     Kind = "null"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindDecimal  Kind = "decimal"
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindDatetime Kind = "datetime"
	KindDuration Kind = "duration"
	KindObject   Kind = "object"
	KindArray    Kind = "array"
	KindRecord   Kind = "record"
	KindUUID     Kind = "uuid"
	KindBytes    Kind = "bytes"
)

// Kinded is implemented by types that declare their SurrealQL kind.
type Kinded interface {
	SurrealKind() Kind
}

// KindOf returns the declared kind of v, or KindObject when v does not
// implement Kinded.
func KindOf(v any) Kind {
	if k, ok := v.(Kinded); ok {
		return k.SurrealKind()
	}
	return KindObject
}

// ToValue converts v into a SurrealQL literal via its JSON encoding.
func ToValue(v any) (surql.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value: encode %T: %w", v, err)
	}
	generic, err := decodeGeneric(raw)
	if err != nil {
		return nil, fmt.Errorf("value: decode %T: %w", v, err)
	}
	return surql.Convert(generic)
}

// FromValue converts a SurrealQL literal into T via JSON.
func FromValue[T any](v surql.Value) (T, error) {
	var zero T
	plain, err := toAny(v)
	if err != nil {
		return zero, err
	}
	return Decode[T](plain)
}

// Decode converts a raw client result (maps, slices, scalars, record ids)
// into T via JSON. Record ids become their table:id text.
func Decode[T any](raw any) (T, error) {
	var out T
	data, err := json.Marshal(Normalize(raw))
	if err != nil {
		return out, fmt.Errorf("value: encode result: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("value: decode into %T: %w", out, err)
	}
	return out, nil
}

// Normalize rewrites a raw client result into JSON friendly types:
// interface-keyed maps become string-keyed and record ids become text.
func Normalize(raw any) any {
	switch x := raw.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = Normalize(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = Normalize(v)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, v := range x {
			s[i] = Normalize(v)
		}
		return s
	case models.RecordID:
		return surql.Thing{Table: x.Table, ID: x.ID}.SQL()
	case *models.RecordID:
		if x == nil {
			return nil
		}
		return surql.Thing{Table: x.Table, ID: x.ID}.SQL()
	case models.Table:
		return string(x)
	}
	return raw
}

func decodeGeneric(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}

// toAny lowers literal AST values into plain Go values.
func toAny(v surql.Value) (any, error) {
	switch x := v.(type) {
	case nil, surql.Null, surql.None:
		return nil, nil
	case surql.Strand:
		return string(x), nil
	case surql.Int:
		return int64(x), nil
	case surql.Float:
		return float64(x), nil
	case surql.Decimal:
		return json.Number(string(x)), nil
	case surql.Bool:
		return bool(x), nil
	case surql.Datetime:
		return time.Time(x), nil
	case surql.Duration:
		return x.SQL(), nil
	case surql.Uuid:
		return uuid.UUID(x).String(), nil
	case surql.Thing:
		return x.SQL(), nil
	case surql.Table:
		return string(x), nil
	case surql.Array:
		out := make([]any, len(x))
		for i, e := range x {
			a, err := toAny(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = a
		}
		return out, nil
	case surql.Object:
		out := make(map[string]any, len(x))
		for k, e := range x {
			a, err := toAny(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = a
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T is not a literal", surql.ErrUnsupportedValue, v)
}
