package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pthm/surrealkit/pkg/surql"
	"github.com/pthm/surrealkit/pkg/value"
)

// Assignment is one SET entry: idiom op value.
type Assignment struct {
	Idiom string
	Op    surql.Operator
	Value any
}

// Assign builds an Assignment. Values go through surql.Convert, so strings
// are literals; pass surql.Param("name") to reference a bound variable.
func Assign(idiom string, op surql.Operator, v any) Assignment {
	return Assignment{Idiom: idiom, Op: op, Value: v}
}

// Eq is shorthand for Assign(idiom, surql.OpEqual, v).
func Eq(idiom string, v any) Assignment {
	return Assign(idiom, surql.OpEqual, v)
}

// toTargets converts statement targets.
//
//	"user"        -> table
//	"user:tobie"  -> record id
//	"$target"     -> param
//	models.RecordID, models.Table, surql.Value
//	[]string, []any of the above
func toTargets(v any) ([]surql.Value, error) {
	switch x := v.(type) {
	case []string:
		out := make([]surql.Value, 0, len(x))
		for _, s := range x {
			t, err := toTarget(s)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	case []any:
		out := make([]surql.Value, 0, len(x))
		for _, e := range x {
			t, err := toTargets(e)
			if err != nil {
				return nil, err
			}
			out = append(out, t...)
		}
		return out, nil
	}
	t, err := toTarget(v)
	if err != nil {
		return nil, err
	}
	return []surql.Value{t}, nil
}

func toTarget(v any) (surql.Value, error) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if strings.HasPrefix(s, "$") {
			return surql.ParseValue(s), nil
		}
		if th, ok := surql.ParseThing(s); ok {
			return th, nil
		}
		if s == "" {
			return nil, fmt.Errorf("%w: empty target", surql.ErrUnsupportedValue)
		}
		return surql.Table(s), nil
	case models.RecordID, *models.RecordID, models.Table, surql.Value:
		return surql.Convert(x)
	}
	return nil, fmt.Errorf("%w: target %T", surql.ErrUnsupportedValue, v)
}

// toField converts a projection.
//
//	"*", "name", "address.city"
//	[2]string{expr, alias}
//	surql.Field, surql.Value
func toField(v any) (surql.Field, error) {
	switch x := v.(type) {
	case string:
		return surql.FieldOf(x), nil
	case [2]string:
		return surql.FieldOf(x[0], x[1]), nil
	case surql.Field:
		return x, nil
	case surql.Value:
		return surql.Field{Expr: x}, nil
	}
	return surql.Field{}, fmt.Errorf("%w: field %T", surql.ErrUnsupportedValue, v)
}

func toFields(vs []any) (surql.Fields, error) {
	out := make(surql.Fields, 0, len(vs))
	for _, v := range vs {
		f, err := toField(v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func toIdioms(names []string) []surql.Idiom {
	out := make([]surql.Idiom, len(names))
	for i, n := range names {
		out[i] = surql.ParseIdiom(n)
	}
	return out
}

// toNumber converts LIMIT and START arguments: integers, "$param" or a Value.
func toNumber(v any) (surql.Value, error) {
	switch x := v.(type) {
	case string:
		p := surql.ParseValue(x)
		if _, ok := p.(surql.Param); !ok {
			return nil, fmt.Errorf("%w: %q is not a parameter", surql.ErrUnsupportedValue, x)
		}
		return p, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, surql.Value:
		return surql.Convert(x)
	}
	return nil, fmt.Errorf("%w: number %T", surql.ErrUnsupportedValue, v)
}

// toVersion converts a VERSION argument: time.Time, "$param" or a Value.
func toVersion(v any) (surql.Value, error) {
	switch x := v.(type) {
	case time.Time:
		return surql.Datetime(x), nil
	case string:
		return toNumber(x)
	case surql.Value:
		return x, nil
	}
	return nil, fmt.Errorf("%w: version %T", surql.ErrUnsupportedValue, v)
}

func toSets(assigns []Assignment) (*surql.Data, error) {
	sets := make([]surql.SetExpr, len(assigns))
	for i, a := range assigns {
		val, err := surql.Convert(a.Value)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", a.Idiom, err)
		}
		sets[i] = surql.SetExpr{Idiom: surql.ParseIdiom(a.Idiom), Op: a.Op, Value: val}
	}
	return &surql.Data{Kind: surql.DataSet, Sets: sets}, nil
}

func toUnset(idioms []string) *surql.Data {
	return &surql.Data{Kind: surql.DataUnset, Unsets: toIdioms(idioms)}
}

// toPayload converts CONTENT, MERGE, PATCH and REPLACE payloads. Values and
// "$param" strings pass through; everything else is JSON encoded.
func toPayload(kind surql.DataKind, v any) (*surql.Data, error) {
	var val surql.Value
	switch x := v.(type) {
	case surql.Value:
		val = x
	case string:
		val = surql.ParseValue(x)
		if _, ok := val.(surql.Param); !ok {
			return nil, fmt.Errorf("%w: payload string %q is not a parameter", surql.ErrUnsupportedValue, x)
		}
	default:
		var err error
		if val, err = value.ToValue(v); err != nil {
			return nil, err
		}
	}
	return &surql.Data{Kind: kind, Value: val}, nil
}

func toOutput(kind surql.OutputKind, fields []any) (*surql.Output, error) {
	if len(fields) == 0 {
		return &surql.Output{Kind: kind}, nil
	}
	fs, err := toFields(fields)
	if err != nil {
		return nil, err
	}
	return &surql.Output{Kind: surql.OutputFields, Fields: fs}, nil
}

// toCond converts a WHERE argument. A single token goes through
// surql.ToCond; several are assembled with surql.Conds.
func toCond(tokens []any) (*surql.Cond, error) {
	var (
		c   surql.Cond
		err error
	)
	if len(tokens) == 1 {
		c, err = surql.ToCond(tokens[0])
	} else {
		c, err = surql.Conds(tokens...)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
