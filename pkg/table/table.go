// Package table maps Go structs to SurrealDB tables.
//
// A struct becomes a table by implementing Table, usually through code
// generated by `surrealkit generate tables`:
//
//	//surrealkit:table name=person
//	type Person struct {
//		ID   string `json:"id,omitempty"`
//		Name string `json:"name"`
//	}
//
// Repo then provides the usual record operations on top of a
// surrealkit.Querier.
package table

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pthm/surrealkit"
)

// Table is implemented by types stored in a SurrealDB table. TableName must
// not depend on the receiver's contents; it is called on the zero value.
type Table interface {
	TableName() string
}

// Fielder is implemented by generated code to list a table's fields
// without reflection.
type Fielder interface {
	TableFields() []string
}

// Name returns the table name of T.
func Name[T Table]() string {
	var zero T
	return zero.TableName()
}

// RecordID returns the record id T's table uses for id.
func RecordID[T Table](id any) models.RecordID {
	return models.RecordID{Table: Name[T](), ID: id}
}

// NewRecordID returns a fresh record id of T's table keyed by a UUIDv7
// string, so ids sort by creation time.
func NewRecordID[T Table]() (models.RecordID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.RecordID{}, fmt.Errorf("generate record id: %w", err)
	}
	return RecordID[T](id.String()), nil
}

// ValidateName checks a table name: it must start with a letter and
// contain only letters, digits and '_'.
func ValidateName(name string) error {
	if name == "" {
		return surrealkit.ErrEmptyTable
	}
	for i, r := range name {
		switch {
		case i == 0 && !unicode.IsLetter(r):
			return fmt.Errorf("%w %q: must start with a letter", surrealkit.ErrInvalidTableName, name)
		case unicode.IsSpace(r):
			return fmt.Errorf("%w %q: contains whitespace", surrealkit.ErrInvalidTableName, name)
		case r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r):
			return fmt.Errorf("%w %q: invalid character %q", surrealkit.ErrInvalidTableName, name, r)
		}
	}
	return nil
}

// Meta describes a table type.
type Meta struct {
	Name   string
	Fields []string
}

// HasField reports whether name is one of the table's fields.
func (m Meta) HasField(name string) bool {
	for _, f := range m.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// CheckFields returns ErrFieldDoesNotExist for the first name that is not a
// field of the table. Nested idioms are checked by their first part.
func (m Meta) CheckFields(names ...string) error {
	for _, n := range names {
		if n == "*" {
			continue
		}
		head, _, _ := strings.Cut(n, ".")
		head, _, _ = strings.Cut(head, "[")
		if !m.HasField(head) {
			return fmt.Errorf("%w: %s.%s", surrealkit.ErrFieldDoesNotExist, m.Name, n)
		}
	}
	return nil
}

// Describe returns the name and fields of T. Fields come from TableFields
// when T implements Fielder, otherwise from the json tags of T's exported
// fields.
func Describe[T Table]() (Meta, error) {
	name := Name[T]()
	if err := ValidateName(name); err != nil {
		return Meta{}, err
	}
	var zero T
	if f, ok := any(zero).(Fielder); ok {
		return Meta{Name: name, Fields: f.TableFields()}, nil
	}
	return Meta{Name: name, Fields: jsonFields(reflect.TypeOf(zero))}, nil
}

func jsonFields(t reflect.Type) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var fields []string
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous && sf.Tag.Get("json") == "" {
			fields = append(fields, jsonFields(sf.Type)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name, ok := FieldName(sf)
		if ok {
			fields = append(fields, name)
		}
	}
	return fields
}

// FieldName returns the stored name of a struct field from its json tag.
// ok is false for fields tagged "-".
func FieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, true
}
