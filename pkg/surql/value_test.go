package surql

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestValue_SQL(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"param", Param("name"), "$name"},
		{"param with dollar", Param("$name"), "$name"},
		{"table", Table("user"), "user"},
		{"table needs escaping", Table("user-data"), "`user-data`"},
		{"thing ident id", Thing{Table: "user", ID: "tobie"}, "user:tobie"},
		{"thing numeric id", Thing{Table: "user", ID: 42}, "user:42"},
		{"thing digit string id", Thing{Table: "user", ID: "42"}, "user:⟨42⟩"},
		{"thing uuid-like id", Thing{Table: "user", ID: "a-b"}, "user:⟨a-b⟩"},
		{"non-ascii table", Table("café"), "`café`"},
		{"non-ascii thing", Thing{Table: "café", ID: "crème"}, "`café`:⟨crème⟩"},
		{"thing array id", Thing{Table: "temp", ID: Array{Strand("london"), Int(1)}}, "temp:['london', 1]"},
		{"strand", Strand("hello"), "'hello'"},
		{"strand with quote", Strand("it's"), `'it\'s'`},
		{"strand with backslash", Strand(`a\b`), `'a\\b'`},
		{"int", Int(-7), "-7"},
		{"float", Float(1.5), "1.5f"},
		{"whole float", Float(2), "2f"},
		{"nan", Float(math.NaN()), "NaN"},
		{"decimal", Decimal("1.25"), "1.25dec"},
		{"bool", Bool(true), "true"},
		{"null", Null{}, "NULL"},
		{"none", None{}, "NONE"},
		{"duration", Duration(90 * time.Minute), "1h30m"},
		{"duration sub-second", Duration(1500 * time.Millisecond), "1s500ms"},
		{"duration days", Duration(50 * time.Hour), "2d2h"},
		{"zero duration", Duration(0), "0ns"},
		{"datetime", Datetime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), "d'2024-01-02T03:04:05Z'"},
		{"array", Array{Int(1), Strand("a")}, "[1, 'a']"},
		{"empty object", Object{}, "{}"},
		{"object sorted keys", Object{"b": Int(2), "a": Int(1), "a-b": Bool(false)}, `{ a: 1, "a-b": false, b: 2 }`},
		{"func", Func{Name: "type::table", Args: []Value{Param("tb")}}, "type::table($tb)"},
		{"raw", Raw("time::now()"), "time::now()"},
		{"uuid", Uuid(uuid.MustParse("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b")), "u'0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.SQL(); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdiom(t *testing.T) {
	tests := []struct {
		in    string
		parts int
		want  string
		valid bool
	}{
		{"name", 1, "name", true},
		{"address.city", 2, "address.city", true},
		{"test.test.test", 3, "test.test.test", true},
		{"tags[0]", 2, "tags[0]", true},
		{"friends.*.name", 3, "friends.*.name", true},
		{"*", 1, "*", true},
		{"$param", 1, "`$param`", false},
		{"a..b", 3, "a.``.b", false},
		{"", 1, "``", false},
		{"1abc", 1, "`1abc`", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsIdiom(tt.in); got != tt.valid {
				t.Errorf("IsIdiom(%q) = %v, want %v", tt.in, got, tt.valid)
			}
			if !tt.valid {
				return
			}
			idiom := ParseIdiom(tt.in)
			if len(idiom) != tt.parts {
				t.Errorf("ParseIdiom(%q) has %d parts, want %d", tt.in, len(idiom), tt.parts)
			}
			if got := idiom.SQL(); got != tt.want {
				t.Errorf("ParseIdiom(%q).SQL() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"$p", Param("p")},
		{"p", Idiom{FieldPart("p")}},
		{"test.test", Idiom{FieldPart("test"), FieldPart("test")}},
		{"!active", Unary{Op: OpNot, V: Idiom{FieldPart("active")}}},
		{"-score", Unary{Op: OpNeg, V: Idiom{FieldPart("score")}}},
		{"42", Null{}},
		{"'quoted'", Null{}},
		{"true", Null{}},
		{"$", Null{}},
		{"a b", Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseValue(tt.in)
			if got.SQL() != tt.want.SQL() {
				t.Errorf("ParseValue(%q) = %q, want %q", tt.in, got.SQL(), tt.want.SQL())
			}
		})
	}
}

type convertPerson struct {
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Tags    []string `json:"tags,omitempty"`
	private string
}

func TestConvert(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	name := "x"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "abc", "'abc'"},
		{"int", 3, "3"},
		{"uint8", uint8(3), "3"},
		{"huge uint", uint64(math.MaxUint64), "18446744073709551615dec"},
		{"float", 0.25, "0.25f"},
		{"bool", false, "false"},
		{"time", ts, "d'2024-05-06T07:08:09Z'"},
		{"duration", 5 * time.Second, "5s"},
		{"pointer", &name, "'x'"},
		{"nil pointer", (*string)(nil), "NULL"},
		{"slice", []int{1, 2}, "[1, 2]"},
		{"nil slice", []string(nil), "[]"},
		{"map", map[string]any{"a": 1, "b": "c"}, "{ a: 1, b: 'c' }"},
		{"struct", convertPerson{Name: "tobie", Age: 30, private: "hidden"}, "{ age: 30, name: 'tobie' }"},
		{"record id", models.RecordID{Table: "user", ID: "tobie"}, "user:tobie"},
		{"models table", models.Table("user"), "user"},
		{"value passthrough", Param("x"), "$x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got.SQL() != tt.want {
				t.Errorf("Convert() = %q, want %q", got.SQL(), tt.want)
			}
		})
	}
}

func TestConvert_Unsupported(t *testing.T) {
	if _, err := Convert(make(chan int)); err == nil {
		t.Fatal("Convert(chan) expected error")
	}
	if _, err := Convert(map[int]string{1: "a"}); err == nil {
		t.Fatal("Convert(map[int]string) expected error")
	}
	if got := ValueOf(func() {}); got.SQL() != "NULL" {
		t.Errorf("ValueOf(func) = %q, want NULL", got.SQL())
	}
}
