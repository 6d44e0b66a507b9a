package surql

import (
	"testing"
	"time"
)

func TestSelectStatement_SQL(t *testing.T) {
	cond, err := Conds(Cmp("age", OpMoreThan, "$age"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		stmt SelectStatement
		want string
	}{
		{
			name: "minimal",
			stmt: SelectStatement{What: []Value{Table("user")}},
			want: "SELECT * FROM user",
		},
		{
			name: "fields and alias",
			stmt: SelectStatement{
				Expr: Fields{FieldOf("name"), FieldOf("address.city", "city")},
				What: []Value{Table("user")},
			},
			want: "SELECT name, address.city AS city FROM user",
		},
		{
			name: "every clause",
			stmt: SelectStatement{
				Expr:      Fields{AllField()},
				Omit:      []Idiom{ParseIdiom("password")},
				Only:      true,
				What:      []Value{Thing{Table: "user", ID: "tobie"}},
				With:      &With{Indexes: []string{"idx_name", "idx_age"}},
				Cond:      &cond,
				Split:     []Idiom{ParseIdiom("emails")},
				Group:     []Idiom{ParseIdiom("country")},
				Order:     []Order{{Idiom: ParseIdiom("age"), Numeric: true, Direction: Desc}, {Idiom: ParseIdiom("name")}},
				Limit:     Int(10),
				Start:     Int(20),
				Fetch:     []Idiom{ParseIdiom("friends")},
				Version:   Datetime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
				Timeout:   5 * time.Second,
				Parallel:  true,
				Tempfiles: true,
				Explain:   true,
			},
			want: "SELECT * OMIT password FROM ONLY user:tobie WITH INDEX idx_name, idx_age WHERE age > $age " +
				"SPLIT ON emails GROUP BY country ORDER BY age NUMERIC DESC, name ASC LIMIT 10 START 20 " +
				"FETCH friends VERSION d'2024-01-01T00:00:00Z' TIMEOUT 5s PARALLEL TEMPFILES EXPLAIN",
		},
		{
			name: "group all, noindex, explain full",
			stmt: SelectStatement{
				Expr:        Fields{{Expr: Raw("count()"), Alias: ParseIdiom("total")}},
				What:        []Value{Table("user")},
				With:        &With{NoIndex: true},
				GroupAll:    true,
				ExplainFull: true,
			},
			want: "SELECT count() AS total FROM user WITH NOINDEX GROUP ALL EXPLAIN FULL",
		},
		{
			name: "random order with param limit",
			stmt: SelectStatement{
				What:  []Value{Table("user"), Table("admin")},
				Order: []Order{{Random: true}},
				Limit: Param("n"),
			},
			want: "SELECT * FROM user, admin ORDER BY rand() LIMIT $n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stmt.SQL(); got != tt.want {
				t.Errorf("SQL() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteStatements_SQL(t *testing.T) {
	cond, err := Conds(Cmp("id", OpEqual, "$id"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		stmt Statement
		want string
	}{
		{
			name: "create content",
			stmt: CreateStatement{
				What: []Value{Table("user")},
				Data: &Data{Kind: DataContent, Value: Object{"name": Strand("tobie")}},
			},
			want: "CREATE user CONTENT { name: 'tobie' }",
		},
		{
			name: "create set with output",
			stmt: CreateStatement{
				Only: true,
				What: []Value{Thing{Table: "user", ID: "tobie"}},
				Data: &Data{Kind: DataSet, Sets: []SetExpr{
					{Idiom: ParseIdiom("name"), Op: OpEqual, Value: Param("name")},
					{Idiom: ParseIdiom("visits"), Op: OpInc, Value: Int(1)},
				}},
				Output:   &Output{Kind: OutputAfter},
				Timeout:  time.Second,
				Parallel: true,
			},
			want: "CREATE ONLY user:tobie SET name = $name, visits += 1 RETURN AFTER TIMEOUT 1s PARALLEL",
		},
		{
			name: "update unset where",
			stmt: UpdateStatement{
				What:   []Value{Table("user")},
				Data:   &Data{Kind: DataUnset, Unsets: []Idiom{ParseIdiom("temp"), ParseIdiom("cache.value")}},
				Cond:   &cond,
				Output: &Output{Kind: OutputDiff},
			},
			want: "UPDATE user UNSET temp, cache.value WHERE id = $id RETURN DIFF",
		},
		{
			name: "update merge return fields",
			stmt: UpdateStatement{
				What:   []Value{Thing{Table: "user", ID: 1}},
				Data:   &Data{Kind: DataMerge, Value: Object{"active": Bool(true)}},
				Output: &Output{Kind: OutputFields, Fields: Fields{FieldOf("id"), FieldOf("active")}},
			},
			want: "UPDATE user:1 MERGE { active: true } RETURN id, active",
		},
		{
			name: "relate",
			stmt: RelateStatement{
				From:   Thing{Table: "person", ID: "tobie"},
				Kind:   Table("wrote"),
				With:   Thing{Table: "article", ID: "surreal"},
				Data:   &Data{Kind: DataSet, Sets: []SetExpr{{Idiom: ParseIdiom("time"), Op: OpEqual, Value: Raw("time::now()")}}},
				Output: &Output{Kind: OutputNone},
			},
			want: "RELATE person:tobie->wrote->article:surreal SET time = time::now() RETURN NONE",
		},
		{
			name: "delete",
			stmt: DeleteStatement{
				Only:   true,
				What:   []Value{Thing{Table: "user", ID: "tobie"}},
				Output: &Output{Kind: OutputBefore},
			},
			want: "DELETE ONLY user:tobie RETURN BEFORE",
		},
		{
			name: "delete where",
			stmt: DeleteStatement{What: []Value{Table("user")}, Cond: &cond},
			want: "DELETE user WHERE id = $id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stmt.SQL(); got != tt.want {
				t.Errorf("SQL() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestClauses(t *testing.T) {
	if got := Clauses("SELECT", "", "*", "", "FROM", "x"); got != "SELECT * FROM x" {
		t.Errorf("Clauses() = %q", got)
	}
	if got := Clauses(); got != "" {
		t.Errorf("Clauses() = %q, want empty", got)
	}
}
