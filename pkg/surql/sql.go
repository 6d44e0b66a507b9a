package surql

import (
	"fmt"
	"strings"
)

// Statement is the interface implemented by complete SurrealQL statements.
type Statement interface {
	SQL() string
	statement()
}

// Clauses joins statement clauses with single spaces, dropping empty ones.
// The statement shape stays visible at the call site.
func Clauses(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Optf returns formatted string if condition is true, empty string otherwise.
// Useful for optional clauses.
func Optf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

// optValue renders "KEYWORD value" when v is set.
func optValue(keyword string, v Value) string {
	if v == nil {
		return ""
	}
	return keyword + " " + v.SQL()
}

// joinValues renders values separated by sep.
func joinValues(values []Value, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.SQL()
	}
	return strings.Join(parts, sep)
}

// joinIdioms renders idioms separated by ", ".
func joinIdioms(idioms []Idiom) string {
	parts := make([]string, len(idioms))
	for i, id := range idioms {
		parts[i] = id.SQL()
	}
	return strings.Join(parts, ", ")
}

func joinStrings(parts []string) string {
	return strings.Join(parts, ", ")
}
