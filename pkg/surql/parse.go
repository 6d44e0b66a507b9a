package surql

import (
	"strconv"
	"strings"
)

var literalKeywords = map[string]bool{
	"true": true, "false": true, "null": true, "none": true,
}

// ParseValue interprets a caller supplied string in expression position.
//
//	"$name"       -> Param
//	"user.name"   -> Idiom
//	"!active"     -> Unary{OpNot, Idiom}
//	"-score"      -> Unary{OpNeg, Idiom}
//	anything else -> Null
//
// Literal strings must be passed as Strand or through Convert.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "$"); ok {
		if IsIdent(name) {
			return Param(name)
		}
		return Null{}
	}
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		if inner := ParseValue(rest); !isNull(inner) {
			return Unary{Op: OpNot, V: inner}
		}
		return Null{}
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		if inner := ParseValue(rest); !isNull(inner) {
			return Unary{Op: OpNeg, V: inner}
		}
		return Null{}
	}
	if literalKeywords[strings.ToLower(s)] {
		return Null{}
	}
	if IsIdiom(s) {
		return ParseIdiom(s)
	}
	return Null{}
}

func isNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// ParseThing parses "table:id" into a record id. Numeric ids become
// integers and ⟨...⟩ ids are unwrapped.
func ParseThing(s string) (Thing, bool) {
	tb, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || !IsIdent(tb) || id == "" {
		return Thing{}, false
	}
	if inner, ok := strings.CutPrefix(id, "⟨"); ok {
		if inner, ok = strings.CutSuffix(inner, "⟩"); ok {
			return Thing{Table: tb, ID: inner}, true
		}
		return Thing{}, false
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return Thing{Table: tb, ID: n}, true
	}
	return Thing{Table: tb, ID: id}, true
}
