package surql

import (
	"strconv"
	"strings"
)

// Part is one segment of an Idiom.
type Part interface {
	partSQL(first bool) string
}

// FieldPart is a named field access.
type FieldPart string

func (f FieldPart) partSQL(first bool) string {
	if first {
		return EscapeIdent(string(f))
	}
	return "." + EscapeIdent(string(f))
}

// AllPart selects every element or field (*).
type AllPart struct{}

func (AllPart) partSQL(first bool) string {
	if first {
		return "*"
	}
	return ".*"
}

// IndexPart is an array index access.
type IndexPart int

func (i IndexPart) partSQL(bool) string {
	return "[" + strconv.Itoa(int(i)) + "]"
}

// Idiom is a path into a record, such as address.city or tags[0].
type Idiom []Part

// SQL renders the idiom.
func (id Idiom) SQL() string {
	var b strings.Builder
	for i, p := range id {
		b.WriteString(p.partSQL(i == 0))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (id Idiom) String() string {
	return id.SQL()
}

// ParseIdiom splits s on '.' into idiom parts. A "*" segment becomes AllPart
// and a trailing [n] on a segment becomes an IndexPart. Segments are not
// validated; use IsIdiom for that.
func ParseIdiom(s string) Idiom {
	segments := strings.Split(s, ".")
	idiom := make(Idiom, 0, len(segments))
	for _, seg := range segments {
		if seg == "*" {
			idiom = append(idiom, AllPart{})
			continue
		}
		name, indexes := splitIndexes(seg)
		if name != "" {
			idiom = append(idiom, FieldPart(name))
		}
		for _, i := range indexes {
			idiom = append(idiom, IndexPart(i))
		}
	}
	return idiom
}

// IsIdiom reports whether s is a dotted path of identifiers, "*" segments
// and [n] index suffixes.
func IsIdiom(s string) bool {
	if s == "" {
		return false
	}
	for i, seg := range strings.Split(s, ".") {
		if seg == "*" {
			continue
		}
		name, indexes := splitIndexes(seg)
		if indexes == nil && strings.ContainsAny(seg, "[]") {
			return false
		}
		if name == "" && (i == 0 || len(indexes) == 0) {
			return false
		}
		if name != "" && !IsIdent(name) {
			return false
		}
	}
	return true
}

// splitIndexes splits "tags[0][1]" into "tags" and [0 1]. A malformed suffix
// yields a nil slice and the whole segment as the name.
func splitIndexes(seg string) (string, []int) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil
	}
	name, rest := seg[:open], seg[open:]
	indexes := []int{}
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return seg, nil
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil || n < 0 {
			return seg, nil
		}
		indexes = append(indexes, n)
		rest = rest[end+1:]
	}
	return name, indexes
}
