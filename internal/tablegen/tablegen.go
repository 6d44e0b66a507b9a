// Package tablegen generates table.Table implementations for annotated
// structs.
//
// A struct opts in with a directive in its doc comment:
//
//	//surrealkit:table name=person
//	type Person struct {
//		ID   string `json:"id,omitempty"`
//		Name string `json:"name"`
//	}
//
// The generator emits TableName and TableFields methods for every
// annotated struct of a package into one file. Without name= the table is
// the snake_case type name.
package tablegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/pthm/surrealkit/pkg/table"
)

// Directive marks a struct for generation.
const Directive = "//surrealkit:table"

//go:embed templates/tables.go.tpl
var templatesFS embed.FS

var tablesTemplate = template.Must(template.ParseFS(templatesFS, "templates/tables.go.tpl"))

// Table describes one annotated struct.
type Table struct {
	TypeName  string
	TableName string
	Fields    []string
}

// Config controls a generation run.
type Config struct {
	// Dir is the package directory to scan.
	Dir string

	// Output is the generated file name, relative to Dir.
	Output string
}

// Scan parses the Go files of dir and returns the package name and its
// annotated structs, sorted by type name. The file named skip (usually a
// previous output) and test files are ignored.
func Scan(dir, skip string) (string, []Table, error) {
	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var pkg string
	var pending []annotated
	structs := make(map[string]*ast.StructType)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == skip {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return "", nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if pkg == "" {
			pkg = f.Name.Name
		}
		found, err := scanFile(f, structs)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", name, err)
		}
		pending = append(pending, found...)
	}

	// Embedded structs may live in any file of the package, so fields are
	// resolved once every file is parsed.
	tables := make([]Table, 0, len(pending))
	for _, a := range pending {
		fields, err := structFields(a.st, structs, map[string]bool{a.table.TypeName: true})
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", a.table.TypeName, err)
		}
		a.table.Fields = fields
		tables = append(tables, a.table)
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i].TypeName < tables[j].TypeName })
	return pkg, tables, nil
}

type annotated struct {
	table Table
	st    *ast.StructType
}

// scanFile records every struct type of f in structs and returns the
// annotated ones.
func scanFile(f *ast.File, structs map[string]*ast.StructType) ([]annotated, error) {
	var found []annotated
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			st, isStruct := ts.Type.(*ast.StructType)
			if isStruct && ts.TypeParams == nil {
				structs[ts.Name.Name] = st
			}

			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			args, ok := directive(doc)
			if !ok {
				continue
			}
			if !isStruct {
				return nil, fmt.Errorf("%s: %s applies to structs only", ts.Name.Name, Directive)
			}
			if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
				return nil, fmt.Errorf("%s: generic types are not supported", ts.Name.Name)
			}

			name := args["name"]
			if name == "" {
				name = snakeCase(ts.Name.Name)
			}
			if err := table.ValidateName(name); err != nil {
				return nil, fmt.Errorf("%s: %w", ts.Name.Name, err)
			}
			found = append(found, annotated{
				table: Table{TypeName: ts.Name.Name, TableName: name},
				st:    st,
			})
		}
	}
	return found, nil
}

// directive returns the key=value arguments of the table directive in doc.
func directive(doc *ast.CommentGroup) (map[string]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		args := make(map[string]string)
		for _, field := range strings.Fields(rest) {
			k, v, _ := strings.Cut(field, "=")
			args[k] = strings.Trim(v, `"`)
		}
		return args, true
	}
	return nil, false
}

// structFields lists stored field names, honouring json tags. Untagged
// embedded structs are flattened the way encoding/json stores them; they
// must be declared in the scanned package.
func structFields(st *ast.StructType, structs map[string]*ast.StructType, seen map[string]bool) ([]string, error) {
	var fields []string
	for _, f := range st.Fields.List {
		var tag reflect.StructTag
		if f.Tag != nil {
			if raw, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(raw)
			}
		}
		names := f.Names
		if len(names) == 0 {
			if tag.Get("json") == "" {
				inner, err := embeddedFields(f.Type, structs, seen)
				if err != nil {
					return nil, err
				}
				fields = append(fields, inner...)
				continue
			}
			names = []*ast.Ident{ast.NewIdent(embeddedName(f.Type))}
		}
		for _, n := range names {
			if !n.IsExported() {
				continue
			}
			if name, ok := table.FieldName(reflect.StructField{Name: n.Name, Tag: tag}); ok {
				fields = append(fields, name)
			}
		}
	}
	return fields, nil
}

func embeddedFields(expr ast.Expr, structs map[string]*ast.StructType, seen map[string]bool) ([]string, error) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch x := expr.(type) {
	case *ast.Ident:
		st, ok := structs[x.Name]
		if !ok {
			// Embedded non-struct types contribute no fields.
			return nil, nil
		}
		if seen[x.Name] {
			return nil, fmt.Errorf("embedded struct %s embeds itself", x.Name)
		}
		seen[x.Name] = true
		defer delete(seen, x.Name)
		return structFields(st, structs, seen)
	case *ast.SelectorExpr:
		return nil, fmt.Errorf("embedded %s.%s is declared in another package: tag it with json or implement TableFields by hand",
			embeddedName(x.X), x.Sel.Name)
	}
	return nil, fmt.Errorf("unsupported embedded field type %T", expr)
}

func embeddedName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(x.X)
	case *ast.SelectorExpr:
		return x.Sel.Name
	case *ast.Ident:
		return x.Name
	}
	return ""
}

// snakeCase converts a Go type name to snake_case, keeping acronyms
// together: HTTPRequest -> http_request.
func snakeCase(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Generate renders the methods for tables as a formatted Go file.
func Generate(pkg string, tables []Table) ([]byte, error) {
	var buf bytes.Buffer
	err := tablesTemplate.Execute(&buf, struct {
		Package string
		Tables  []Table
	}{pkg, tables})
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

// Run scans cfg.Dir and writes the generated file. It returns the tables
// written; no file is written when there are none.
func Run(cfg Config) ([]Table, error) {
	pkg, tables, err := Scan(cfg.Dir, cfg.Output)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}
	src, err := Generate(pkg, tables)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(cfg.Dir, cfg.Output)
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	return tables, nil
}
