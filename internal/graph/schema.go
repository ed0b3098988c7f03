package graph

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/hmans/crudql/internal/config"
)

// Arg is a single field argument.
type Arg struct {
	Name string
	Type string
}

// Field is a field on an object type, or a root operation.
type Field struct {
	Name        string
	Description string
	Args        []Arg
	Type        string
}

// Object is an object type definition.
type Object struct {
	Name        string
	Description string
	Fields      []Field
}

// Declaration is the typed description of a GraphQL schema: the object types
// plus the query and mutation operations. It renders to SDL for the engine.
type Declaration struct {
	Objects  []Object
	Query    []Field
	Mutation []Field
}

// recordFields are shared by every record type.
var recordFields = []Field{
	{Name: "id", Type: "ID!"},
	{Name: "name", Type: "String!"},
	{Name: "age", Type: "Int!"},
}

var helloField = Field{
	Name:        "hello",
	Description: "A fixed greeting.",
	Type:        "String",
}

// HelloDeclaration returns the minimal schema exposing only the hello query.
func HelloDeclaration() *Declaration {
	return &Declaration{
		Query: []Field{helloField},
	}
}

// CRUDDeclaration returns the schema with hello plus CRUD operations over
// users and tables.
func CRUDDeclaration() *Declaration {
	d := &Declaration{Query: []Field{helloField}}
	d.addRecordType("User", "user", "users")
	d.addRecordType("Table", "table", "tables")
	return d
}

// ForVariant returns the declaration for a configured schema variant.
func ForVariant(variant string) (*Declaration, error) {
	switch variant {
	case config.VariantHello:
		return HelloDeclaration(), nil
	case config.VariantCRUD, "":
		return CRUDDeclaration(), nil
	default:
		return nil, fmt.Errorf("unknown schema variant: %s", variant)
	}
}

// addRecordType adds a record object type and its symmetric operations.
func (d *Declaration) addRecordType(typeName, singular, plural string) {
	d.Objects = append(d.Objects, Object{
		Name:        typeName,
		Description: fmt.Sprintf("A %s record.", singular),
		Fields:      recordFields,
	})

	d.Query = append(d.Query,
		Field{
			Name:        singular,
			Description: fmt.Sprintf("Look up a %s by id. Returns null if none exists.", singular),
			Args:        []Arg{{"id", "ID!"}},
			Type:        typeName,
		},
		Field{
			Name:        plural,
			Description: fmt.Sprintf("All %s, ordered by id.", plural),
			Type:        "[" + typeName + "!]!",
		},
	)

	d.Mutation = append(d.Mutation,
		Field{
			Name:        "create" + typeName,
			Description: fmt.Sprintf("Add a %s. Ids are not checked for uniqueness.", singular),
			Args:        []Arg{{"id", "ID!"}, {"name", "String!"}, {"age", "Int!"}},
			Type:        typeName,
		},
		Field{
			Name:        "update" + typeName,
			Description: fmt.Sprintf("Change the supplied fields of a %s. Returns null if none exists.", singular),
			Args:        []Arg{{"id", "ID!"}, {"name", "String"}, {"age", "Int"}},
			Type:        typeName,
		},
		Field{
			Name:        "delete" + typeName,
			Description: fmt.Sprintf("Remove a %s and report the outcome as a status message.", singular),
			Args:        []Arg{{"id", "ID!"}},
			Type:        "String",
		},
	)
}

// Operations returns the names of all root operations.
func (d *Declaration) Operations() []string {
	names := make([]string, 0, len(d.Query)+len(d.Mutation))
	for _, f := range d.Query {
		names = append(names, f.Name)
	}
	for _, f := range d.Mutation {
		names = append(names, f.Name)
	}
	return names
}

// SDL renders the declaration as GraphQL schema definition language.
func (d *Declaration) SDL() string {
	var b strings.Builder

	b.WriteString("schema {\n  query: Query\n")
	if len(d.Mutation) > 0 {
		b.WriteString("  mutation: Mutation\n")
	}
	b.WriteString("}\n")

	writeObject(&b, Object{Name: "Query", Fields: d.Query})
	if len(d.Mutation) > 0 {
		writeObject(&b, Object{Name: "Mutation", Fields: d.Mutation})
	}
	for _, o := range d.Objects {
		writeObject(&b, o)
	}

	return b.String()
}

func writeObject(b *strings.Builder, o Object) {
	b.WriteString("\n")
	if o.Description != "" {
		fmt.Fprintf(b, "# %s\n", o.Description)
	}
	fmt.Fprintf(b, "type %s {\n", o.Name)
	for _, f := range o.Fields {
		if f.Description != "" {
			fmt.Fprintf(b, "  # %s\n", f.Description)
		}
		b.WriteString("  " + f.Name)
		if len(f.Args) > 0 {
			args := make([]string, len(f.Args))
			for i, a := range f.Args {
				args[i] = a.Name + ": " + a.Type
			}
			b.WriteString("(" + strings.Join(args, ", ") + ")")
		}
		b.WriteString(": " + f.Type + "\n")
	}
	b.WriteString("}\n")
}

// Validate checks the rendered SDL against the GraphQL type system rules
// and returns the parsed schema.
func (d *Declaration) Validate() (*ast.Schema, error) {
	if len(d.Query) == 0 {
		return nil, fmt.Errorf("schema has no query fields")
	}

	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: d.SDL()})
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return s, nil
}

// FormatSchema pretty-prints a parsed schema.
func FormatSchema(s *ast.Schema) string {
	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(s)
	return buf.String()
}
