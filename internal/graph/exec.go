package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Schema is a validated declaration bound to a resolver.
type Schema struct {
	decl   *Declaration
	parsed *ast.Schema
	exec   *graphql.Schema
}

// NewSchema validates the declaration and binds it to the resolver. It fails
// if the SDL is invalid or if any field lacks a matching resolver method.
func NewSchema(decl *Declaration, r *Resolver) (*Schema, error) {
	parsed, err := decl.Validate()
	if err != nil {
		return nil, err
	}

	exec, err := graphql.ParseSchema(decl.SDL(), r)
	if err != nil {
		return nil, fmt.Errorf("binding resolvers: %w", err)
	}

	return &Schema{decl: decl, parsed: parsed, exec: exec}, nil
}

// NewSchemaForVariant builds the schema for a configured variant.
func NewSchemaForVariant(variant string, r *Resolver) (*Schema, error) {
	decl, err := ForVariant(variant)
	if err != nil {
		return nil, err
	}
	return NewSchema(decl, r)
}

// Declaration returns the declaration the schema was built from.
func (s *Schema) Declaration() *Declaration {
	return s.decl
}

// Executable returns the engine schema, for use with HTTP handlers.
func (s *Schema) Executable() *graphql.Schema {
	return s.exec
}

// String returns the formatted SDL.
func (s *Schema) String() string {
	return FormatSchema(s.parsed)
}

// Exec runs a GraphQL document against the schema.
func (s *Schema) Exec(ctx context.Context, query, operationName string, variables map[string]any) *graphql.Response {
	return s.exec.Exec(ctx, query, operationName, variables)
}

// Execute runs a document and returns only the data portion of the response.
// GraphQL errors are folded into a single Go error.
func (s *Schema) Execute(ctx context.Context, query, operationName string, variables map[string]any) ([]byte, error) {
	resp := s.Exec(ctx, query, operationName, variables)
	if len(resp.Errors) > 0 {
		return nil, FormatErrors(resp.Errors)
	}
	return resp.Data, nil
}

// FormatErrors formats GraphQL errors into a single error.
func FormatErrors(errs []*gqlerrors.QueryError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

// IsMutation reports whether the operation selected from the document is a
// mutation. Unparseable documents report false and are left to the engine
// to reject.
func IsMutation(query, operationName string) bool {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return false
	}

	var op *ast.OperationDefinition
	if operationName == "" {
		if len(doc.Operations) != 1 {
			return false
		}
		op = doc.Operations[0]
	} else {
		op = doc.Operations.ForName(operationName)
	}
	return op != nil && op.Operation == ast.Mutation
}
