package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/hmans/crudql/internal/record"
	"github.com/hmans/crudql/internal/recordcore"
)

// Greeting is the value of the hello query.
const Greeting = "Hello, GraphQL!"

// Resolver is the root resolver for the GraphQL schema.
// It holds a reference to recordcore.Core for data access.
type Resolver struct {
	Core *recordcore.Core
}

type idArgs struct {
	ID graphql.ID
}

type createArgs struct {
	ID   graphql.ID
	Name string
	Age  int32
}

type updateArgs struct {
	ID   graphql.ID
	Name *string
	Age  *int32
}

// Hello is the resolver for the hello field.
func (r *Resolver) Hello(ctx context.Context) *string {
	s := Greeting
	return &s
}

// User is the resolver for the user field.
func (r *Resolver) User(ctx context.Context, args idArgs) *recordResolver {
	return find(r.Core.Users, args.ID)
}

// Users is the resolver for the users field.
func (r *Resolver) Users(ctx context.Context) []*recordResolver {
	return list(r.Core.Users)
}

// CreateUser is the resolver for the createUser field.
func (r *Resolver) CreateUser(ctx context.Context, args createArgs) *recordResolver {
	return create(r.Core.Users, args)
}

// UpdateUser is the resolver for the updateUser field.
func (r *Resolver) UpdateUser(ctx context.Context, args updateArgs) *recordResolver {
	return update(r.Core.Users, args)
}

// DeleteUser is the resolver for the deleteUser field.
func (r *Resolver) DeleteUser(ctx context.Context, args idArgs) *string {
	msg := remove(r.Core.Users, args.ID).Message("User")
	return &msg
}

// Table is the resolver for the table field.
func (r *Resolver) Table(ctx context.Context, args idArgs) *recordResolver {
	return find(r.Core.Tables, args.ID)
}

// Tables is the resolver for the tables field.
func (r *Resolver) Tables(ctx context.Context) []*recordResolver {
	return list(r.Core.Tables)
}

// CreateTable is the resolver for the createTable field.
func (r *Resolver) CreateTable(ctx context.Context, args createArgs) *recordResolver {
	return create(r.Core.Tables, args)
}

// UpdateTable is the resolver for the updateTable field.
func (r *Resolver) UpdateTable(ctx context.Context, args updateArgs) *recordResolver {
	return update(r.Core.Tables, args)
}

// DeleteTable is the resolver for the deleteTable field.
func (r *Resolver) DeleteTable(ctx context.Context, args idArgs) *string {
	msg := remove(r.Core.Tables, args.ID).Message("Table")
	return &msg
}

func find(c *recordcore.Collection, id graphql.ID) *recordResolver {
	rec, ok := c.Find(string(id))
	if !ok {
		return nil
	}
	return &recordResolver{rec}
}

func list(c *recordcore.Collection) []*recordResolver {
	all := c.All()
	result := make([]*recordResolver, len(all))
	for i, rec := range all {
		result[i] = &recordResolver{rec}
	}
	return result
}

func create(c *recordcore.Collection, args createArgs) *recordResolver {
	rec := c.Insert(record.Record{
		ID:   string(args.ID),
		Name: args.Name,
		Age:  int(args.Age),
	})
	return &recordResolver{rec}
}

func update(c *recordcore.Collection, args updateArgs) *recordResolver {
	patch := record.Patch{Name: args.Name}
	if args.Age != nil {
		age := int(*args.Age)
		patch.Age = &age
	}

	rec, ok := c.Update(string(args.ID), patch)
	if !ok {
		return nil
	}
	return &recordResolver{rec}
}

func remove(c *recordcore.Collection, id graphql.ID) DeleteStatus {
	if c.Remove(string(id)) {
		return Deleted
	}
	return NotFound
}
