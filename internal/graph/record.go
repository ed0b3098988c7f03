package graph

import (
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"github.com/hmans/crudql/internal/record"
)

// recordResolver resolves the fields of both User and Table.
type recordResolver struct {
	rec *record.Record
}

func (r *recordResolver) ID() graphql.ID {
	return graphql.ID(r.rec.ID)
}

func (r *recordResolver) Name() string {
	return r.rec.Name
}

func (r *recordResolver) Age() int32 {
	return int32(r.rec.Age)
}

// DeleteStatus is the outcome of a delete mutation.
type DeleteStatus int

const (
	Deleted DeleteStatus = iota
	NotFound
)

// Message renders the status as the string returned to clients,
// e.g. "User deleted successfully" or "User not found".
func (s DeleteStatus) Message(label string) string {
	switch s {
	case Deleted:
		return fmt.Sprintf("%s deleted successfully", label)
	case NotFound:
		return fmt.Sprintf("%s not found", label)
	default:
		return fmt.Sprintf("%s: unknown delete status %d", label, int(s))
	}
}
