// Package recordcore provides the thread-safe in-memory record store backing
// the GraphQL resolvers. Nothing is persisted; state lives as long as the
// process.
package recordcore

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hmans/crudql/internal/config"
	"github.com/hmans/crudql/internal/record"
)

// Collection names.
const (
	UsersCollection  = "users"
	TablesCollection = "tables"
)

// Core owns the Users and Tables collections.
type Core struct {
	config *config.Config

	Users  *Collection
	Tables *Collection
}

// New creates an empty Core with the given configuration.
func New(cfg *config.Config) *Core {
	c := &Core{
		Users:  NewCollection(UsersCollection),
		Tables: NewCollection(TablesCollection),
	}
	skipZero := config.Default().Store.FalsyUpdates
	if cfg != nil {
		c.config = cfg
		skipZero = cfg.Store.FalsyUpdates
	}
	c.Users.skipZero = skipZero
	c.Tables.skipZero = skipZero
	return c
}

// SetLogger sets the logger used for mutation events.
func (c *Core) SetLogger(log zerolog.Logger) {
	c.Users.log = log
	c.Tables.log = log
}

// Seed inserts the given fixtures.
func (c *Core) Seed(s *record.Seed) {
	if s == nil {
		return
	}
	for _, r := range s.Users {
		c.Users.Insert(r)
	}
	for _, r := range s.Tables {
		c.Tables.Insert(r)
	}
}

// Load seeds the store as configured: from the seed file when one is set,
// from the built-in fixtures otherwise, or not at all when seeding is off.
func (c *Core) Load() error {
	if c.config == nil || !c.config.Store.Seed {
		return nil
	}

	if c.config.Store.SeedFile == "" {
		c.Seed(record.DefaultSeed())
		return nil
	}

	s, err := record.LoadSeed(c.config.Store.SeedFile)
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}
	c.Seed(s)
	return nil
}
