package recordcore

import (
	"sync"

	"github.com/google/btree"
	"github.com/rs/zerolog"

	"github.com/hmans/crudql/internal/record"
)

// entry is one stored record. Records sharing an id are ordered by seq, so
// the earliest insert always sorts first.
type entry struct {
	id  string
	seq uint64
	rec *record.Record
}

func entryLess(a, b entry) bool {
	if a.id != b.id {
		return a.id < b.id
	}
	return a.seq < b.seq
}

// Collection is a thread-safe ordered set of records keyed by id.
//
// Inserting an id that already exists does not replace the stored record:
// both are kept, and lookups resolve to the one inserted first.
type Collection struct {
	name string

	mu       sync.RWMutex
	tree     *btree.BTreeG[entry]
	seq      uint64
	skipZero bool

	log zerolog.Logger
}

// NewCollection creates an empty collection with the given name.
func NewCollection(name string) *Collection {
	return &Collection{
		name: name,
		tree: btree.NewG(2, btree.LessFunc[entry](entryLess)),
		log:  zerolog.Nop(),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Len returns the number of stored records, duplicates included.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.tree.Len()
}

// first returns the earliest-inserted entry for id (must be called with lock held).
func (c *Collection) first(id string) (entry, bool) {
	var found entry
	var ok bool
	c.tree.AscendGreaterOrEqual(entry{id: id}, func(e entry) bool {
		if e.id == id {
			found, ok = e, true
		}
		return false
	})
	return found, ok
}

// Find returns a copy of the record with the given id.
func (c *Collection) Find(id string) (*record.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.first(id)
	if !ok {
		return nil, false
	}
	r := *e.rec
	return &r, true
}

// Insert stores a copy of r unconditionally and returns it.
func (c *Collection) Insert(r record.Record) *record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.first(r.ID); exists {
		c.log.Debug().Str("collection", c.Name()).Str("id", r.ID).Msg("duplicate id inserted; earlier record stays visible")
	}

	c.seq++
	stored := r
	c.tree.ReplaceOrInsert(entry{id: r.ID, seq: c.seq, rec: &stored})
	c.log.Debug().Str("collection", c.Name()).Str("id", r.ID).Msg("record inserted")

	return &r
}

// Update applies patch to the record with the given id and returns a copy of
// the result. It reports false if no such record exists.
func (c *Collection) Update(id string, patch record.Patch) (*record.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.first(id)
	if !ok {
		return nil, false
	}

	if patch.IsEmpty() {
		r := *e.rec
		return &r, true
	}

	patch.Apply(e.rec, c.skipZero)
	c.log.Debug().Str("collection", c.Name()).Str("id", id).Msg("record updated")

	r := *e.rec
	return &r, true
}

// Remove deletes the record with the given id and reports whether one existed.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.first(id)
	if !ok {
		return false
	}

	c.tree.Delete(e)
	c.log.Debug().Str("collection", c.Name()).Str("id", id).Msg("record removed")
	return true
}

// All returns copies of all records ordered by id, then by insertion.
func (c *Collection) All() []*record.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*record.Record, 0, c.tree.Len())
	c.tree.Ascend(func(e entry) bool {
		r := *e.rec
		result = append(result, &r)
		return true
	})
	return result
}
