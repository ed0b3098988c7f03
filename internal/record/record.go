// Package record defines the records held by the store and the partial
// updates that can be applied to them.
package record

// Record is a single User or Table entry.
type Record struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Age  int    `yaml:"age" json:"age"`
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Name *string
	Age  *int
}

// IsEmpty returns true if the patch would not change anything.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil
}

// Apply overwrites the fields of r that are present in the patch.
//
// When skipZero is set, an empty name or a zero age counts as absent. This
// mirrors older clients that could not tell "not supplied" apart from a zero
// value.
func (p Patch) Apply(r *Record, skipZero bool) {
	if p.Name != nil && (!skipZero || *p.Name != "") {
		r.Name = *p.Name
	}
	if p.Age != nil && (!skipZero || *p.Age != 0) {
		r.Age = *p.Age
	}
}
