package record

import "fmt"

// Definition is a record kind: an id and an ordered list of field
// declarations. Immutable after construction, except for the
// DumpDefaults toggle.
type Definition struct {
	id     string
	fields []Field
	index  map[string]int

	// DumpDefaults makes Dumps include every field, even those still
	// holding their default value.
	DumpDefaults bool
}

// NewDefinition builds a record definition from an ordered field
// list. Declarations are validated here: invalid or reserved names,
// default conflicts, duplicate field names and a required field
// following an optional one are construction errors.
func NewDefinition(id string, fields []Field) (*Definition, error) {
	if !isValidIdentifier(id) {
		return nil, fmt.Errorf("record id %q is not a valid identifier", id)
	}

	index := make(map[string]int, len(fields))
	sawOptional := false
	for i, f := range fields {
		if err := validateField(f); err != nil {
			return nil, fmt.Errorf("record %s: %w", id, err)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("record %s: duplicate field name %q", id, f.Name)
		}
		index[f.Name] = i

		if f.Optional() {
			sawOptional = true
		} else if sawOptional {
			return nil, fmt.Errorf("record %s: required field %q follows an optional field", id, f.Name)
		}
	}

	own := make([]Field, len(fields))
	copy(own, fields)

	return &Definition{id: id, fields: own, index: index}, nil
}

// MustDefinition is like NewDefinition but panics on error. Intended
// for package-level record declarations.
func MustDefinition(id string, fields []Field) *Definition {
	d, err := NewDefinition(id, fields)
	if err != nil {
		panic(err)
	}
	return d
}

// ID returns the definition id, used as the serialized type tag.
func (d *Definition) ID() string {
	return d.id
}

// Fields returns a copy of the field declarations in order.
func (d *Definition) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Field returns the declaration with the given name.
func (d *Definition) Field(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Len returns the number of declared fields.
func (d *Definition) Len() int {
	return len(d.fields)
}
