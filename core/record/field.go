package record

import "fmt"

// TagKey is the reserved mapping key that identifies a serialized
// record's kind. No field may use it as a name.
const TagKey = "type"

// Field declares one named, typed attribute of a record definition.
// Declarations are plain data; NewDefinition validates them. A field
// is optional iff it carries a default value or a default factory.
type Field struct {
	// Name is the attribute name. Identifier syntax, unique within
	// the definition, and never the reserved tag key.
	Name string

	// Type constrains the values the field accepts, both at
	// construction and on every Set.
	Type TypeSpec

	// Default is a literal default value. Immutable scalars only;
	// a mutable default must come from DefaultFactory, or every
	// instance would share it.
	Default any

	// DefaultFactory produces a fresh default per instance. At most
	// one of Default and DefaultFactory may be set.
	DefaultFactory func() any

	// Validate vets a value beyond its type. Nil accepts everything.
	Validate func(v any) bool

	// Load converts a serialized value into the field's runtime
	// value. Nil is the identity.
	Load func(v any) (any, error)

	// Dump converts the field's runtime value into its serialized
	// form. Nil is the identity.
	Dump func(v any) any
}

// Optional reports whether the field may be left unbound at
// construction, taking its default instead.
func (f Field) Optional() bool {
	return f.Default != nil || f.DefaultFactory != nil
}

// defaultValue returns the field's default, fresh from the factory
// when one is set. Only meaningful for optional fields.
func (f Field) defaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	if f.DefaultFactory != nil {
		return f.DefaultFactory()
	}
	return nil
}

// load runs the field's load converter.
func (f Field) load(v any) (any, error) {
	if f.Load == nil {
		return v, nil
	}
	return f.Load(v)
}

// dump runs the field's dump converter.
func (f Field) dump(v any) any {
	if f.Dump == nil {
		return v
	}
	return f.Dump(v)
}

// valid runs the field's validator.
func (f Field) valid(v any) bool {
	return f.Validate == nil || f.Validate(v)
}

// check vets a value against the field's type and validator.
func (f Field) check(v any) error {
	if !f.Type.Matches(v) {
		return fmt.Errorf("field %q: expected %s, got %v", f.Name, f.Type.Describe(), v)
	}
	if !f.valid(v) {
		return fmt.Errorf("field %q: invalid value %v", f.Name, v)
	}
	return nil
}

// validateField checks a single declaration.
func validateField(f Field) error {
	if !isValidIdentifier(f.Name) {
		return fmt.Errorf("field name %q is not a valid identifier", f.Name)
	}
	if f.Name == TagKey {
		return fmt.Errorf("field name %q is reserved for the type tag", TagKey)
	}
	if f.Default != nil && f.DefaultFactory != nil {
		return fmt.Errorf("field %q: both default and default factory given, conflict", f.Name)
	}
	if f.Default != nil && !isImmutable(f.Default) {
		return fmt.Errorf("field %q: mutable default values must use a default factory", f.Name)
	}
	return nil
}

// isImmutable reports whether a literal default is safe to share
// across instances.
func isImmutable(v any) bool {
	switch v.(type) {
	case bool, int, int64, float64, string:
		return true
	}
	return false
}

// isValidIdentifier checks identifier syntax: a letter or underscore
// followed by letters, digits or underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
