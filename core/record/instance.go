package record

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Deserialization errors callers branch on.
var (
	// ErrTagMissing reports a serialized mapping with no type tag.
	ErrTagMissing = errors.New("type tag missing from data")

	// ErrTagMismatch reports a serialized mapping tagged as a
	// different record kind.
	ErrTagMismatch = errors.New("type tag mismatch")
)

// Instance is one value of a record kind, holding exactly one value
// per declared field.
type Instance struct {
	def    *Definition
	values map[string]any
}

// New constructs an instance from positional arguments, bound to
// fields in declaration order.
func (d *Definition) New(args ...any) (*Instance, error) {
	return d.NewMixed(args, nil)
}

// NewNamed constructs an instance from named arguments only.
func (d *Definition) NewNamed(named map[string]any) (*Instance, error) {
	return d.NewMixed(nil, named)
}

// NewMixed constructs an instance from positional and named
// arguments. Every value is checked against its field's type and
// validator; binding a field both ways is an error, as is leaving a
// required field unbound. Unbound optional fields take their default,
// computed fresh from the factory when one is set.
func (d *Definition) NewMixed(args []any, named map[string]any) (*Instance, error) {
	if len(args)+len(named) > len(d.fields) {
		return nil, fmt.Errorf("record %s takes at most %d arguments (%d given)",
			d.id, len(d.fields), len(args)+len(named))
	}

	values := make(map[string]any, len(d.fields))

	for i, v := range args {
		f := d.fields[i]
		if err := f.check(v); err != nil {
			return nil, fmt.Errorf("record %s: %w", d.id, err)
		}
		values[f.Name] = v
	}

	// Sorted for deterministic errors; map order would make the
	// first-reported problem random.
	for _, name := range sortedKeys(named) {
		f, ok := d.Field(name)
		if !ok {
			return nil, fmt.Errorf("record %s: unexpected argument %q", d.id, name)
		}
		if _, bound := values[name]; bound {
			return nil, fmt.Errorf("record %s: multiple values for field %q", d.id, name)
		}
		if err := f.check(named[name]); err != nil {
			return nil, fmt.Errorf("record %s: %w", d.id, err)
		}
		values[name] = named[name]
	}

	for i, f := range d.fields {
		if f.Optional() {
			break
		}
		if _, bound := values[f.Name]; !bound {
			return nil, fmt.Errorf("record %s: missing required field %q (pos %d)", d.id, f.Name, i+1)
		}
	}

	for _, f := range d.fields {
		if _, bound := values[f.Name]; !bound && f.Optional() {
			values[f.Name] = f.defaultValue()
		}
	}

	return &Instance{def: d, values: values}, nil
}

// Loads reconstructs an instance from a serialized mapping. The type
// tag must match the definition id; entries pass through their
// field's load converter, absent optional fields take their default,
// and the result is re-checked like any other construction.
func (d *Definition) Loads(m map[string]any) (*Instance, error) {
	tag, ok := m[TagKey]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", d.id, ErrTagMissing)
	}
	if tag != d.id {
		return nil, fmt.Errorf("record %s: %w: expected %q, got %v", d.id, ErrTagMismatch, d.id, tag)
	}

	values := make([]any, 0, len(d.fields))
	for _, f := range d.fields {
		raw, present := m[f.Name]
		switch {
		case present:
			v, err := f.load(raw)
			if err != nil {
				return nil, fmt.Errorf("record %s: field %q: %w", d.id, f.Name, err)
			}
			values = append(values, v)
		case f.Optional():
			values = append(values, f.defaultValue())
		default:
			return nil, fmt.Errorf("record %s: field %q missing from data", d.id, f.Name)
		}
	}

	return d.New(values...)
}

// Valid reports whether a serialized mapping would load as this
// record kind. Same checks as Loads, but it never returns an error,
// so callers can sift through mixed or untrusted mappings cheaply.
func (d *Definition) Valid(m map[string]any) bool {
	tag, ok := m[TagKey].(string)
	if !ok || tag != d.id {
		return false
	}

	for _, f := range d.fields {
		if _, present := m[f.Name]; !present && !f.Optional() {
			return false
		}
	}

	for _, f := range d.fields {
		raw, present := m[f.Name]
		if !present {
			continue
		}
		v, err := f.load(raw)
		if err != nil {
			return false
		}
		if !f.Type.Matches(v) || !f.valid(v) {
			return false
		}
	}

	return true
}

// Dumps serializes the instance to a flat mapping: one entry per
// field whose value differs from its default (every field when
// DumpDefaults is set) plus the type tag.
func (inst *Instance) Dumps() map[string]any {
	out := make(map[string]any, len(inst.def.fields)+1)
	for _, f := range inst.def.fields {
		v := inst.values[f.Name]
		if !inst.def.DumpDefaults && f.Optional() && reflect.DeepEqual(v, f.defaultValue()) {
			continue
		}
		out[f.Name] = f.dump(v)
	}
	out[TagKey] = inst.def.id

	return out
}

// Definition returns the record kind this instance belongs to.
func (inst *Instance) Definition() *Definition {
	return inst.def
}

// Get returns the named field's current value.
func (inst *Instance) Get(name string) (any, bool) {
	v, ok := inst.values[name]
	return v, ok
}

// Set replaces the named field's value after checking it against the
// field's type and validator.
func (inst *Instance) Set(name string, v any) error {
	f, ok := inst.def.Field(name)
	if !ok {
		return fmt.Errorf("record %s has no field %q", inst.def.id, name)
	}
	if err := f.check(v); err != nil {
		return fmt.Errorf("record %s: %w", inst.def.id, err)
	}
	inst.values[name] = v

	return nil
}

// GetString returns the named field's value as a string.
func (inst *Instance) GetString(name string) (string, bool) {
	v, ok := inst.values[name].(string)
	return v, ok
}

// GetInt returns the named field's value as an int. Whole float64
// values coerce, matching the Int type descriptor.
func (inst *Instance) GetInt(name string) (int, bool) {
	switch v := inst.values[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if !math.IsInf(v, 0) && math.Trunc(v) == v {
			return int(v), true
		}
	}
	return 0, false
}

// GetNum returns the named field's value as a float64, coercing the
// integer forms the Num descriptor accepts.
func (inst *Instance) GetNum(name string) (float64, bool) {
	switch v := inst.values[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// GetBool returns the named field's value as a bool.
func (inst *Instance) GetBool(name string) (bool, bool) {
	v, ok := inst.values[name].(bool)
	return v, ok
}

// GetSlice returns the named field's value as a sequence.
func (inst *Instance) GetSlice(name string) ([]any, bool) {
	v, ok := inst.values[name].([]any)
	return v, ok
}

// GetMap returns the named field's value as a mapping.
func (inst *Instance) GetMap(name string) (map[string]any, bool) {
	v, ok := inst.values[name].(map[string]any)
	return v, ok
}

// String renders the instance as id(field=value, ...) in declaration
// order.
func (inst *Instance) String() string {
	var b strings.Builder
	b.WriteString(inst.def.id)
	b.WriteByte('(')
	for i, f := range inst.def.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.Name, inst.values[f.Name])
	}
	b.WriteByte(')')

	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
