package record

import (
	"math"
	"strings"
)

// specKind discriminates type descriptors.
type specKind int

const (
	kindAny specKind = iota
	kindNil
	kindString
	kindInt
	kindNum
	kindBool
	kindSequence
	kindMapping
	kindUnion
	kindEntity
)

// TypeSpec describes the shape of values a field accepts. The
// descriptor set is closed (scalars, sequences, string-keyed
// mappings, unions and record instances) and is checked by a single
// recursive match, with no reflection involved.
//
// Collections use the generic document representation: sequences are
// []any and mappings are map[string]any, matching what structured-text
// decoders produce.
type TypeSpec struct {
	kind     specKind
	elem     *TypeSpec
	variants []TypeSpec
	def      *Definition
}

// Any accepts every value, including nil.
func Any() TypeSpec { return TypeSpec{kind: kindAny} }

// Nil accepts only nil. Mostly useful inside OneOf.
func Nil() TypeSpec { return TypeSpec{kind: kindNil} }

// String accepts string values.
func String() TypeSpec { return TypeSpec{kind: kindString} }

// Int accepts integer values. Whole float64 values pass too, since
// JSON decoding delivers all numbers that way.
func Int() TypeSpec { return TypeSpec{kind: kindInt} }

// Num accepts numeric values: float64, int or int64.
func Num() TypeSpec { return TypeSpec{kind: kindNum} }

// Bool accepts boolean values.
func Bool() TypeSpec { return TypeSpec{kind: kindBool} }

// SliceOf accepts []any sequences whose every element matches elem.
func SliceOf(elem TypeSpec) TypeSpec {
	return TypeSpec{kind: kindSequence, elem: &elem}
}

// MapOf accepts map[string]any mappings whose every value matches
// value.
func MapOf(value TypeSpec) TypeSpec {
	return TypeSpec{kind: kindMapping, elem: &value}
}

// OneOf accepts values matching any of the variants.
func OneOf(variants ...TypeSpec) TypeSpec {
	return TypeSpec{kind: kindUnion, variants: variants}
}

// Entity accepts instances of the given record definition.
func Entity(def *Definition) TypeSpec {
	return TypeSpec{kind: kindEntity, def: def}
}

// Matches reports whether a value fits the descriptor.
func (s TypeSpec) Matches(v any) bool {
	switch s.kind {
	case kindAny:
		return true

	case kindNil:
		return v == nil

	case kindString:
		_, ok := v.(string)
		return ok

	case kindInt:
		return isIntValue(v)

	case kindNum:
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false

	case kindBool:
		_, ok := v.(bool)
		return ok

	case kindSequence:
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range seq {
			if !s.elem.Matches(item) {
				return false
			}
		}
		return true

	case kindMapping:
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for _, item := range m {
			if !s.elem.Matches(item) {
				return false
			}
		}
		return true

	case kindUnion:
		for _, variant := range s.variants {
			if variant.Matches(v) {
				return true
			}
		}
		return false

	case kindEntity:
		inst, ok := v.(*Instance)
		return ok && inst != nil && inst.def == s.def

	default:
		return false
	}
}

// Describe renders the descriptor for error messages.
func (s TypeSpec) Describe() string {
	switch s.kind {
	case kindAny:
		return "any"
	case kindNil:
		return "nil"
	case kindString:
		return "str"
	case kindInt:
		return "int"
	case kindNum:
		return "num"
	case kindBool:
		return "bool"
	case kindSequence:
		return "list of " + s.elem.Describe()
	case kindMapping:
		return "map of " + s.elem.Describe()
	case kindUnion:
		parts := make([]string, len(s.variants))
		for i, variant := range s.variants {
			parts[i] = variant.Describe()
		}
		return strings.Join(parts, " or ")
	case kindEntity:
		return s.def.id + " record"
	default:
		return "unknown"
	}
}

// isIntValue accepts int, int64 and whole float64 values.
func isIntValue(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return !math.IsInf(n, 0) && math.Trunc(n) == n
	}
	return false
}
