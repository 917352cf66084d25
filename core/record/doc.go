/*
Package record implements typed, validated, serializable records
declared as ordered field lists.

A definition names a record kind and its fields; instances are
constructed from positional and named arguments, validated against
the declarations, and round-trip through flat named-value mappings.

# Declaring a record

	var Sword = record.MustDefinition("sword", []record.Field{
		{Name: "name", Type: record.String()},
		{Name: "damage", Type: record.Int()},
		{Name: "knockback", Type: record.Int(), Default: 0},
		{Name: "lores", Type: record.SliceOf(record.String()),
			DefaultFactory: func() any { return []any{} }},
	})

Fields are ordered. Once a field is optional (carries a default or a
default factory), every later field must be optional too, so
positional construction stays unambiguous. Mutable defaults must come
from a factory; a shared literal slice or map would alias across
instances.

# Types

Field types are closed descriptors: the scalar constructors Any, Nil,
String, Int, Num and Bool, plus SliceOf, MapOf, OneOf and Entity for
collections, unions and nested records. One recursive Matches checks
a value against a descriptor; there is no reflection involved.
Collections use the generic document representation ([]any and
map[string]any), matching what structured-text decoders produce.

# Serialization

Dumps produces a flat mapping with one entry per field whose value
differs from its default (all fields when DumpDefaults is set) plus
the reserved "type" entry carrying the definition id. Loads checks
the tag, runs load converters, fills defaults and re-validates every
value. Valid answers the same checks as a boolean, for bulk
validation without constructing instances.
*/
package record
