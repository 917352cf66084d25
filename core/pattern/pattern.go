package pattern

import (
	"fmt"
	"strings"

	"github.com/emberforge/parley/core/argtype"
)

// ElementKind discriminates pattern elements.
type ElementKind string

const (
	// KindLiteral is a fixed word matched verbatim.
	KindLiteral ElementKind = "literal"

	// KindSlot is a named, typed position that binds one token.
	KindSlot ElementKind = "slot"
)

// Element is a single unit of a parsed pattern.
type Element struct {
	Kind ElementKind

	// Name is the literal text for KindLiteral and the slot name for
	// KindSlot.
	Name string

	// Type and Optional apply to KindSlot only.
	Type     argtype.Type
	Optional bool
}

// Pattern is a parsed command pattern. Immutable after Parse.
type Pattern struct {
	src      string
	elements []Element
}

// Parse compiles a pattern definition string against the given type
// registry. Ordering violations, duplicate slot names and unknown
// type names are construction errors.
func Parse(src string, types *argtype.Registry) (*Pattern, error) {
	var elements []Element
	seen := make(map[string]bool)
	sawSlot := false
	sawOptional := false

	for _, word := range strings.Fields(src) {
		name, typeName, optional, isSlot := splitSlot(word)
		if !isSlot {
			if sawSlot {
				return nil, fmt.Errorf("pattern %q: literal %q after a slot", src, word)
			}
			elements = append(elements, Element{Kind: KindLiteral, Name: word})
			continue
		}

		sawSlot = true
		if optional {
			sawOptional = true
		} else if sawOptional {
			return nil, fmt.Errorf("pattern %q: required slot <%s> after an optional slot", src, name)
		}

		if seen[name] {
			return nil, fmt.Errorf("pattern %q: duplicate slot name %q", src, name)
		}
		seen[name] = true

		typ, err := types.Resolve(typeName)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: slot %q: %w", src, name, err)
		}

		elements = append(elements, Element{Kind: KindSlot, Name: name, Type: typ, Optional: optional})
	}

	return &Pattern{src: src, elements: elements}, nil
}

// String returns the original pattern definition string.
func (p *Pattern) String() string {
	return p.src
}

// Elements returns a copy of the parsed element sequence.
func (p *Pattern) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// splitSlot decides whether a word is slot syntax and takes it
// apart. Bracketed forms with a malformed interior are not slots.
func splitSlot(word string) (name, typeName string, optional, ok bool) {
	if len(word) < 3 {
		return "", "", false, false
	}

	switch {
	case word[0] == '<' && word[len(word)-1] == '>':
		optional = false
	case word[0] == '[' && word[len(word)-1] == ']':
		optional = true
	default:
		return "", "", false, false
	}

	inner := word[1 : len(word)-1]
	name, typeName, hasType := strings.Cut(inner, ":")
	if !isValidName(name) {
		return "", "", false, false
	}
	if hasType && !isValidName(typeName) {
		return "", "", false, false
	}

	return name, typeName, optional, true
}

// isValidName checks identifier syntax: a letter or underscore
// followed by letters, digits or underscores.
func isValidName(s string) bool {
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
