package pattern

// Bindings holds the values captured by a successful match, keyed by
// slot name. Optional slots that consumed nothing are present with a
// nil value, so a handler can tell "declared but absent" from "not
// part of this pattern".
type Bindings map[string]any

// String returns the named binding as a string.
// ok is false when the slot is absent or holds a different type.
func (b Bindings) String(name string) (string, bool) {
	v, ok := b[name].(string)
	return v, ok
}

// Int returns the named binding as an int.
func (b Bindings) Int(name string) (int, bool) {
	v, ok := b[name].(int)
	return v, ok
}

// Num returns the named binding as a float64.
func (b Bindings) Num(name string) (float64, bool) {
	v, ok := b[name].(float64)
	return v, ok
}

// Bool returns the named binding as a bool.
func (b Bindings) Bool(name string) (bool, bool) {
	v, ok := b[name].(bool)
	return v, ok
}

// Match binds a token sequence against the pattern. It walks elements
// and tokens in lockstep: literals must appear verbatim, required
// slots must consume a type-valid token, and optional slots consume
// one only when it validates. The token stream must be exactly
// exhausted; trailing tokens invalidate the match.
//
// Matching is greedy with no backtracking. See the package
// documentation for the consequences.
func (p *Pattern) Match(tokens []string) (Bindings, bool) {
	idx := 0
	bound := make(Bindings)

	for _, el := range p.elements {
		switch {
		case el.Kind == KindLiteral:
			if idx >= len(tokens) || tokens[idx] != el.Name {
				return nil, false
			}
			idx++

		case !el.Optional:
			if idx >= len(tokens) || !el.Type.Check(tokens[idx]) {
				return nil, false
			}
			v, err := el.Type.Convert(tokens[idx])
			if err != nil {
				return nil, false
			}
			bound[el.Name] = v
			idx++

		default:
			if idx < len(tokens) && el.Type.Check(tokens[idx]) {
				v, err := el.Type.Convert(tokens[idx])
				if err != nil {
					return nil, false
				}
				bound[el.Name] = v
				idx++
			} else {
				bound[el.Name] = nil
			}
		}
	}

	if idx != len(tokens) {
		return nil, false
	}

	return bound, true
}
