package pattern

// Shadow reports that a later pattern can never match because an
// earlier one accepts every token sequence it accepts. Covering and
// Covered index the ordered list handed to FindShadows.
type Shadow struct {
	Covering int
	Covered  int
}

// CoveredBy reports whether q, tried first, would match every token
// sequence p matches, leaving p unreachable. The test compares p's
// elements against q's prefix of equal length and requires the rest
// of q to be optional slots, so q still matches with nothing left
// over.
//
// Slot comparison ignores names: a slot covers another when their
// types match or the covering slot accepts any token (str). A
// required slot is never covered by an optional one, since an
// optional slot can decline a token and shift the alignment.
func (p *Pattern) CoveredBy(q *Pattern) bool {
	if len(q.elements) < len(p.elements) {
		return false
	}

	for i, pe := range p.elements {
		qe := q.elements[i]
		switch {
		case pe.Kind == KindLiteral && qe.Kind == KindLiteral:
			if pe.Name != qe.Name {
				return false
			}

		case pe.Kind == KindLiteral && qe.Kind == KindSlot:
			if !qe.Type.Check(pe.Name) {
				return false
			}

		case pe.Kind == KindSlot && qe.Kind == KindLiteral:
			return false

		default: // slot against slot
			if pe.Type.Name != qe.Type.Name && qe.Type.Name != "str" {
				return false
			}
			if !pe.Optional && qe.Optional {
				return false
			}
		}
	}

	for _, qe := range q.elements[len(p.elements):] {
		if qe.Kind != KindSlot || !qe.Optional {
			return false
		}
	}

	return true
}

// FindShadows scans an ordered pattern list and reports every pattern
// fully covered by an earlier one. Results are advisory: a shadowed
// pattern is dead code, but nothing stops it from being registered.
func FindShadows(patterns []*Pattern) []Shadow {
	var shadows []Shadow

	for i := 1; i < len(patterns); i++ {
		for j := 0; j < i; j++ {
			if patterns[i].CoveredBy(patterns[j]) {
				shadows = append(shadows, Shadow{Covering: j, Covered: i})
			}
		}
	}

	return shadows
}
