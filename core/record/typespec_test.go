package record

import "testing"

func TestTypeSpecMatches(t *testing.T) {
	item := MustDefinition("widget", []Field{
		{Name: "id", Type: String()},
	})
	other := MustDefinition("gadget", []Field{
		{Name: "id", Type: String()},
	})
	widget, err := item.New("w1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name  string
		spec  TypeSpec
		value any
		want  bool
	}{
		{"any accepts string", Any(), "x", true},
		{"any accepts nil", Any(), nil, true},
		{"nil accepts nil", Nil(), nil, true},
		{"nil rejects zero", Nil(), 0, false},
		{"string accepts string", String(), "x", true},
		{"string rejects int", String(), 1, false},
		{"int accepts int", Int(), 3, true},
		{"int accepts int64", Int(), int64(3), true},
		{"int accepts whole float", Int(), 3.0, true},
		{"int rejects fraction", Int(), 3.5, false},
		{"int rejects string", Int(), "3", false},
		{"num accepts float", Num(), 3.5, true},
		{"num accepts int", Num(), 3, true},
		{"num rejects bool", Num(), true, false},
		{"bool accepts bool", Bool(), true, true},
		{"bool rejects int", Bool(), 1, false},
		{"slice accepts matching elements", SliceOf(String()), []any{"a", "b"}, true},
		{"slice accepts empty", SliceOf(String()), []any{}, true},
		{"slice rejects wrong element", SliceOf(String()), []any{"a", 1}, false},
		{"slice rejects non-slice", SliceOf(String()), "a", false},
		{"map accepts matching values", MapOf(Int()), map[string]any{"a": 1}, true},
		{"map rejects wrong value", MapOf(Int()), map[string]any{"a": "x"}, false},
		{"map rejects non-map", MapOf(Int()), []any{}, false},
		{"union accepts first variant", OneOf(Nil(), String()), nil, true},
		{"union accepts second variant", OneOf(Nil(), String()), "x", true},
		{"union rejects others", OneOf(Nil(), String()), 1, false},
		{"entity accepts own kind", Entity(item), widget, true},
		{"entity rejects other kind", Entity(other), widget, false},
		{"entity rejects nil", Entity(item), nil, false},
		{"nested slice of maps", SliceOf(MapOf(Num())), []any{map[string]any{"x": 1.5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Matches(tt.value); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTypeSpecDescribe(t *testing.T) {
	item := MustDefinition("thing", []Field{
		{Name: "id", Type: String()},
	})

	tests := []struct {
		spec TypeSpec
		want string
	}{
		{Any(), "any"},
		{String(), "str"},
		{Int(), "int"},
		{Num(), "num"},
		{Bool(), "bool"},
		{SliceOf(String()), "list of str"},
		{MapOf(Num()), "map of num"},
		{OneOf(Nil(), String()), "nil or str"},
		{Entity(item), "thing record"},
	}

	for _, tt := range tests {
		if got := tt.spec.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
