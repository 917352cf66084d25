package argtype

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuiltinTypes(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		typeName string
		value    string
		valid    bool
		want     any
	}{
		{"int", "42", true, 42},
		{"int", "+7", true, 7},
		{"int", "-13", true, -13},
		{"int", "007", true, 7},
		{"int", "", false, nil},
		{"int", "+", false, nil},
		{"int", "3.5", false, nil},
		{"int", "abc", false, nil},

		{"num", "42", true, 42.0},
		{"num", "3.5", true, 3.5},
		{"num", ".5", true, 0.5},
		{"num", "5.", true, 5.0},
		{"num", "+.5", true, 0.5},
		{"num", "-0.25", true, -0.25},
		{"num", "1e3", false, nil},
		{"num", ".", false, nil},
		{"num", "1.2.3", false, nil},
		{"num", "abc", false, nil},

		{"bool", "true", true, true},
		{"bool", "TRUE", true, true},
		{"bool", "Yes", true, true},
		{"bool", "y", true, true},
		{"bool", "t", true, true},
		{"bool", "1", true, true},
		{"bool", "false", true, false},
		{"bool", "No", true, false},
		{"bool", "n", true, false},
		{"bool", "f", true, false},
		{"bool", "0", true, false},
		{"bool", "maybe", false, nil},

		{"str", "anything", true, "anything"},
		{"str", "42", true, "42"},
		{"str", "", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.typeName+"/"+tt.value, func(t *testing.T) {
			typ, err := reg.Resolve(tt.typeName)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.typeName, err)
			}

			if got := typ.Check(tt.value); got != tt.valid {
				t.Fatalf("Check(%q) = %v, want %v", tt.value, got, tt.valid)
			}
			if !tt.valid {
				return
			}

			got, err := typ.Convert(tt.value)
			if err != nil {
				t.Fatalf("Convert(%q) failed: %v", tt.value, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Convert(%q) = %v (%T), want %v (%T)", tt.value, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestIntOverflow(t *testing.T) {
	reg := Builtin()
	typ, err := reg.Resolve("int")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	huge := "99999999999999999999"
	if !typ.Check(huge) {
		t.Fatalf("Check(%q) = false, want true", huge)
	}
	if _, err := typ.Convert(huge); err == nil {
		t.Error("Convert should fail on integer overflow")
	}
}

func TestResolveDefaultsToStr(t *testing.T) {
	reg := Builtin()

	typ, err := reg.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") failed: %v", err)
	}
	if typ.Name != "str" {
		t.Errorf("Resolve(\"\") = %q, want %q", typ.Name, "str")
	}
}

func TestResolveUnknown(t *testing.T) {
	reg := Builtin()

	if _, err := reg.Resolve("vector"); err == nil {
		t.Error("Resolve should fail for an unregistered type")
	}
}

func TestRegister(t *testing.T) {
	reg := Builtin()
	upper := Type{
		Name:    "upper",
		Check:   func(s string) bool { return s != "" && strings.ToUpper(s) == s },
		Convert: func(s string) (any, error) { return s, nil },
	}

	if err := reg.Register(upper); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.Resolve("upper"); err != nil {
		t.Errorf("Resolve after registration failed: %v", err)
	}

	if err := reg.Register(upper); err == nil {
		t.Error("Register should reject a duplicate type name")
	}
}

func TestRegisterInvalid(t *testing.T) {
	reg := New()

	if err := reg.Register(Type{Name: ""}); err == nil {
		t.Error("Register should reject an empty type name")
	}
	if err := reg.Register(Type{Name: "half"}); err == nil {
		t.Error("Register should reject a type without check and convert functions")
	}
}

func TestNames(t *testing.T) {
	reg := Builtin()

	want := []string{"bool", "int", "num", "str"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
