// Package argtype defines the scalar types command pattern slots can
// carry and the registry that resolves them by name.
package argtype

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Type is a named scalar argument type. Check reports whether a raw
// token is acceptable; Convert turns an accepted token into its Go
// value. Convert is only called on tokens Check accepted, but can
// still fail (integer overflow, for example).
type Type struct {
	Name    string
	Check   func(value string) bool
	Convert func(value string) (any, error)
}

// Registry resolves argument types by name. The standard set is open
// for extension; registration is guarded so engines can be assembled
// from multiple goroutines while lookups stay concurrent.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// New creates an empty type registry.
func New() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Builtin creates a registry preloaded with the standard scalar
// types int, num, bool and str.
func Builtin() *Registry {
	r := New()
	r.types["int"] = Type{Name: "int", Check: isInt, Convert: convertInt}
	r.types["num"] = Type{Name: "num", Check: isNum, Convert: convertNum}
	r.types["bool"] = Type{Name: "bool", Check: isBool, Convert: convertBool}
	r.types["str"] = Type{Name: "str", Check: isStr, Convert: convertStr}
	return r
}

// Register adds a type to the registry.
// Returns an error if the name is empty or already taken.
func (r *Registry) Register(t Type) error {
	if t.Name == "" {
		return fmt.Errorf("type name is required")
	}
	if t.Check == nil || t.Convert == nil {
		return fmt.Errorf("type %q needs both a check and a convert function", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("type %q already registered", t.Name)
	}
	r.types[t.Name] = t

	return nil
}

// Resolve looks up a type by name. The empty name resolves to str,
// so untyped slots accept any token.
func (r *Registry) Resolve(name string) (Type, error) {
	if name == "" {
		name = "str"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	if !ok {
		return Type{}, fmt.Errorf("unknown argument type %q", name)
	}
	return t, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Boolean literals recognized by the bool type, case-insensitive.
var (
	trueLiterals  = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "t": true}
	falseLiterals = map[string]bool{"0": true, "false": true, "no": true, "n": true, "f": true}
)

// isInt accepts an optionally signed run of decimal digits.
func isInt(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func convertInt(s string) (any, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid integer literal %q: %w", s, err)
	}
	return n, nil
}

// isNum accepts an optionally signed decimal number: digits with at
// most one decimal point and at least one digit. Exponents and the
// other strconv float forms are deliberately excluded.
func isNum(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits := 0
	dots := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func convertNum(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number literal %q: %w", s, err)
	}
	return f, nil
}

func isBool(s string) bool {
	s = strings.ToLower(s)
	return trueLiterals[s] || falseLiterals[s]
}

func convertBool(s string) (any, error) {
	switch v := strings.ToLower(s); {
	case trueLiterals[v]:
		return true, nil
	case falseLiterals[v]:
		return false, nil
	default:
		return nil, fmt.Errorf("invalid boolean literal %q", s)
	}
}

func isStr(s string) bool {
	return s != ""
}

func convertStr(s string) (any, error) {
	return s, nil
}
