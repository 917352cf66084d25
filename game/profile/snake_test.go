package profile

import "testing"

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"camelCaseString", "camel_case_string"},
		{"PascalCase", "pascal_case"},
		{"some mixed_string", "some_mixed_string"},
		{"HTTPRequest", "http_request"},
		{"My Save-File", "my_save_file"},
		{"Hero", "hero"},
		{"already_snake", "already_snake"},
		{"ABC", "abc"},
		{"Save 2", "save_2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToSnakeCase(tt.in); got != tt.want {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
