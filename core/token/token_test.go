package token

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			in:   "  \t  ",
			want: nil,
		},
		{
			name: "single word",
			in:   "look",
			want: []string{"look"},
		},
		{
			name: "plain words",
			in:   "go north fast",
			want: []string{"go", "north", "fast"},
		},
		{
			name: "collapses whitespace runs",
			in:   "go   north\tfast",
			want: []string{"go", "north", "fast"},
		},
		{
			name: "double quotes keep spaces",
			in:   `say "hello there"`,
			want: []string{"say", "hello there"},
		},
		{
			name: "single quotes keep spaces",
			in:   "say 'hello there'",
			want: []string{"say", "hello there"},
		},
		{
			name: "quotes are stripped",
			in:   `say "hi"`,
			want: []string{"say", "hi"},
		},
		{
			name: "quoted section glues to surrounding text",
			in:   `say ab"cd ef"g`,
			want: []string{"say", "abcd efg"},
		},
		{
			name: "escaped quotes inside quotes",
			in:   `say "hello \"world\""`,
			want: []string{"say", `hello "world"`},
		},
		{
			name: "single quote inside double quotes",
			in:   `say "it's fine"`,
			want: []string{"say", "it's fine"},
		},
		{
			name: "escaped space outside quotes",
			in:   `say hello\ world`,
			want: []string{"say", "hello world"},
		},
		{
			name: "escaped backslash",
			in:   `say a\\b`,
			want: []string{"say", `a\b`},
		},
		{
			name: "unterminated quote runs to end",
			in:   `say "unfinished business`,
			want: []string{"say", "unfinished business"},
		},
		{
			name: "trailing backslash dropped",
			in:   `say trailing\`,
			want: []string{"say", "trailing"},
		},
		{
			name: "empty quotes produce no token",
			in:   `say ""`,
			want: []string{"say"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
