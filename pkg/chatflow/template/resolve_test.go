package template

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		vars map[string]any
		want string
	}{
		{
			name: "single variable",
			in:   "Hi {{name}}",
			vars: map[string]any{"name": "Jo"},
			want: "Hi Jo",
		},
		{
			name: "multiple variables",
			in:   "{{greeting}}, {{name}}!",
			vars: map[string]any{"greeting": "Hello", "name": "Jo"},
			want: "Hello, Jo!",
		},
		{
			name: "whitespace padding inside braces",
			in:   "Hi {{ name }}",
			vars: map[string]any{"name": "Jo"},
			want: "Hi Jo",
		},
		{
			name: "unknown variable kept verbatim",
			in:   "Hi {{missing}}",
			vars: map[string]any{"name": "Jo"},
			want: "Hi {{missing}}",
		},
		{
			name: "numeric value",
			in:   "age is {{age}}",
			vars: map[string]any{"age": 30},
			want: "age is 30",
		},
		{
			name: "boolean value",
			in:   "subscribed: {{subscribed}}",
			vars: map[string]any{"subscribed": true},
			want: "subscribed: true",
		},
		{
			name: "no placeholders",
			in:   "plain text",
			vars: map[string]any{"name": "Jo"},
			want: "plain text",
		},
		{
			name: "empty string",
			in:   "",
			vars: map[string]any{"name": "Jo"},
			want: "",
		},
		{
			name: "nil vars",
			in:   "Hi {{name}}",
			vars: nil,
			want: "Hi {{name}}",
		},
		{
			name: "repeated variable",
			in:   "{{name}} and {{name}}",
			vars: map[string]any{"name": "Jo"},
			want: "Jo and Jo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in, tt.vars)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Resolving already-resolved output must be a no-op: unknown placeholders
// stay verbatim and known ones are already gone.
func TestResolve_Idempotent(t *testing.T) {
	vars := map[string]any{"name": "Jo"}
	in := "Hi {{name}}, your code is {{code}}"

	once := Resolve(in, vars)
	twice := Resolve(once, vars)

	if once != twice {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestResolveAll(t *testing.T) {
	vars := map[string]any{"name": "Jo"}
	in := []string{"Hi {{name}}", "no placeholder"}

	got := ResolveAll(in, vars)
	want := []string{"Hi Jo", "no placeholder"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveAll = %v, want %v", got, want)
	}
	if in[0] != "Hi {{name}}" {
		t.Errorf("input slice was modified: %v", in)
	}

	if ResolveAll(nil, vars) != nil {
		t.Error("ResolveAll(nil) should return nil")
	}
}

func TestVars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "distinct names in order",
			in:   "{{a}} {{b}} {{a}}",
			want: []string{"a", "b"},
		},
		{
			name: "no placeholders",
			in:   "plain",
			want: nil,
		},
		{
			name: "padded placeholder",
			in:   "{{ user_name }}",
			want: []string{"user_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vars(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Vars(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
