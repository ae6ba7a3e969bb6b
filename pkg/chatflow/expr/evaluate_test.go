package expr

import "testing"

func TestEvaluate_Equality(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "string equality",
			expr: "active == active",
			want: true,
		},
		{
			name: "string equality false",
			expr: "active == inactive",
			want: false,
		},
		{
			name: "quoted string equality",
			expr: "active == 'active'",
			want: true,
		},
		{
			name: "double quoted string equality",
			expr: `active == "active"`,
			want: true,
		},
		{
			name: "number equality",
			expr: "5 == 5",
			want: true,
		},
		{
			name: "number equality with decimal form",
			expr: "5 == 5.0",
			want: true,
		},
		{
			name: "boolean equality",
			expr: "true == true",
			want: true,
		},
		{
			name: "mixed types compare by string form",
			expr: "5 == five",
			want: false,
		},
		{
			name: "not equal true",
			expr: "active != inactive",
			want: true,
		},
		{
			name: "not equal false",
			expr: "5 != 5",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expr)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Ordering(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "greater than",
			expr: "10 > 5",
			want: true,
		},
		{
			name: "greater than false",
			expr: "5 > 10",
			want: false,
		},
		{
			name: "greater or equal at boundary",
			expr: "18 >= 18",
			want: true,
		},
		{
			name: "less than",
			expr: "3 < 4",
			want: true,
		},
		{
			name: "less or equal at boundary",
			expr: "4 <= 4",
			want: true,
		},
		{
			name: "negative numbers",
			expr: "-5 < 0",
			want: true,
		},
		{
			name: "decimal comparison",
			expr: "2.5 > 2.4",
			want: true,
		},
		{
			name: "non-numeric side converts to zero",
			expr: "abc > -1",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expr)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Truthy(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "literal true", expr: "true", want: true},
		{name: "literal one", expr: "1", want: true},
		{name: "literal true padded", expr: "  true  ", want: true},
		{name: "literal false", expr: "false", want: false},
		{name: "literal zero", expr: "0", want: false},
		{name: "arbitrary string", expr: "yes", want: false},
		{name: "empty expression", expr: "", want: false},
		{name: "unresolved placeholder", expr: "{{age}} >= 18", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expr)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

// Two-character operators must win the scan: "a >= b" splits on ">=",
// never on ">".
func TestEvaluate_OperatorPriority(t *testing.T) {
	if !Evaluate("5 >= 5") {
		t.Error(`Evaluate("5 >= 5") = false, want true`)
	}
	if Evaluate("5 > 5") {
		t.Error(`Evaluate("5 > 5") = true, want false`)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "integer", in: "42", want: float64(42)},
		{name: "decimal", in: "3.14", want: 3.14},
		{name: "negative", in: "-7", want: float64(-7)},
		{name: "true", in: "true", want: true},
		{name: "false mixed case", in: "False", want: false},
		{name: "single quoted", in: "'hello'", want: "hello"},
		{name: "double quoted", in: `"hello"`, want: "hello"},
		{name: "bare string", in: "hello", want: "hello"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.in)
			if got != tt.want {
				t.Errorf("Coerce(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}
