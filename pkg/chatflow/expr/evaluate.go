package expr

import (
	"strings"
)

// operators in scan priority order. Two-character operators come first so
// ">=" is never split as ">". Only the first operator found is used; one
// comparison per expression, no boolean composition.
var operators = []string{">=", "<=", ">", "<", "==", "!="}

// Evaluate evaluates a comparison expression whose variables have already
// been substituted. The expression is split on the first operator found in
// priority order; both sides are coerced (see Coerce) and compared.
//
// An expression with no operator is treated as a truthy test: only "true"
// and "1" (after trimming) evaluate to true.
//
// Example:
//
//	expr.Evaluate("18 >= 18") // true
//	expr.Evaluate("abc == abc") // true
//	expr.Evaluate("0") // false
func Evaluate(expression string) bool {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return false
	}

	for _, op := range operators {
		idx := strings.Index(expression, op)
		if idx < 0 {
			continue
		}

		left := Coerce(strings.TrimSpace(expression[:idx]))
		right := Coerce(strings.TrimSpace(expression[idx+len(op):]))
		return compare(op, left, right)
	}

	// No operator - truthy test on the whole resolved string.
	return expression == "true" || expression == "1"
}

// compare applies op to coerced values. Equality falls back to comparing
// string forms when the sides coerce to different types; ordering always
// compares numeric forms.
func compare(op string, left, right any) bool {
	switch op {
	case "==":
		return equal(left, right)
	case "!=":
		return !equal(left, right)
	case ">=":
		return toFloat64(left) >= toFloat64(right)
	case "<=":
		return toFloat64(left) <= toFloat64(right)
	case ">":
		return toFloat64(left) > toFloat64(right)
	case "<":
		return toFloat64(left) < toFloat64(right)
	}
	return false
}

func equal(left, right any) bool {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l == r
		}
	case bool:
		if r, ok := right.(bool); ok {
			return l == r
		}
	case string:
		if r, ok := right.(string); ok {
			return l == r
		}
	}
	return stringForm(left) == stringForm(right)
}
