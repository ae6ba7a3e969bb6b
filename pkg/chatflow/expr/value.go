package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches integer and decimal literals with optional sign.
var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Coerce converts an expression operand to its typed value.
// Numeric-looking strings become float64, "true"/"false" (case-insensitive)
// become bool, quoted strings have their quotes stripped, everything else
// stays a string.
func Coerce(s string) any {
	if numberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f
		}
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if len(s) >= 2 {
		if (strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) ||
			(strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")) {
			return s[1 : len(s)-1]
		}
	}

	return s
}

// toFloat64 converts a coerced value to float64 for ordering comparisons.
// Non-numeric values convert to 0; booleans to 0 or 1.
func toFloat64(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

// stringForm renders a coerced value back to its canonical string form.
func stringForm(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
