package template

import (
	"fmt"
	"regexp"
)

// placeholderPattern matches {{name}} - name can contain alphanumerics
// and underscores. Whitespace padding inside the braces is accepted
// because the editor emits both forms.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Resolve replaces every {{name}} occurrence in s with the string form of
// the corresponding session variable. Unknown variables are left verbatim,
// so a second pass over resolved output is a no-op.
//
// Resolve is a pure function of (s, vars) and is safe for concurrent use.
//
// Example:
//
//	template.Resolve("Hi {{name}}", map[string]any{"name": "Jo"})
//	// "Hi Jo"
func Resolve(s string, vars map[string]any) string {
	if s == "" {
		return ""
	}

	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if val, ok := vars[name]; ok {
			return fmt.Sprintf("%v", val)
		}
		// Variable not found - keep the placeholder as-is.
		return match
	})
}

// ResolveAll resolves placeholders in all strings.
// Returns a new slice; the input is not modified.
func ResolveAll(ss []string, vars map[string]any) []string {
	if ss == nil {
		return nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		results[i] = Resolve(s, vars)
	}
	return results
}

// Vars returns the distinct placeholder names referenced by s,
// in order of first appearance. Useful for editor-side diagnostics.
func Vars(s string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
