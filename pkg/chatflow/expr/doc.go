// Package expr evaluates the minimal comparison expressions stored on
// condition nodes.
//
// The grammar is deliberately small: a single binary comparison
// (>=, <=, >, <, ==, !=) between two coerced operands, or a bare truthy
// test. Variable substitution happens before evaluation (package template),
// so the evaluator only ever sees literal operands. Boolean composition is
// not supported; flow authors chain condition nodes instead.
package expr
