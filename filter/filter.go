package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// LinkFilter is a compiled link filter expression. It is safe for concurrent use.
type LinkFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a link filter
func Compile(expression string) (*LinkFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile against a zero link so unknown names and non-boolean results fail early
	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(Link{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &LinkFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against one link
func (f *LinkFilter) Match(link Link) (bool, error) {
	result, err := expr.Run(f.program, newEnvironment(link))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Link:       link.URL,
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Link:       link.URL,
			Err:        fmt.Errorf("expected bool result, got %T", result),
		}
	}
	return matched, nil
}

// Apply returns the links matching the filter, in their original order
func (f *LinkFilter) Apply(links []string) ([]string, error) {
	matches := make([]string, 0, len(links))
	for i, raw := range links {
		ok, err := f.Match(ParseLink(raw, i))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, raw)
		}
	}
	return matches, nil
}

// String returns the original expression
func (f *LinkFilter) String() string {
	return f.expression
}

// newEnvironment creates the expression environment for a link
func newEnvironment(link Link) map[string]any {
	env := make(map[string]any, 16)

	// Case-insensitive string helpers. contains, startsWith and endsWith are
	// operators in expr, and lower/upper are builtins.
	env["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["beginsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["finishesWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}

	contentType := link.ContentType
	env["isFormat"] = func(format string) bool {
		return strings.EqualFold(contentType, format)
	}

	// Link properties
	env["Link"] = link
	env["URL"] = link.URL
	env["Host"] = link.Host
	env["Path"] = link.Path
	env["DocumentID"] = link.DocumentID
	env["ContentType"] = link.ContentType
	env["Index"] = link.Index

	return env
}
