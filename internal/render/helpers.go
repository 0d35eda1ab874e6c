package render

import (
	"fmt"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

// kubeNameLimit is the maximum length of a Kubernetes object name.
// Derived names are truncated to this limit with trailing hyphens
// trimmed so the result stays a valid DNS label.
const kubeNameLimit = 63

// Helper is a pure string-transform function with a fixed argument
// count, invoked from template placeholders by name.
type Helper struct {
	// Arity is the exact number of arguments the helper accepts.
	Arity int

	// Fn computes the replacement text. It must be free of side
	// effects.
	Fn func(args []string) string
}

// HelperSet is the registry of helpers available to one render pass.
// It is passed explicitly into Render so renders stay pure functions of
// their inputs.
type HelperSet map[string]Helper

// HelperArityError indicates a helper invoked with the wrong number of
// arguments.
type HelperArityError struct {
	Helper string
	Want   int
	Got    int
}

func (e *HelperArityError) Error() string {
	return fmt.Sprintf("helper %q expects %d argument(s), got %d", e.Helper, e.Want, e.Got)
}

// Invoke runs a named helper. Unknown names and arity mismatches are
// errors; helpers themselves cannot fail.
func (h HelperSet) Invoke(name string, args []string) (string, error) {
	helper, ok := h[name]
	if !ok {
		return "", fmt.Errorf("unknown helper %q", name)
	}
	if len(args) != helper.Arity {
		return "", &HelperArityError{Helper: name, Want: helper.Arity, Got: len(args)}
	}
	return helper.Fn(args), nil
}

// DefaultHelpers returns the built-in helper registry: fullname plus a
// set of string transforms adopted from sprig.
func DefaultHelpers() HelperSet {
	set := HelperSet{
		"fullname": {Arity: 2, Fn: func(args []string) string {
			return Fullname(args[0], args[1])
		}},
	}

	// Single-argument string transforms lifted from the sprig function
	// map.
	sprigFuncs := sprig.TxtFuncMap()
	for _, name := range []string{"upper", "lower", "trim", "b64enc", "sha256sum"} {
		fn, ok := sprigFuncs[name].(func(string) string)
		if !ok {
			continue
		}
		set[name] = Helper{Arity: 1, Fn: func(args []string) string {
			return fn(args[0])
		}}
	}

	return set
}

// Fullname derives a resource's fully-qualified name from a release
// name and chart name. When the release name already contains the chart
// name, the release name stands alone. The result is truncated to the
// Kubernetes 63-character name limit with any trailing hyphen trimmed.
func Fullname(release, chart string) string {
	name := release + "-" + chart
	if strings.Contains(release, chart) {
		name = release
	}
	return truncateName(name)
}

func truncateName(name string) string {
	if len(name) > kubeNameLimit {
		name = name[:kubeNameLimit]
	}
	return strings.TrimSuffix(name, "-")
}
