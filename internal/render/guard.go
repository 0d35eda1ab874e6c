package render

import (
	"fmt"
	"sort"
	"strings"
)

// guardKind discriminates the guard expression node types.
type guardKind int

const (
	guardHasCapability guardKind = iota
	guardValueTruthy
	guardNot
	guardAnd
	guardOr
)

// Guard is a boolean expression gating whether a template unit is
// included in a render pass. Guards are built via the constructors or
// compiled from catalog YAML; a nil *Guard always evaluates true.
type Guard struct {
	kind       guardKind
	capability string
	path       string
	operands   []*Guard
}

// MalformedGuardError indicates a guard that references an unknown
// predicate kind or has an ill-shaped operand. It is raised at
// construction time only; evaluation never fails.
type MalformedGuardError struct {
	Detail string
}

func (e *MalformedGuardError) Error() string {
	return "malformed guard: " + e.Detail
}

// HasCapability matches when the capability set contains id.
func HasCapability(id string) *Guard {
	return &Guard{kind: guardHasCapability, capability: id}
}

// ValueTruthy matches when the value at path is present and truthy.
func ValueTruthy(path string) *Guard {
	return &Guard{kind: guardValueTruthy, path: path}
}

// Not negates a guard.
func Not(g *Guard) *Guard {
	return &Guard{kind: guardNot, operands: []*Guard{g}}
}

// And matches when every operand matches. No operands matches.
func And(gs ...*Guard) *Guard {
	return &Guard{kind: guardAnd, operands: gs}
}

// Or matches when any operand matches. No operands does not match.
func Or(gs ...*Guard) *Guard {
	return &Guard{kind: guardOr, operands: gs}
}

// Evaluate resolves the guard against a capability set and value store.
// A nil guard is always true. Evaluation is pure and total: missing
// capabilities and missing paths are false, never errors. And/Or
// short-circuit left to right.
func (g *Guard) Evaluate(caps CapabilitySet, values *ValueStore) bool {
	if g == nil {
		return true
	}

	switch g.kind {
	case guardHasCapability:
		return caps.Contains(g.capability)
	case guardValueTruthy:
		return values.Truthy(g.path)
	case guardNot:
		return !g.operands[0].Evaluate(caps, values)
	case guardAnd:
		for _, operand := range g.operands {
			if !operand.Evaluate(caps, values) {
				return false
			}
		}
		return true
	case guardOr:
		for _, operand := range g.operands {
			if operand.Evaluate(caps, values) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the guard expression for listings and lint output.
func (g *Guard) String() string {
	if g == nil {
		return "always"
	}

	switch g.kind {
	case guardHasCapability:
		return fmt.Sprintf("hasCapability(%q)", g.capability)
	case guardValueTruthy:
		return fmt.Sprintf("truthy(%s)", g.path)
	case guardNot:
		return "not(" + g.operands[0].String() + ")"
	case guardAnd:
		return "allOf(" + joinGuards(g.operands) + ")"
	case guardOr:
		return "anyOf(" + joinGuards(g.operands) + ")"
	default:
		return "invalid"
	}
}

func joinGuards(gs []*Guard) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = g.String()
	}
	return strings.Join(parts, ", ")
}

// CompileGuard builds a guard from its catalog YAML form: a mapping with
// exactly one of the keys hasCapability, truthy, not, allOf, anyOf.
// A nil input compiles to the always-true nil guard. Any other shape is
// a MalformedGuardError.
func CompileGuard(raw any) (*Guard, error) {
	if raw == nil {
		return nil, nil
	}

	node, ok := raw.(map[string]any)
	if !ok {
		return nil, &MalformedGuardError{Detail: fmt.Sprintf("expected mapping, got %T", raw)}
	}
	if len(node) != 1 {
		return nil, &MalformedGuardError{Detail: fmt.Sprintf("expected exactly one predicate key, got %s", keyList(node))}
	}

	for key, value := range node {
		switch key {
		case "hasCapability":
			id, ok := value.(string)
			if !ok || id == "" {
				return nil, &MalformedGuardError{Detail: "hasCapability requires a non-empty string"}
			}
			return HasCapability(id), nil

		case "truthy":
			path, ok := value.(string)
			if !ok || path == "" {
				return nil, &MalformedGuardError{Detail: "truthy requires a non-empty path"}
			}
			return ValueTruthy(path), nil

		case "not":
			operand, err := CompileGuard(value)
			if err != nil {
				return nil, err
			}
			if operand == nil {
				return nil, &MalformedGuardError{Detail: "not requires an operand"}
			}
			return Not(operand), nil

		case "allOf", "anyOf":
			operands, err := compileGuardList(key, value)
			if err != nil {
				return nil, err
			}
			if key == "allOf" {
				return And(operands...), nil
			}
			return Or(operands...), nil

		default:
			return nil, &MalformedGuardError{Detail: "unknown predicate kind " + key}
		}
	}

	// Unreachable: the single-key map always returns above.
	return nil, &MalformedGuardError{Detail: "empty guard"}
}

func compileGuardList(key string, value any) ([]*Guard, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &MalformedGuardError{Detail: key + " requires a sequence of guards"}
	}

	operands := make([]*Guard, 0, len(items))
	for _, item := range items {
		operand, err := CompileGuard(item)
		if err != nil {
			return nil, err
		}
		if operand == nil {
			return nil, &MalformedGuardError{Detail: key + " operands must not be empty"}
		}
		operands = append(operands, operand)
	}

	return operands, nil
}

func keyList(node map[string]any) string {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
