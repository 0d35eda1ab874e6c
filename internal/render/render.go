package render

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// placeholderPattern matches ${...} placeholders in template bodies.
var placeholderPattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

// MissingValueError indicates a required placeholder with no resolvable
// value. It names the placeholder so catalog authors can find it.
type MissingValueError struct {
	Placeholder string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value for required placeholder ${%s}", e.Placeholder)
}

// Render substitutes a unit's placeholders and returns the concrete
// document content. Placeholder forms:
//
//	${path}           value lookup; missing renders empty
//	${path!}          value lookup; missing is a MissingValueError
//	${helper a b}     helper call; arguments resolve as required lookups
//
// Rendering has no side effects; one failed placeholder fails the whole
// unit and the first error encountered is returned.
func Render(unit TemplateUnit, values *ValueStore, helpers HelperSet) (string, error) {
	var firstErr error

	result := placeholderPattern.ReplaceAllStringFunc(unit.Body, func(match string) string {
		expr := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])

		replacement, err := resolvePlaceholder(expr, values, helpers)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return replacement
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// resolvePlaceholder evaluates one placeholder expression.
func resolvePlaceholder(expr string, values *ValueStore, helpers HelperSet) (string, error) {
	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return "", &MissingValueError{Placeholder: expr}
	}

	// Single token: a value path, required when suffixed with "!".
	if len(tokens) == 1 {
		path := tokens[0]
		required := strings.HasSuffix(path, "!")
		path = strings.TrimSuffix(path, "!")

		value, found := values.Lookup(path)
		if !found {
			if required {
				return "", &MissingValueError{Placeholder: path}
			}
			return "", nil
		}
		return valueToString(value)
	}

	// Multiple tokens: a helper call with value-path arguments.
	name := tokens[0]
	args := make([]string, 0, len(tokens)-1)
	for _, argPath := range tokens[1:] {
		value, found := values.Lookup(argPath)
		if !found {
			return "", &MissingValueError{Placeholder: argPath}
		}
		arg, err := valueToString(value)
		if err != nil {
			return "", err
		}
		args = append(args, arg)
	}

	return helpers.Invoke(name, args)
}

// valueToString converts a looked-up value to its replacement text.
// Scalars convert directly; sequences and mappings render as flow-style
// YAML so they stay parseable in the output document.
func valueToString(value ValueNode) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32, float64:
		return fmt.Sprintf("%v", v), nil
	case nil:
		return "", nil
	default:
		var node yaml.Node
		if err := node.Encode(value); err != nil {
			return "", fmt.Errorf("encode value: %w", err)
		}
		setFlowStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return "", fmt.Errorf("marshal value: %w", err)
		}
		return strings.TrimSuffix(string(out), "\n"), nil
	}
}

// setFlowStyle forces flow style on a node tree so collections render
// on a single line.
func setFlowStyle(node *yaml.Node) {
	node.Style = yaml.FlowStyle
	for _, child := range node.Content {
		setFlowStyle(child)
	}
}
