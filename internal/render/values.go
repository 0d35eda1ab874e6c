package render

import (
	"strconv"
	"strings"
)

// ValueNode is one node of the configuration tree: a scalar, a []any
// sequence, or a map[string]any mapping. These are the shapes yaml.v3
// produces for untyped documents, used as-is.
type ValueNode = any

// ValueStore is the merged configuration tree queried by templates via
// dotted-path lookup. It is read-only for the duration of a render pass.
type ValueStore struct {
	root map[string]any
}

// NewValueStore wraps an already-merged configuration tree. A nil tree
// yields a store where every lookup misses.
func NewValueStore(root map[string]any) *ValueStore {
	return &ValueStore{root: root}
}

// Lookup resolves a dot-delimited path over mapping keys. An integer
// segment indexes into a sequence. A missing path returns (nil, false);
// lookups never mutate the tree.
func (s *ValueStore) Lookup(path string) (ValueNode, bool) {
	if s == nil || path == "" {
		return nil, false
	}

	var current ValueNode = s.root
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			// Scalar reached before the path was consumed.
			return nil, false
		}
	}

	return current, true
}

// Truthy reports whether path resolves to a non-empty, non-false,
// non-zero value. Missing paths are falsy, never errors.
func (s *ValueStore) Truthy(path string) bool {
	value, found := s.Lookup(path)
	return found && Truthy(value)
}

// Truthy reports whether a single value counts as true: false for nil,
// false booleans, zero numbers, empty strings, and empty collections.
func Truthy(value ValueNode) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Merge deep-merges override into base and returns a new tree. Mapping
// keys merge recursively; scalars and sequences from the override fully
// replace the base value at that path. Merging across incompatible
// shapes (mapping into scalar or vice versa) takes the override
// wholesale. Neither input is mutated.
func Merge(base, override map[string]any) map[string]any {
	result := copyMap(base)

	for key, overrideValue := range override {
		baseValue, exists := result[key]
		if !exists {
			result[key] = deepCopy(overrideValue)
			continue
		}

		baseMap, baseIsMap := baseValue.(map[string]any)
		overrideMap, overrideIsMap := overrideValue.(map[string]any)
		if baseIsMap && overrideIsMap {
			result[key] = Merge(baseMap, overrideMap)
			continue
		}

		// Scalars, sequences, and shape mismatches: override wins.
		result[key] = deepCopy(overrideValue)
	}

	return result
}

// copyMap creates a shallow copy of a map.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// deepCopy creates a deep copy of any value.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			result[k] = deepCopy(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = deepCopy(val)
		}
		return result
	default:
		// Scalars are immutable, return as-is.
		return value
	}
}
