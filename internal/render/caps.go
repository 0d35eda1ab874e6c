package render

// CapabilitySet is the set of API identifiers advertised by the target
// platform (e.g. "route.openshift.io/v1"). Membership is exact-match and
// case-sensitive; no normalization is applied. The set is immutable for
// the duration of a render pass.
type CapabilitySet map[string]struct{}

// NewCapabilitySet builds a capability set from a platform's API
// enumeration. Duplicates collapse; order is irrelevant.
func NewCapabilitySet(ids ...string) CapabilitySet {
	set := make(CapabilitySet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id was present in the construction input.
// Absence is a normal outcome, not a failure.
func (s CapabilitySet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}
