package render

// TemplateUnit is one named resource template in the catalog.
type TemplateUnit struct {
	// Name identifies the unit; unique within a render pass.
	Name string

	// Group is an optional mutual-exclusion tag. At most one unit per
	// group may be accepted per pass.
	Group string

	// Guard gates inclusion. A nil guard means always included.
	Guard *Guard

	// Body is the template source with ${...} placeholders.
	Body string
}

// RenderedDocument is one accepted output of a render pass.
type RenderedDocument struct {
	// Name is the source unit's name.
	Name string

	// Content is the fully substituted template body.
	Content string

	// Order is the unit's position in the input catalog. Output order
	// always matches catalog order.
	Order int
}

// UnitError records a per-unit render failure.
type UnitError struct {
	Unit string
	Err  error
}

// DiagGroupExclusivity marks a diagnostic raised when more than one unit
// in a mutual-exclusion group evaluates true in the same pass.
const DiagGroupExclusivity = "GroupExclusivityViolation"

// Diagnostic describes a contract violation detected during a render
// pass. Diagnostics do not abort the pass; the caller must surface them
// before applying any output.
type Diagnostic struct {
	// Kind classifies the violation (e.g. DiagGroupExclusivity).
	Kind string

	// Unit is the rejected unit.
	Unit string

	// Group is the contested mutual-exclusion group, if any.
	Group string

	// Message is a human-readable description.
	Message string
}

// RenderResult is the complete outcome of one render pass.
type RenderResult struct {
	// Documents holds accepted outputs in catalog order.
	Documents []RenderedDocument

	// Skipped lists units whose guard evaluated false.
	Skipped []string

	// Failed lists units whose render failed (missing required value,
	// helper misuse). Other units are unaffected.
	Failed []UnitError

	// Diagnostics lists contract violations such as group conflicts.
	Diagnostics []Diagnostic
}

// Clean reports whether the result is safe to apply: no failed units and
// no diagnostics.
func (r *RenderResult) Clean() bool {
	return len(r.Failed) == 0 && len(r.Diagnostics) == 0
}
