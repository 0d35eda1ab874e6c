// Package render implements the univchart render engine: a pure,
// deterministic pipeline that decides which template units to emit for a
// target platform and substitutes values into their bodies.
//
// A render pass is a function of three inputs built once per invocation:
// the catalog (an ordered list of TemplateUnit), the CapabilitySet
// advertised by the target platform, and the merged ValueStore. The pass
// performs no I/O; loading catalogs and writing documents belong to the
// internal/catalog package and the CLI respectively.
//
// Template units may carry a Guard (a boolean expression over capability
// membership and value truthiness) and a Group tag. At most one unit per
// group is accepted per pass; a second unit whose guard also evaluates
// true surfaces a GroupExclusivityViolation diagnostic instead of a
// document. Errors local to one unit never abort the pass.
package render
