package render

import "fmt"

// RenderAll runs one render pass over the catalog. Units are visited in
// catalog order; guards decide inclusion, groups enforce mutual
// exclusion, and per-unit render failures never abort the pass. The
// pass is a pure function of its inputs: identical inputs produce
// byte-identical results.
func RenderAll(units []TemplateUnit, caps CapabilitySet, values *ValueStore, helpers HelperSet) RenderResult {
	var result RenderResult

	// group -> name of the unit that claimed it. A group is claimed the
	// moment a member's guard evaluates true, so a conflicting later
	// unit is rejected even if the first member's render then fails.
	claimed := make(map[string]string)

	for i, unit := range units {
		if !unit.Guard.Evaluate(caps, values) {
			result.Skipped = append(result.Skipped, unit.Name)
			continue
		}

		if unit.Group != "" {
			if winner, taken := claimed[unit.Group]; taken {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Kind:  DiagGroupExclusivity,
					Unit:  unit.Name,
					Group: unit.Group,
					Message: fmt.Sprintf("unit %q and unit %q are both enabled in exclusive group %q",
						winner, unit.Name, unit.Group),
				})
				continue
			}
			claimed[unit.Group] = unit.Name
		}

		content, err := Render(unit, values, helpers)
		if err != nil {
			result.Failed = append(result.Failed, UnitError{Unit: unit.Name, Err: err})
			continue
		}

		result.Documents = append(result.Documents, RenderedDocument{
			Name:    unit.Name,
			Content: content,
			Order:   i,
		})
	}

	return result
}
