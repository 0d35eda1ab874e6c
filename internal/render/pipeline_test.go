package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routeCapability = "route.openshift.io/v1"

// exposeCatalog is the route-vs-ingress pattern: two units in one
// exclusion group whose guards partition the capability space.
func exposeCatalog() []TemplateUnit {
	return []TemplateUnit{
		{
			Name:  "route",
			Group: "expose-method",
			Guard: HasCapability(routeCapability),
			Body:  "kind: Route\nhost: ${ingress.host}",
		},
		{
			Name:  "ingress",
			Group: "expose-method",
			Guard: Not(HasCapability(routeCapability)),
			Body:  "kind: Ingress\nhost: ${ingress.host}",
		},
	}
}

func pipelineValues() *ValueStore {
	return NewValueStore(map[string]any{
		"ingress": map[string]any{"host": "app.example.com"},
	})
}

func TestRenderAllSkipsWithoutCapability(t *testing.T) {
	units := []TemplateUnit{{
		Name:  "route",
		Guard: HasCapability(routeCapability),
		Body:  "kind: Route",
	}}

	result := RenderAll(units, NewCapabilitySet(), pipelineValues(), DefaultHelpers())

	assert.Empty(t, result.Documents)
	assert.Equal(t, []string{"route"}, result.Skipped)
	assert.True(t, result.Clean())
}

func TestRenderAllIncludesWithCapability(t *testing.T) {
	units := []TemplateUnit{{
		Name:  "route",
		Guard: HasCapability(routeCapability),
		Body:  "kind: Route",
	}}

	result := RenderAll(units, NewCapabilitySet(routeCapability), pipelineValues(), DefaultHelpers())

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "route", result.Documents[0].Name)
	assert.Equal(t, "kind: Route", result.Documents[0].Content)
	assert.Empty(t, result.Skipped)
}

func TestRenderAllExposeMethodIsExclusive(t *testing.T) {
	tests := []struct {
		name     string
		caps     CapabilitySet
		wantUnit string
	}{
		{
			name:     "platform with routes gets the route",
			caps:     NewCapabilitySet(routeCapability, "apps/v1"),
			wantUnit: "route",
		},
		{
			name:     "platform without routes gets the ingress",
			caps:     NewCapabilitySet("apps/v1"),
			wantUnit: "ingress",
		},
		{
			name:     "empty capability set gets the ingress",
			caps:     NewCapabilitySet(),
			wantUnit: "ingress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderAll(exposeCatalog(), tt.caps, pipelineValues(), DefaultHelpers())

			// Exactly one of the two renders, never both, never neither.
			require.Len(t, result.Documents, 1)
			assert.Equal(t, tt.wantUnit, result.Documents[0].Name)
			assert.Len(t, result.Skipped, 1)
			assert.True(t, result.Clean())
		})
	}
}

func TestRenderAllGroupExclusivityViolation(t *testing.T) {
	// Both guards true: a misauthored catalog the pipeline must detect
	// rather than silently emitting both variants.
	units := []TemplateUnit{
		{Name: "route", Group: "expose-method", Guard: ValueTruthy("ingress.host"), Body: "kind: Route"},
		{Name: "ingress", Group: "expose-method", Guard: ValueTruthy("ingress.host"), Body: "kind: Ingress"},
	}

	result := RenderAll(units, NewCapabilitySet(), pipelineValues(), DefaultHelpers())

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "route", result.Documents[0].Name)

	require.Len(t, result.Diagnostics, 1)
	diag := result.Diagnostics[0]
	assert.Equal(t, DiagGroupExclusivity, diag.Kind)
	assert.Equal(t, "ingress", diag.Unit)
	assert.Equal(t, "expose-method", diag.Group)
	assert.False(t, result.Clean())
}

func TestRenderAllPartialFailure(t *testing.T) {
	units := []TemplateUnit{
		{Name: "good", Body: "host: ${ingress.host}"},
		{Name: "broken", Body: "secret: ${tls.secret!}"},
		{Name: "also-good", Body: "kind: Service"},
	}

	result := RenderAll(units, NewCapabilitySet(), pipelineValues(), DefaultHelpers())

	// One broken template must not block unrelated templates.
	require.Len(t, result.Documents, 2)
	assert.Equal(t, "good", result.Documents[0].Name)
	assert.Equal(t, "also-good", result.Documents[1].Name)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "broken", result.Failed[0].Unit)

	var missing *MissingValueError
	require.ErrorAs(t, result.Failed[0].Err, &missing)
	assert.Equal(t, "tls.secret", missing.Placeholder)
	assert.False(t, result.Clean())
}

func TestRenderAllPreservesCatalogOrder(t *testing.T) {
	units := []TemplateUnit{
		{Name: "z-first", Body: "1"},
		{Name: "m-second", Guard: HasCapability("absent/v1"), Body: "2"},
		{Name: "a-third", Body: "3"},
	}

	result := RenderAll(units, NewCapabilitySet(), pipelineValues(), DefaultHelpers())

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "z-first", result.Documents[0].Name)
	assert.Equal(t, 0, result.Documents[0].Order)
	assert.Equal(t, "a-third", result.Documents[1].Name)
	assert.Equal(t, 2, result.Documents[1].Order)
}

func TestRenderAllIsDeterministic(t *testing.T) {
	caps := NewCapabilitySet(routeCapability)
	values := pipelineValues()
	helpers := DefaultHelpers()

	first := RenderAll(exposeCatalog(), caps, values, helpers)
	for i := 0; i < 3; i++ {
		again := RenderAll(exposeCatalog(), caps, values, helpers)
		assert.Equal(t, first, again)
	}
}
