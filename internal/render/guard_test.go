package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardEvaluate(t *testing.T) {
	caps := NewCapabilitySet("route.openshift.io/v1", "apps/v1")
	values := NewValueStore(map[string]any{
		"ingress": map[string]any{"enabled": true},
		"debug":   false,
	})

	tests := []struct {
		name  string
		guard *Guard
		want  bool
	}{
		{
			name:  "nil guard is always true",
			guard: nil,
			want:  true,
		},
		{
			name:  "capability present",
			guard: HasCapability("route.openshift.io/v1"),
			want:  true,
		},
		{
			name:  "capability absent",
			guard: HasCapability("gateway.networking.k8s.io/v1"),
			want:  false,
		},
		{
			name:  "capability match is case sensitive",
			guard: HasCapability("Route.openshift.io/v1"),
			want:  false,
		},
		{
			name:  "truthy value",
			guard: ValueTruthy("ingress.enabled"),
			want:  true,
		},
		{
			name:  "falsy value",
			guard: ValueTruthy("debug"),
			want:  false,
		},
		{
			name:  "missing path is false not fatal",
			guard: ValueTruthy("no.such.path"),
			want:  false,
		},
		{
			name:  "not inverts",
			guard: Not(HasCapability("route.openshift.io/v1")),
			want:  false,
		},
		{
			name:  "and requires all operands",
			guard: And(HasCapability("apps/v1"), ValueTruthy("ingress.enabled")),
			want:  true,
		},
		{
			name:  "and stops at first false",
			guard: And(ValueTruthy("debug"), HasCapability("apps/v1")),
			want:  false,
		},
		{
			name:  "empty and is true",
			guard: And(),
			want:  true,
		},
		{
			name:  "or takes first true",
			guard: Or(ValueTruthy("debug"), HasCapability("apps/v1")),
			want:  true,
		},
		{
			name:  "empty or is false",
			guard: Or(),
			want:  false,
		},
		{
			name: "nested expression",
			guard: Or(
				And(HasCapability("route.openshift.io/v1"), ValueTruthy("ingress.enabled")),
				ValueTruthy("debug"),
			),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.guard.Evaluate(caps, values))
		})
	}
}

func TestNotIsInvolutionOverEvaluate(t *testing.T) {
	caps := NewCapabilitySet("route.openshift.io/v1")
	values := NewValueStore(map[string]any{"flag": true})

	guards := []*Guard{
		HasCapability("route.openshift.io/v1"),
		HasCapability("absent/v1"),
		ValueTruthy("flag"),
		ValueTruthy("missing"),
		And(ValueTruthy("flag"), HasCapability("absent/v1")),
		Or(ValueTruthy("missing"), HasCapability("route.openshift.io/v1")),
	}

	for _, g := range guards {
		assert.Equal(t, !g.Evaluate(caps, values), Not(g).Evaluate(caps, values), "guard %s", g)
	}
}

func TestCompileGuard(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    string
		wantErr bool
	}{
		{
			name: "nil compiles to always",
			raw:  nil,
			want: "always",
		},
		{
			name: "hasCapability",
			raw:  map[string]any{"hasCapability": "route.openshift.io/v1"},
			want: `hasCapability("route.openshift.io/v1")`,
		},
		{
			name: "truthy",
			raw:  map[string]any{"truthy": "ingress.enabled"},
			want: "truthy(ingress.enabled)",
		},
		{
			name: "not",
			raw: map[string]any{"not": map[string]any{
				"hasCapability": "route.openshift.io/v1",
			}},
			want: `not(hasCapability("route.openshift.io/v1"))`,
		},
		{
			name: "allOf",
			raw: map[string]any{"allOf": []any{
				map[string]any{"hasCapability": "apps/v1"},
				map[string]any{"truthy": "ingress.enabled"},
			}},
			want: `allOf(hasCapability("apps/v1"), truthy(ingress.enabled))`,
		},
		{
			name: "anyOf",
			raw: map[string]any{"anyOf": []any{
				map[string]any{"truthy": "a"},
				map[string]any{"truthy": "b"},
			}},
			want: "anyOf(truthy(a), truthy(b))",
		},
		{
			name:    "unknown predicate kind",
			raw:     map[string]any{"hasFeature": "x"},
			wantErr: true,
		},
		{
			name:    "non-mapping guard",
			raw:     "hasCapability",
			wantErr: true,
		},
		{
			name:    "multiple keys",
			raw:     map[string]any{"truthy": "a", "hasCapability": "b"},
			wantErr: true,
		},
		{
			name:    "non-string capability",
			raw:     map[string]any{"hasCapability": 7},
			wantErr: true,
		},
		{
			name:    "not with missing operand",
			raw:     map[string]any{"not": nil},
			wantErr: true,
		},
		{
			name:    "allOf with non-sequence",
			raw:     map[string]any{"allOf": "x"},
			wantErr: true,
		},
		{
			name: "malformed nested operand",
			raw: map[string]any{"allOf": []any{
				map[string]any{"bogus": "x"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, err := CompileGuard(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var malformed *MalformedGuardError
				assert.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, guard.String())
		})
	}
}
