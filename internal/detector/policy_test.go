package detector

import (
	"testing"

	"slope-monitor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewPolicy_DefaultsToDirectMapping(t *testing.T) {
	p, err := NewPolicy("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, PolicyDirect, p.Kind())

	for severity, table := range map[model.Severity]int{
		model.SeverityAlert:   1,
		model.SeverityCaution: 2,
		model.SeverityNormal:  8,
	} {
		got, ok := p.Target(0, severity, model.SeverityNormal)
		assert.True(t, ok)
		assert.Equal(t, table, got, severity.String())
	}

	_, err = NewPolicy("random", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func Test_ChainStep(t *testing.T) {
	p := DefaultChainStep()
	cases := []struct {
		name     string
		current  int
		computed model.Severity
		reported model.Severity
		expected int
		ok       bool
	}{
		{name: "loosen from start", current: 0, computed: model.SeverityAlert, reported: model.SeverityNormal, expected: 4, ok: true},
		{name: "loosen middle", current: 5, computed: model.SeverityCaution, reported: model.SeverityNormal, expected: 8, ok: true},
		{name: "loosen at end", current: 9, computed: model.SeverityAlert, reported: model.SeverityCaution},
		{name: "tighten middle", current: 8, computed: model.SeverityNormal, reported: model.SeverityAlert, expected: 5, ok: true},
		{name: "tighten to start", current: 4, computed: model.SeverityNormal, reported: model.SeverityCaution, expected: 0, ok: true},
		{name: "tighten at start", current: 0, computed: model.SeverityNormal, reported: model.SeverityAlert},
		{name: "table off chain", current: 2, computed: model.SeverityAlert, reported: model.SeverityNormal},
		{name: "agreement", current: 5, computed: model.SeverityCaution, reported: model.SeverityCaution},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Target(tt.current, tt.computed, tt.reported)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func Test_NewPolicy_Overrides(t *testing.T) {
	p, err := NewPolicy(PolicyChain, nil, []int{1, 2})
	require.NoError(t, err)
	got, ok := p.Target(1, model.SeverityAlert, model.SeverityNormal)
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	p, err = NewPolicy(PolicyDirect, map[model.Severity]int{model.SeverityAlert: 3}, nil)
	require.NoError(t, err)
	got, ok = p.Target(0, model.SeverityAlert, model.SeverityNormal)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
	_, ok = p.Target(0, model.SeverityNormal, model.SeverityAlert)
	assert.False(t, ok)
}
