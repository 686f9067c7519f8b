package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKPIProgress(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		target float64
		want   int
	}{
		{"half way", 50, 100, 50},
		{"exact", 100, 100, 100},
		{"over target clamps", 150, 100, 100},
		{"negative clamps to zero", -10, 100, 0},
		{"zero target", 42, 0, 0},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KPIProgress(tt.value, tt.target))
		})
	}
}

func TestStatusForProgress(t *testing.T) {
	tests := []struct {
		progress int
		want     Status
	}{
		{100, StatusOnTrack},
		{90, StatusOnTrack},
		{89, StatusAtRisk},
		{60, StatusAtRisk},
		{59, StatusBehind},
		{0, StatusBehind},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForProgress(tt.progress), "progress=%d", tt.progress)
	}
}

func TestRollup(t *testing.T) {
	assert.Equal(t, 0, Rollup(nil), "empty set rolls up to zero")
	assert.Equal(t, 50, Rollup([]int{50}))
	assert.Equal(t, 70, Rollup([]int{50, 90}))
	assert.Equal(t, 67, Rollup([]int{50, 90, 60}))
	assert.Equal(t, 100, Rollup([]int{100, 100}))
}

func TestParentLevel(t *testing.T) {
	lvl, ok := ParentLevel(LevelDepartment)
	assert.True(t, ok)
	assert.Equal(t, LevelCompany, lvl)

	lvl, ok = ParentLevel(LevelIndividual)
	assert.True(t, ok)
	assert.Equal(t, LevelDepartment, lvl)

	_, ok = ParentLevel(LevelCompany)
	assert.False(t, ok, "company objectives are roots")
}

func TestDedupeIDs(t *testing.T) {
	got := DedupeIDs([]string{"a", "b", "a", "", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
