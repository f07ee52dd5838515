package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(o Openings) []string {
	var result []string
	for _, op := range o {
		result = append(result, op.Name)
	}
	return result
}

func TestOpeningsInsertAt(t *testing.T) {
	o := Openings{{Name: "a"}, {Name: "b"}}

	got := o.InsertAt(1, Opening{Name: "x"}, Opening{Name: "y"})
	assert.Equal(t, []string{"a", "x", "y", "b"}, names(got))
	assert.Equal(t, []string{"a", "b"}, names(o), "receiver must not change")

	assert.Equal(t, []string{"x", "a", "b"}, names(o.InsertAt(-3, Opening{Name: "x"})))
	assert.Equal(t, []string{"a", "b", "x"}, names(o.InsertAt(9, Opening{Name: "x"})))
}

func TestOpeningsRemoveAt(t *testing.T) {
	o := Openings{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Equal(t, []string{"a", "c"}, names(o.RemoveAt(1)))
	assert.Equal(t, []string{"b", "c"}, names(o.RemoveAt(0)))
	assert.Equal(t, []string{"a", "b", "c"}, names(o.RemoveAt(3)))
	assert.Equal(t, []string{"a", "b", "c"}, names(o), "receiver must not change")
}

func TestOpeningsClone(t *testing.T) {
	o := Openings{{Name: "a", Along: 1}}
	c := o.Clone()
	c[0].Along = 2

	assert.Equal(t, 1.0, o[0].Along)
	assert.Nil(t, Openings(nil).Clone())
}

func TestOpeningCounts(t *testing.T) {
	result := LayoutResult{Walls: []WallLayout{
		{Segments: []SegmentLayout{{Openings: make([]PlacedOpening, 2)}, {Openings: nil}}},
		{Segments: []SegmentLayout{{Openings: make([]PlacedOpening, 3)}}},
	}}
	assert.Equal(t, 2, result.Walls[0].OpeningCount())
	assert.Equal(t, 5, result.OpeningCount())
}

func TestSettingsNormalized(t *testing.T) {
	s := LayoutSettings{Tolerance: 0.01, Workers: -1}.Normalized()
	d := DefaultSettings()

	assert.Equal(t, 0.01, s.Tolerance)
	assert.Equal(t, d.SillStep, s.SillStep)
	assert.Equal(t, d.MaxOpenings, s.MaxOpenings)
	assert.Equal(t, d.MaxBackoff, s.MaxBackoff)
	assert.Equal(t, d.Workers, s.Workers)
}

func TestNewProject(t *testing.T) {
	p := NewProject()
	assert.Equal(t, "Untitled", p.Name)
	require.NotNil(t, p.Walls)
	assert.Empty(t, p.Walls)
}
