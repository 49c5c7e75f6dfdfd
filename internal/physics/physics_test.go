package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	base := Rect{X: 10, Y: 10, Width: 20, Height: 10}

	examples := []struct {
		Name  string
		Other Rect
		Want  bool
	}{
		{Name: "identical", Other: base, Want: true},
		{Name: "contained", Other: Rect{X: 15, Y: 12, Width: 2, Height: 2}, Want: true},
		{Name: "partial overlap", Other: Rect{X: 25, Y: 15, Width: 20, Height: 20}, Want: true},
		{Name: "touching right edge", Other: Rect{X: 30, Y: 10, Width: 5, Height: 5}, Want: false},
		{Name: "touching bottom edge", Other: Rect{X: 10, Y: 20, Width: 5, Height: 5}, Want: false},
		{Name: "touching left edge", Other: Rect{X: 0, Y: 10, Width: 10, Height: 10}, Want: false},
		{Name: "disjoint", Other: Rect{X: 100, Y: 100, Width: 1, Height: 1}, Want: false},
		{Name: "zero size inside", Other: Rect{X: 15, Y: 15}, Want: false},
	}

	for _, ex := range examples {
		t.Run(ex.Name, func(t *testing.T) {
			assert.Equal(t, ex.Want, Collide(base, ex.Other))
		})
	}
}

func TestCollideIsSymmetric(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 5, Y: 5, Width: 10, Height: 10},
		{X: 10, Y: 0, Width: 10, Height: 10},
		{X: -3, Y: 9.5, Width: 4, Height: 16},
		{X: 2, Y: 2, Width: 1, Height: 1},
	}
	for _, a := range rects {
		for _, b := range rects {
			assert.Equal(t, Collide(a, b), Collide(b, a), "a=%+v b=%+v", a, b)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(15, 0, 10))
	assert.Equal(t, 4.5, Clamp(4.5, 0, 10))
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 5}
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 25.0, r.Bottom())
}
