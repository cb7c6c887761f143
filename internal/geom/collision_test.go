package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(cx, cy, half float64) []Vec2 {
	return []Vec2{
		{cx - half, cy - half}, {cx + half, cy - half},
		{cx + half, cy + half}, {cx - half, cy + half},
	}
}

func TestPolygonsIntersect_BothBackendsAgree(t *testing.T) {
	cases := []struct {
		name     string
		a, b     []Vec2
		expected bool
	}{
		{"disjoint", square(0, 0, 1), square(10, 10, 1), false},
		{"overlapping", square(0, 0, 1), square(1, 0, 1), true},
		{"touching", square(0, 0, 1), square(2, 0, 1), true},
		{"nested", square(0, 0, 5), square(0, 0, 1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sweep := PolygonsIntersect(tc.a, tc.b, BackendSweepLine)
			halfPlane := PolygonsIntersect(tc.a, tc.b, BackendHalfPlane)
			assert.Equal(t, tc.expected, sweep, "sweep-line backend")
			assert.Equal(t, tc.expected, halfPlane, "half-plane backend")
			assert.Equal(t, sweep, halfPlane, "backends must agree")
		})
	}
}

func TestSegmentIntersects(t *testing.T) {
	s1 := Segment{Vec2{0, 0}, Vec2{2, 2}}
	s2 := Segment{Vec2{0, 2}, Vec2{2, 0}}
	assert.True(t, s1.Intersects(s2))

	s3 := Segment{Vec2{0, 0}, Vec2{1, 0}}
	s4 := Segment{Vec2{2, 0}, Vec2{3, 0}}
	assert.False(t, s3.Intersects(s4))
}

func TestMat4ComposesRotationAndTranslation(t *testing.T) {
	m := TranslateXY(1, 0).Mul(RotateZ(0))
	p := m.Apply(Vec2{0, 0})
	require.InDelta(t, 1.0, p.X, 1e-9)
	require.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestPrimitiveWorldPolygonBox(t *testing.T) {
	box := Primitive{Kind: KindBox, Length: 2, Depth: 2, Local: Identity4()}
	poly := box.WorldPolygon(TranslateXY(5, 5))
	require.Len(t, poly, 4)
	for _, v := range poly {
		assert.InDelta(t, 5.0, v.X, 1.01)
		assert.InDelta(t, 5.0, v.Y, 1.01)
	}
}
