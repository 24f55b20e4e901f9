package shape_test

import (
	"errors"
	"testing"

	"github.com/sompyler/sompyler"
	"github.com/sompyler/sompyler/shape"
)

func spatial(t *testing.T, x, y float64, env shape.Point) shape.Point {
	t.Helper()
	p, err := shape.Spatial(x, y, &env)
	if err != nil {
		t.Fatalf("Spatial failed: %v", err)
	}
	return p
}

func TestSpatialNeedsEnvelope(t *testing.T) {
	if _, err := shape.Spatial(1, 2, nil); !errors.Is(err, sompyler.ErrMissingEnvelope) {
		t.Fatalf("Spatial without envelope error = %v, want ErrMissingEnvelope", err)
	}
}

func TestPointCoords(t *testing.T) {
	plane := shape.Plane(1, 2)
	space := spatial(t, 3, 4, shape.Plane(5, 6))
	if plane.Len() != 2 || space.Len() != 3 {
		t.Fatalf("Len() = %d, %d, want 2, 3", plane.Len(), space.Len())
	}
	for _, c := range []struct {
		p    shape.Point
		i    int
		want float64
	}{
		{plane, 0, 1},
		{plane, 1, 2},
		{space, 0, 3},
		{space, 1, 4},
		{space, 2, 6},
	} {
		got, err := c.p.Coord(c.i)
		if err != nil || got != c.want {
			t.Errorf("%v.Coord(%d) = (%v, %v), want %v", c.p, c.i, got, err, c.want)
		}
	}
	for _, c := range []struct {
		p shape.Point
		i int
	}{{plane, 2}, {plane, -1}, {space, 3}} {
		if _, err := c.p.Coord(c.i); !errors.Is(err, sompyler.ErrIndex) {
			t.Errorf("%v.Coord(%d) error = %v, want ErrIndex", c.p, c.i, err)
		}
	}
}

func TestDistance(t *testing.T) {
	a := spatial(t, 1, 1, shape.Plane(100, 100))
	if d := shape.Distance(a, a); d != 0 {
		t.Fatalf("Distance(a, a) = %v", d)
	}
	if d := shape.Distance(shape.Plane(0, 0), spatial(t, 3, 4, shape.Plane(9, 9))); d != 5 {
		t.Fatalf("Distance = %v, want 5 (envelope excluded)", d)
	}
}

func TestWeightedAverageBoundaries(t *testing.T) {
	pairs := [][2]shape.Point{
		{shape.Plane(0, 0.2), shape.Plane(1, 1)},
		{shape.Plane(-3, 5), shape.Plane(7, -1)},
		{spatial(t, 0, 0, shape.Plane(0, 1)), spatial(t, 2, 1, shape.Plane(1, 0))},
	}
	for _, p := range pairs {
		if got := shape.WeightedAverage(p[0], 0, p[1]); got.String() != p[0].String() {
			t.Errorf("WeightedAverage(%v, 0, %v) = %v", p[0], p[1], got)
		}
		if got := shape.WeightedAverage(p[0], 1, p[1]); got.String() != p[1].String() {
			t.Errorf("WeightedAverage(%v, 1, %v) = %v", p[0], p[1], got)
		}
	}
}

func TestWeightedAverageEnvelopes(t *testing.T) {
	a := spatial(t, 0, 0, shape.Plane(0, 1))
	b := spatial(t, 2, 1, shape.Plane(1, 0))
	got := shape.WeightedAverage(a, 0.25, b)
	if got.X != 0.5 || got.Y != 0.25 || got.Env == nil || got.Env.X != 0.25 || got.Env.Y != 0.75 {
		t.Fatalf("WeightedAverage of spatial points = %v", got)
	}
	half := shape.WeightedAverage(shape.Plane(0, 0), 0.5, b)
	if half.Env != b.Env {
		t.Fatalf("envelope of the only spatial point was not kept: %v", half)
	}
	half = shape.WeightedAverage(a, 0.5, shape.Plane(2, 2))
	if half.Env != a.Env {
		t.Fatalf("envelope of the only spatial point was not kept: %v", half)
	}
	if plain := shape.WeightedAverage(shape.Plane(0, 0), 0.5, shape.Plane(2, 2)); plain.IsSpatial() {
		t.Fatalf("average of plane points is spatial: %v", plain)
	}
}
