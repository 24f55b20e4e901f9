package shape

import (
	"fmt"
	"math"

	"github.com/sompyler/sompyler"
)

// Point is a keypoint of a shape: a plane point (time x, amplitude y) or a
// spatial point, which additionally carries the point of a nested envelope
// riding on it, e.g. the envelope of a harmonic partial.
type Point struct {
	X, Y float64
	Env  *Point // nil for plane points
}

// Plane returns a two-dimensional point.
func Plane(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Spatial returns a three-dimensional point; env is mandatory.
func Spatial(x, y float64, env *Point) (Point, error) {
	if env == nil {
		return Point{}, fmt.Errorf("point (%v, %v): %w", x, y, sompyler.ErrMissingEnvelope)
	}
	return Point{X: x, Y: y, Env: env}, nil
}

func (p Point) IsSpatial() bool {
	return p.Env != nil
}

// Len returns the number of dimensions: 2 or 3.
func (p Point) Len() int {
	if p.Env != nil {
		return 3
	}
	return 2
}

// Coord returns the i-th coordinate: 0 is x, 1 is y and 2, for spatial
// points only, the amplitude of the nested envelope.
func (p Point) Coord(i int) (float64, error) {
	switch {
	case i == 0:
		return p.X, nil
	case i == 1:
		return p.Y, nil
	case i == 2 && p.Env != nil:
		return p.Env.Y, nil
	}
	return 0, fmt.Errorf("%w: index %d of a %d-dimensional point", sompyler.ErrIndex, i, p.Len())
}

func (p Point) String() string {
	if p.Env != nil {
		return fmt.Sprintf("(%g, %g, %v)", p.X, p.Y, *p.Env)
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance is the euclidean distance of a and b in the time-amplitude plane.
// Nested envelopes do not count.
func Distance(a, b Point) float64 {
	return math.Sqrt((b.Y-a.Y)*(b.Y-a.Y) + (b.X-a.X)*(b.X-a.X))
}

// WeightedAverage interpolates linearly between a (d = 0) and b (d = 1).
// The envelopes of two spatial points are interpolated recursively; if only
// one of them is spatial, its envelope is kept unchanged.
func WeightedAverage(a Point, d float64, b Point) Point {
	ret := Point{
		X: (1-d)*a.X + d*b.X,
		Y: (1-d)*a.Y + d*b.Y,
	}
	switch {
	case a.Env != nil && b.Env != nil:
		env := WeightedAverage(*a.Env, d, *b.Env)
		ret.Env = &env
	case a.Env != nil:
		ret.Env = a.Env
	case b.Env != nil:
		ret.Env = b.Env
	}
	return ret
}
