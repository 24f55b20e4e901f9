// Package shape reconstructs continuous curves, like amplitude envelopes,
// from sparse authored keypoints.
package shape

import (
	"fmt"
	"iter"
	"sort"

	"github.com/sompyler/sompyler"
)

// Shape is a curve through an ordered list of keypoints. Between two
// adjacent keypoints, the curve is their weighted average. Shapes are
// immutable and safe for concurrent use.
type Shape struct {
	points []Point
}

// New returns a shape through points, which need non-decreasing x
// coordinates. Two points with the same x make the curve jump.
func New(points ...Point) (*Shape, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: a shape needs at least two points, got %d", sompyler.ErrConfiguration, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			return nil, fmt.Errorf("%w: shape point %d at x=%v comes before point %d at x=%v", sompyler.ErrConfiguration, i+1, points[i].X, i, points[i-1].X)
		}
	}
	return &Shape{points: append([]Point(nil), points...)}, nil
}

// Points returns a copy of the keypoints.
func (s *Shape) Points() []Point {
	return append([]Point(nil), s.points...)
}

// Span returns the first and last x coordinate of the shape.
func (s *Shape) Span() (from, to float64) {
	return s.points[0].X, s.points[len(s.points)-1].X
}

// At returns the point of the curve at x.
func (s *Shape) At(x float64) (Point, error) {
	from, to := s.Span()
	if x < from || x > to {
		return Point{}, fmt.Errorf("%w: x=%v outside of shape [%v, %v]", sompyler.ErrRange, x, from, to)
	}
	return s.at(x), nil
}

func (s *Shape) at(x float64) Point {
	j := sort.Search(len(s.points), func(i int) bool { return s.points[i].X > x })
	j = min(max(j, 1), len(s.points)-1)
	a, b := s.points[j-1], s.points[j]
	w := b.X - a.X
	if w == 0 {
		return b
	}
	return WeightedAverage(a, (x-a.X)/w, b)
}

// AtFraction returns the point at fraction d of the shape's span, 0 being
// the first and 1 the last keypoint.
func (s *Shape) AtFraction(d float64) (Point, error) {
	if d < 0 || d > 1 {
		return Point{}, fmt.Errorf("%w: fraction %v outside of [0, 1]", sompyler.ErrRange, d)
	}
	from, to := s.Span()
	return s.at(from + d*(to-from)), nil
}

// Samples yields n evenly spaced points, the first at the first keypoint and
// the last one step before the last keypoint, so that the samples of shapes
// placed one after another do not overlap.
func (s *Shape) Samples(n int) iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		from, to := s.Span()
		step := (to - from) / float64(n)
		for i := 0; i < n; i++ {
			if !yield(i, s.at(from+float64(i)*step)) {
				return
			}
		}
	}
}

// Render returns the amplitudes of n samples of the shape.
func (s *Shape) Render(n int) []float64 {
	ret := make([]float64, n)
	for i, p := range s.Samples(n) {
		ret[i] = p.Y
	}
	return ret
}

// RenderEnvelope returns the amplitudes of the nested envelope at n samples.
// Samples where the curve has no nested envelope are 0.
func (s *Shape) RenderEnvelope(n int) []float64 {
	ret := make([]float64, n)
	for i, p := range s.Samples(n) {
		if p.Env != nil {
			ret[i] = p.Env.Y
		}
	}
	return ret
}

func (s *Shape) String() string {
	return Format(s)
}
