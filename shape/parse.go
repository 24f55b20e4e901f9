package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sompyler/sompyler"
)

// Parse reads a shape written as keypoints separated by ';'. A keypoint is
// "x,y"; a spatial keypoint appends its envelope point after a colon, as in
// "0,0;0.1,1:0,0.5;1,0.8". Envelope points may nest further.
func Parse(s string) (*Shape, error) {
	var points []Point
	for i, tok := range strings.Split(s, ";") {
		p, err := parsePoint(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("shape %q, point %d: %w", s, i+1, err)
		}
		points = append(points, p)
	}
	return New(points...)
}

func parsePoint(s string) (Point, error) {
	head, rest, nested := strings.Cut(s, ":")
	x, y, ok := strings.Cut(head, ",")
	if !ok {
		return Point{}, fmt.Errorf("%w: %q is not \"x,y\"", sompyler.ErrConfiguration, head)
	}
	var p Point
	var err error
	if p.X, err = strconv.ParseFloat(strings.TrimSpace(x), 64); err != nil {
		return Point{}, fmt.Errorf("%w: x of %q: %v", sompyler.ErrConfiguration, head, err)
	}
	if p.Y, err = strconv.ParseFloat(strings.TrimSpace(y), 64); err != nil {
		return Point{}, fmt.Errorf("%w: y of %q: %v", sompyler.ErrConfiguration, head, err)
	}
	if !nested {
		return p, nil
	}
	env, err := parsePoint(rest)
	if err != nil {
		return Point{}, err
	}
	return Spatial(p.X, p.Y, &env)
}

// Format writes s in the notation read by Parse.
func Format(s *Shape) string {
	parts := make([]string, len(s.points))
	for i, p := range s.points {
		parts[i] = formatPoint(p)
	}
	return strings.Join(parts, ";")
}

func formatPoint(p Point) string {
	ret := strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
	if p.Env != nil {
		ret += ":" + formatPoint(*p.Env)
	}
	return ret
}
