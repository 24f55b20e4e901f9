package sompyler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// Curve is a value that grows geometrically across a measure: at the
	// start of the measure it is Base, at the end Base*Factor. Factor == 1
	// means the value stays constant. Curves are used both for the tempo
	// (seconds per tick) and for the lower and upper stress bounds.
	Curve struct {
		Base   float64
		Factor float64
	}

	// RangeSpec is the authored form of a curve: a single number (Start ==
	// End), a "start-end" string or a two-element sequence. It decodes from
	// all three forms in YAML.
	RangeSpec struct {
		Start float64
		End   float64
	}
)

// At returns the value of the curve at progress, where 0 is the start of
// the measure and 1 its end.
func (c Curve) At(progress float64) float64 {
	if c.Factor == 1 {
		return c.Base
	}
	return c.Base * math.Pow(c.Factor, progress)
}

// IsConstant reports whether the curve keeps its base value across the
// measure.
func (c Curve) IsConstant() bool {
	return c.Factor == 1
}

// Constant returns a RangeSpec that does not change across the measure.
func Constant(v float64) RangeSpec {
	return RangeSpec{Start: v, End: v}
}

// ParseRange parses "n" or "a-b". Only the first dash separates the two
// values, so negative numbers are not supported.
func ParseRange(s string) (RangeSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("%w: invalid range %q: %v", ErrConfiguration, s, err)
	}
	if len(parts) == 1 {
		return Constant(start), nil
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("%w: invalid range %q: %v", ErrConfiguration, s, err)
	}
	return RangeSpec{Start: start, End: end}, nil
}

func (r RangeSpec) String() string {
	if r.Start == r.End {
		return strconv.FormatFloat(r.Start, 'g', -1, 64)
	}
	return strconv.FormatFloat(r.Start, 'g', -1, 64) + "-" + strconv.FormatFloat(r.End, 'g', -1, 64)
}

func (r *RangeSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		ret, err := ParseRange(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*r = ret
		return nil
	case yaml.SequenceNode:
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("line %d: %w: %v", value.Line, ErrConfiguration, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: %w: range needs exactly two values, got %d", value.Line, ErrConfiguration, len(pair))
		}
		*r = RangeSpec{Start: pair[0], End: pair[1]}
		return nil
	}
	return fmt.Errorf("line %d: %w: range must be a number, a \"a-b\" string or a pair", value.Line, ErrConfiguration)
}

func (r RangeSpec) MarshalYAML() (interface{}, error) {
	if r.Start == r.End {
		return r.Start, nil
	}
	return r.String(), nil
}

// StressRange turns a bound specification into a curve going from Start to
// End across the measure: (Start, End/Start).
func StressRange(r RangeSpec) (Curve, error) {
	if r.Start <= 0 || r.End <= 0 {
		return Curve{}, fmt.Errorf("%w: stress bound %v must be positive", ErrConfiguration, r)
	}
	return Curve{Base: r.Start, Factor: r.End / r.Start}, nil
}

// TempoFromTicksPerMinute turns a ticks-per-minute specification into a
// seconds-per-tick curve. Accelerating from a to b ticks per minute means the
// seconds per tick shrink by a/b.
func TempoFromTicksPerMinute(r RangeSpec) (Curve, error) {
	if r.Start <= 0 || r.End <= 0 {
		return Curve{}, fmt.Errorf("%w: ticks per minute %v must be positive", ErrConfiguration, r)
	}
	return Curve{Base: 60 / r.Start, Factor: r.Start / r.End}, nil
}
