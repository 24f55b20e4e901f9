package sompyler

import (
	"fmt"
	"strconv"
	"strings"
)

// StressCurve is a cyclic accent pattern. A pattern is written as segments
// separated by ';', each segment being a comma-separated list of tick
// weights, e.g. "4,1,2,1;3,1,2,1" for a measure of two halves with eight
// ticks. Weights are normalized by the strongest weight of the pattern.
//
// StressCurve is immutable after construction and may be shared between
// measures and goroutines.
type StressCurve struct {
	weights  []int
	segments []int // tick span of each segment
	max      int
}

// NewStressCurve parses a stress pattern.
func NewStressCurve(pattern string) (*StressCurve, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrMalformedPattern)
	}
	ret := &StressCurve{}
	for i, seg := range strings.Split(pattern, ";") {
		fields := strings.Split(seg, ",")
		for _, f := range fields {
			w, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("%w: segment %d of %q: %v", ErrMalformedPattern, i+1, pattern, err)
			}
			if w < 0 {
				return nil, fmt.Errorf("%w: segment %d of %q: negative weight %d", ErrMalformedPattern, i+1, pattern, w)
			}
			ret.weights = append(ret.weights, w)
			ret.max = max(ret.max, w)
		}
		ret.segments = append(ret.segments, len(fields))
	}
	if ret.max == 0 {
		return nil, fmt.Errorf("%w: pattern %q has no stressed tick", ErrMalformedPattern, pattern)
	}
	return ret, nil
}

// CumulativeLength returns the number of ticks in one cycle of the pattern.
func (s *StressCurve) CumulativeLength() int {
	return len(s.weights)
}

// Segments returns the number of segments the pattern was written with.
func (s *StressCurve) Segments() int {
	return len(s.segments)
}

func (s *StressCurve) raw(tick int) int {
	l := len(s.weights)
	return s.weights[(tick%l+l)%l]
}

// Weight returns the normalized weight in [0,1] of the cycle position of
// tick.
func (s *StressCurve) Weight(tick int) float64 {
	return float64(s.raw(tick)) / float64(s.max)
}

// WeightIn returns the weight of tick for a voice occupying offsets. It is
// Weight(tick) except where tick is ambiguous: a tick at the end of a cycle
// is both the close of the last segment and the head of the next cycle. If
// the voice has other notes in the cycle ending there, the note closes it
// and takes the head weight of the last segment; otherwise it is the
// downbeat of the next cycle.
func (s *StressCurve) WeightIn(tick int, offsets []int) float64 {
	l := len(s.weights)
	if tick <= 0 || tick%l != 0 {
		return s.Weight(tick)
	}
	for _, o := range offsets {
		if o >= tick-l && o < tick {
			head := l - s.segments[len(s.segments)-1]
			return float64(s.weights[head]) / float64(s.max)
		}
	}
	return s.Weight(tick)
}

// String returns the pattern in the same notation it was parsed from.
func (s *StressCurve) String() string {
	var b strings.Builder
	i := 0
	for j, n := range s.segments {
		if j > 0 {
			b.WriteByte(';')
		}
		for k := 0; k < n; k++ {
			if k > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(s.weights[i]))
			i++
		}
	}
	return b.String()
}
