package sompyler

import (
	"fmt"
	"math"
)

type (
	// MeasureConfig is the authored, optional part of a measure: any field
	// left nil is taken over from the previous measure, except Cut, which
	// defaults to 0.
	MeasureConfig struct {
		Cut              int        `yaml:"measure_cut,omitempty"`
		StressPattern    string     `yaml:"stress_pattern,omitempty"`
		TicksPerMinute   *RangeSpec `yaml:"ticks_per_minute,omitempty"`
		LowerStressBound *RangeSpec `yaml:"lower_stress_bound,omitempty"`
		UpperStressBound *RangeSpec `yaml:"upper_stress_bound,omitempty"`
	}

	// Measure is a span of ticks with resolved timing and stress context.
	// Measures are immutable once built; the next measure in a sequence is
	// built from the previous one with NewMeasure.
	Measure struct {
		// Offset is the absolute start of the measure in seconds.
		Offset float64
		// Length is the number of playable ticks; a negative Cut shortens
		// the measure from its end.
		Length int
		// Cut > 0 is the smallest playable tick offset (e.g. a count-in);
		// Cut < 0 removes ticks from the end (incomplete final measure).
		Cut    int
		Tempo  Curve // seconds per tick
		Stress *StressCurve
		Lower  Curve
		Upper  Curve
	}
)

// NewMeasure resolves cfg on top of prev, which is nil for the first measure
// of a sequence. The first measure needs both a tempo and a stress pattern.
// When neither the measure nor its predecessors define stress bounds, both
// bounds are the constant 1.
func NewMeasure(prev *Measure, cfg MeasureConfig) (*Measure, error) {
	ret := &Measure{Cut: cfg.Cut}
	if prev != nil {
		ret.Offset = prev.Offset + prev.Duration()
		ret.Tempo = prev.Tempo
		ret.Stress = prev.Stress
		ret.Lower = prev.Lower
		ret.Upper = prev.Upper
	} else {
		if cfg.TicksPerMinute == nil {
			return nil, fmt.Errorf("%w: first measure must have a tempo (ticks_per_minute)", ErrConfiguration)
		}
		if cfg.StressPattern == "" {
			return nil, fmt.Errorf("%w: first measure must have a stress pattern (stress_pattern)", ErrConfiguration)
		}
		ret.Lower = Curve{Base: 1, Factor: 1}
		ret.Upper = Curve{Base: 1, Factor: 1}
	}
	var err error
	if cfg.StressPattern != "" {
		if ret.Stress, err = NewStressCurve(cfg.StressPattern); err != nil {
			return nil, err
		}
	}
	if cfg.TicksPerMinute != nil {
		if ret.Tempo, err = TempoFromTicksPerMinute(*cfg.TicksPerMinute); err != nil {
			return nil, err
		}
	}
	if cfg.LowerStressBound != nil {
		if ret.Lower, err = StressRange(*cfg.LowerStressBound); err != nil {
			return nil, fmt.Errorf("lower_stress_bound: %w", err)
		}
	}
	if cfg.UpperStressBound != nil {
		if ret.Upper, err = StressRange(*cfg.UpperStressBound); err != nil {
			return nil, fmt.Errorf("upper_stress_bound: %w", err)
		}
	}
	ret.Length = ret.Stress.CumulativeLength() - max(0, -ret.Cut)
	if ret.Length <= 0 {
		return nil, fmt.Errorf("%w: measure_cut %d leaves no ticks of %d", ErrConfiguration, ret.Cut, ret.Stress.CumulativeLength())
	}
	return ret, nil
}

// seconds returns the time from the start of the measure to tick t. With a
// constant tempo the time is linear in t; otherwise the seconds per tick
// change geometrically across one cycle of the stress pattern.
func (m *Measure) seconds(t float64) float64 {
	spt, factor := m.Tempo.Base, m.Tempo.Factor
	if factor == 1 {
		return spt * t
	}
	inv := 1 / float64(m.Stress.CumulativeLength())
	return spt * (math.Pow(factor, t*inv) - 1) / (math.Pow(factor, inv) - 1)
}

func (m *Measure) check(offset float64) error {
	if offset > float64(m.Length) {
		return fmt.Errorf("%w: offset %v exceeds measure length %d", ErrRange, offset, m.Length)
	}
	if low := max(0, m.Cut); offset < float64(low) {
		return fmt.Errorf("%w: offset %v too low, must be at least %d", ErrRange, offset, low)
	}
	return nil
}

// Seconds returns the absolute time in seconds of the tick offset.
func (m *Measure) Seconds(offset float64) (float64, error) {
	if err := m.check(offset); err != nil {
		return 0, err
	}
	return m.Offset + m.seconds(offset), nil
}

// Span returns the absolute start of the tick offset and the duration in
// seconds of length ticks from there. The span may reach over the end of the
// measure, e.g. for tied notes, in which case the tempo curve is continued.
func (m *Measure) Span(offset, length float64) (start, duration float64, err error) {
	if err := m.check(offset); err != nil {
		return 0, 0, err
	}
	s := m.seconds(offset)
	return m.Offset + s, m.seconds(offset+length) - s, nil
}

// Duration returns the length of the measure in seconds.
func (m *Measure) Duration() float64 {
	return m.seconds(float64(m.Length))
}

// End returns the absolute time in seconds where the next measure starts.
func (m *Measure) End() float64 {
	return m.Offset + m.Duration()
}

// StressOfTick returns the intensity of tick between the measure's stress
// bounds. The bounds themselves move geometrically with the progress through
// the measure, but the stress weight is looked up at round(progress), i.e.
// only at tick 0 or tick 1 of the pattern.
//
// TODO: decide whether the weight should follow the progress continuously
// once authored scores relying on either behavior are available.
func (m *Measure) StressOfTick(tick float64) float64 {
	progress := tick / float64(m.Stress.CumulativeLength())
	lower := m.Lower.At(progress)
	upper := m.Upper.At(progress)
	return lower * math.Pow(upper/lower, m.Stress.Weight(int(math.Round(progress))))
}
