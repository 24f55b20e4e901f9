package sompyler

import (
	"fmt"
	"iter"
	"math"
)

type (
	// Chord is the set of simultaneous payloads starting at a tick offset of
	// a voice. A single note is a chord of one.
	Chord struct {
		Offset int
		Notes  []string
	}

	// VoiceConfig holds the per-voice overrides of a measure (the voice's
	// _meta). Unset fields fall back to the measure.
	VoiceConfig struct {
		Stressor         string     `yaml:"stressor,omitempty"`
		LowerStressBound *RangeSpec `yaml:"lower_stress_bound,omitempty"`
		UpperStressBound *RangeSpec `yaml:"upper_stress_bound,omitempty"`
	}

	// Timeline is the view of one voice on a measure. It does not own the
	// measure; many timelines share the same one.
	Timeline struct {
		Measure *Measure
		Voice   string
		Stress  *StressCurve
		Lower   Curve
		Upper   Curve
		chords  []Chord
		offsets []int
	}

	// NoteEvent is a single note of a timeline, not yet bound to a length.
	NoteEvent struct {
		MeasureOffset float64 // absolute start of the measure in seconds
		Tick          int
		Voice         string
		Intensity     float64 // in [0,1]
		Payload       string
		measure       *Measure
	}

	// ResolvedNote is a NoteEvent whose payload has been parsed and whose
	// timing has been computed.
	ResolvedNote struct {
		Start     float64
		Duration  float64
		Intensity float64
		Voice     string
		Payload   string
		Note      Note
	}
)

// NewTimeline binds chords of voice to m. A voice stressor must span exactly
// as many ticks as the measure's.
func NewTimeline(m *Measure, voice string, chords []Chord, cfg VoiceConfig) (*Timeline, error) {
	ret := &Timeline{
		Measure: m,
		Voice:   voice,
		Stress:  m.Stress,
		Lower:   m.Lower,
		Upper:   m.Upper,
		chords:  chords,
	}
	var err error
	if cfg.Stressor != "" {
		if ret.Stress, err = NewStressCurve(cfg.Stressor); err != nil {
			return nil, fmt.Errorf("voice %v: %w", voice, err)
		}
		if a, b := ret.Stress.CumulativeLength(), m.Stress.CumulativeLength(); a != b {
			return nil, fmt.Errorf("%w: voice %v stressor spans %d ticks, measure %d", ErrConsistency, voice, a, b)
		}
	}
	if cfg.LowerStressBound != nil {
		if ret.Lower, err = StressRange(*cfg.LowerStressBound); err != nil {
			return nil, fmt.Errorf("voice %v: lower_stress_bound: %w", voice, err)
		}
	}
	if cfg.UpperStressBound != nil {
		if ret.Upper, err = StressRange(*cfg.UpperStressBound); err != nil {
			return nil, fmt.Errorf("voice %v: upper_stress_bound: %w", voice, err)
		}
	}
	seen := map[int]bool{}
	for _, c := range chords {
		if !seen[c.Offset] {
			seen[c.Offset] = true
			ret.offsets = append(ret.offsets, c.Offset)
		}
	}
	return ret, nil
}

// Chords returns the chords in authored order.
func (t *Timeline) Chords() []Chord {
	return t.chords
}

// Events yields one event per note of every chord, in authored order. The
// sequence can be iterated any number of times.
func (t *Timeline) Events() iter.Seq[NoteEvent] {
	return func(yield func(NoteEvent) bool) {
		for _, c := range t.chords {
			intensity := t.Stress.WeightIn(c.Offset, t.offsets)
			for _, n := range c.Notes {
				e := NoteEvent{
					MeasureOffset: t.Measure.Offset,
					Tick:          c.Offset,
					Voice:         t.Voice,
					Intensity:     intensity,
					Payload:       n,
					measure:       t.Measure,
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Amplitude maps the intensity of e between the voice's stress bounds at the
// event's position in the measure.
func (t *Timeline) Amplitude(e NoteEvent) float64 {
	progress := float64(e.Tick) / float64(t.Stress.CumulativeLength())
	lower := t.Lower.At(progress)
	upper := t.Upper.At(progress)
	return lower * math.Pow(upper/lower, e.Intensity)
}

// Span returns the absolute start and the duration in seconds of the event
// if it lasts length ticks.
func (e NoteEvent) Span(length float64) (start, duration float64, err error) {
	if e.measure == nil {
		return 0, 0, fmt.Errorf("%w: event of voice %v is not bound to a measure", ErrConfiguration, e.Voice)
	}
	return e.measure.Span(float64(e.Tick), length)
}

// Resolve parses the payload as a Note and computes its timing.
func (e NoteEvent) Resolve() (ResolvedNote, error) {
	n, err := ParseNote(e.Payload)
	if err != nil {
		return ResolvedNote{}, fmt.Errorf("voice %v, tick %d: %w", e.Voice, e.Tick, err)
	}
	start, dur, err := e.Span(n.Length)
	if err != nil {
		return ResolvedNote{}, fmt.Errorf("voice %v, tick %d: %w", e.Voice, e.Tick, err)
	}
	return ResolvedNote{
		Start:     start,
		Duration:  dur,
		Intensity: e.Intensity,
		Voice:     e.Voice,
		Payload:   e.Payload,
		Note:      n,
	}, nil
}
