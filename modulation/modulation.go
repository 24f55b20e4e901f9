// Package modulation computes amplitude and frequency modulation curves.
//
// A modulation curve never drops below a constant base; an oscillator adds
// a modulated part on top of it. The heights of both parts are given as a
// ratio base:mod. With base 3 and mod 1, the curve oscillates between 3/4
// and 1 of the carrier.
package modulation

import (
	"fmt"
	"math"

	"github.com/sompyler/sompyler"
	"github.com/viterin/vek"
)

type (
	// Oscillator returns the value in [-1, 1] of an oscillation of freq Hz
	// at time t, shifted by shift radians.
	Oscillator func(freq, t, shift float64) float64

	// Config is the authored form of a modulation. Frequency is absolute in
	// Hz; Factor is relative to the carrier frequency. If both are given,
	// the frequency is Frequency*Factor.
	Config struct {
		Frequency *float64 `yaml:"frequency,omitempty"`
		Factor    *float64 `yaml:"factor,omitempty"`
		BaseShare float64  `yaml:"base"`
		ModShare  float64  `yaml:"mod"`
		Shift     float64  `yaml:"shift,omitempty"`
		// Overdrive recenters the curve around the carrier; on by default.
		Overdrive *bool `yaml:"overdrive,omitempty"`
	}

	// Modulation is an immutable modulation curve generator.
	Modulation struct {
		baseShare, modShare float64
		frequency, factor   float64 // exactly one of them is non-zero
		shift               float64
		overdrive           bool
		osc                 Oscillator
	}
)

// Sine is the default oscillator.
func Sine(freq, t, shift float64) float64 {
	return math.Sin(2*math.Pi*freq*t + shift)
}

// New validates c; osc may be nil for a sine.
func New(c Config, osc Oscillator) (*Modulation, error) {
	if c.BaseShare <= 0 || c.ModShare < 0 {
		return nil, fmt.Errorf("%w: modulation shares %v:%v, base must be positive and mod not negative", sompyler.ErrConfiguration, c.BaseShare, c.ModShare)
	}
	ret := &Modulation{
		baseShare: c.BaseShare,
		modShare:  c.ModShare,
		shift:     c.Shift,
		overdrive: c.Overdrive == nil || *c.Overdrive,
		osc:       osc,
	}
	switch {
	case c.Frequency != nil && *c.Frequency != 0:
		ret.frequency = *c.Frequency
		if c.Factor != nil && *c.Factor != 0 {
			ret.frequency *= *c.Factor
		}
	case c.Factor != nil && *c.Factor != 0:
		ret.factor = *c.Factor
	default:
		return nil, fmt.Errorf("%w: modulation needs a frequency or a factor", sompyler.ErrConfiguration)
	}
	if ret.osc == nil {
		ret.osc = Sine
	}
	return ret, nil
}

// Frequency resolves the modulation frequency for a carrier of carrier Hz.
// A carrier of 0 means there is none.
func (m *Modulation) Frequency(carrier float64) (float64, error) {
	if m.frequency != 0 {
		return m.frequency, nil
	}
	if carrier == 0 {
		return 0, fmt.Errorf("%w: modulation with factor %v needs a carrier frequency", sompyler.ErrConfiguration, m.factor)
	}
	return m.factor * carrier, nil
}

// Relative reports whether the modulation frequency follows the carrier.
func (m *Modulation) Relative() bool {
	return m.frequency == 0
}

// Modulate returns the modulation curve at the given times (in seconds).
func (m *Modulation) Modulate(times []float64, carrier float64) ([]float64, error) {
	f, err := m.Frequency(carrier)
	if err != nil {
		return nil, err
	}
	b, md := m.baseShare, m.modShare
	o := 1.0
	if m.overdrive {
		o = (md+b)/(2*b) + 0.5
	}
	ret := make([]float64, len(times))
	for i, t := range times {
		ret[i] = m.osc(f, t, m.shift)
	}
	// o * (md*(raw+1)/2 + b) / (md+b)
	vek.AddNumber_Inplace(ret, 1)
	vek.MulNumber_Inplace(ret, md/2)
	vek.AddNumber_Inplace(ret, b)
	vek.MulNumber_Inplace(ret, o/(md+b))
	return ret, nil
}

// Times returns n sample times at sampleRate, starting from 0.
func Times(n, sampleRate int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = float64(i) / float64(sampleRate)
	}
	return ret
}
