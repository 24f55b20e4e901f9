package shape

import (
	"fmt"
	"math"

	"github.com/sompyler/sompyler"
	"github.com/viterin/vek"
)

// Envelope combines up to four shapes into the amplitude curve of a tone.
// Attack, Tail and Release are measured in seconds along their x axes;
// Sustain is stretched over whatever remains of the tone between attack and
// tail. Release sounds after the tone's nominal length.
type Envelope struct {
	Attack  *Shape
	Sustain *Shape
	Tail    *Shape
	Release *Shape
}

// ParseEnvelope parses the four shapes of an envelope; empty strings leave
// the corresponding part unset.
func ParseEnvelope(attack, sustain, tail, release string) (Envelope, error) {
	var ret Envelope
	for _, p := range []struct {
		name string
		src  string
		dst  **Shape
	}{
		{"attack", attack, &ret.Attack},
		{"sustain", sustain, &ret.Sustain},
		{"tail", tail, &ret.Tail},
		{"release", release, &ret.Release},
	} {
		if p.src == "" {
			continue
		}
		s, err := Parse(p.src)
		if err != nil {
			return Envelope{}, fmt.Errorf("%v: %w", p.name, err)
		}
		*p.dst = s
	}
	if ret.Attack == nil && ret.Sustain == nil {
		return Envelope{}, fmt.Errorf("%w: envelope needs an attack or a sustain shape", sompyler.ErrConfiguration)
	}
	return ret, nil
}

func samplesOf(s *Shape, sampleRate int) int {
	if s == nil {
		return 0
	}
	from, to := s.Span()
	return int(math.Round((to - from) * float64(sampleRate)))
}

// Render returns the envelope of a tone lasting seconds, followed by the
// release.
func (e Envelope) Render(seconds float64, sampleRate int) ([]float64, error) {
	if e.Attack == nil && e.Sustain == nil {
		return nil, fmt.Errorf("%w: envelope needs an attack or a sustain shape", sompyler.ErrConfiguration)
	}
	if seconds < 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: cannot render an envelope of %v s at %d Hz", sompyler.ErrConfiguration, seconds, sampleRate)
	}
	total := int(math.Round(seconds * float64(sampleRate)))
	na := min(samplesOf(e.Attack, sampleRate), total)
	nt := min(samplesOf(e.Tail, sampleRate), total-na)
	ns := total - na - nt
	ret := make([]float64, 0, total+samplesOf(e.Release, sampleRate))
	if na > 0 {
		ret = append(ret, e.Attack.Render(samplesOf(e.Attack, sampleRate))[:na]...)
	}
	if ns > 0 {
		if e.Sustain != nil {
			ret = append(ret, e.Sustain.Render(ns)...)
		} else {
			_, end := e.Attack.Span()
			ret = append(ret, vek.Repeat(e.Attack.at(end).Y, ns)...)
		}
	}
	if nt > 0 {
		tail := e.Tail.Render(samplesOf(e.Tail, sampleRate))
		ret = append(ret, tail[len(tail)-nt:]...)
	}
	if e.Release != nil {
		ret = append(ret, e.Release.Render(samplesOf(e.Release, sampleRate))...)
	}
	return ret, nil
}
