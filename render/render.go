// Package render turns the note events of an arrangement into audio. It is a
// minimal stand-in for an instrument layer: every note is a sine tone shaped
// by an envelope and optionally modulated in amplitude and frequency.
package render

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sompyler/sompyler"
	"github.com/sompyler/sompyler/modulation"
	"github.com/sompyler/sompyler/shape"
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"
)

type (
	// Instrument renders single tones.
	Instrument struct {
		Envelope shape.Envelope
		AM       *modulation.Modulation // amplitude modulation, may be nil
		FM       *modulation.Modulation // frequency modulation, may be nil
	}

	// Orchestra assigns instruments to voices; voices without an entry play
	// the Default instrument.
	Orchestra struct {
		Default Instrument
		Voices  map[string]Instrument
	}

	renderCommand struct {
		index    int
		timeline *sompyler.Timeline
	}

	renderResult struct {
		index int
		tones []tone
		err   error
	}

	tone struct {
		start   int // in samples
		samples []float32
	}
)

// Instrument returns the instrument of voice.
func (o Orchestra) Instrument(voice string) Instrument {
	if i, ok := o.Voices[voice]; ok {
		return i
	}
	return o.Default
}

// Tone renders a tone of freq Hz lasting seconds (plus the release of the
// envelope) at the given amplitude.
func (i Instrument) Tone(freq, seconds, amplitude float64) ([]float32, error) {
	env, err := i.Envelope.Render(seconds, sompyler.SampleRate)
	if err != nil {
		return nil, err
	}
	times := modulation.Times(len(env), sompyler.SampleRate)
	if i.AM != nil {
		am, err := i.AM.Modulate(times, freq)
		if err != nil {
			return nil, fmt.Errorf("amplitude modulation: %w", err)
		}
		vek.Mul_Inplace(env, am)
	}
	wave := make([]float64, len(env))
	if i.FM != nil {
		fm, err := i.FM.Modulate(times, freq)
		if err != nil {
			return nil, fmt.Errorf("frequency modulation: %w", err)
		}
		phase := 0.0
		for j, f := range fm {
			wave[j] = math.Sin(phase)
			phase += 2 * math.Pi * freq * f / sompyler.SampleRate
		}
	} else {
		for j, t := range times {
			wave[j] = modulation.Sine(freq, t, 0)
		}
	}
	vek.Mul_Inplace(env, wave)
	vek.MulNumber_Inplace(env, amplitude)
	return vek32.FromFloat64(env), nil
}

// Render renders all notes of the arrangement. Timelines are rendered in
// parallel and mixed in authored order; the mix is scaled down if it would
// clip.
func Render(a *sompyler.Arrangement, o Orchestra) (sompyler.AudioBuffer, error) {
	maxProcs := runtime.GOMAXPROCS(0)
	commands := make(chan renderCommand, len(a.Timelines))
	results := make(chan renderResult, len(a.Timelines))
	for i := 0; i < maxProcs; i++ {
		go func(commandCh <-chan renderCommand, resultCh chan<- renderResult) {
			for cmd := range commandCh {
				tones, err := renderTimeline(cmd.timeline, o.Instrument(cmd.timeline.Voice))
				resultCh <- renderResult{index: cmd.index, tones: tones, err: err}
			}
		}(commands, results)
	}
	for i, t := range a.Timelines {
		commands <- renderCommand{index: i, timeline: t}
	}
	close(commands)
	rendered := make([][]tone, len(a.Timelines))
	var firstErr error
	for range a.Timelines {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		rendered[r.index] = r.tones
	}
	if firstErr != nil {
		return nil, firstErr
	}
	length := int(math.Ceil(a.Duration() * sompyler.SampleRate))
	for _, tones := range rendered {
		for _, t := range tones {
			length = max(length, t.start+len(t.samples))
		}
	}
	buffer := make(sompyler.AudioBuffer, length)
	for _, tones := range rendered {
		for _, t := range tones {
			vek32.Add_Inplace(buffer[t.start:t.start+len(t.samples)], t.samples)
		}
	}
	if len(buffer) > 0 {
		if peak := vek32.Max(vek32.Abs(buffer)); peak > 1 {
			vek32.MulNumber_Inplace(buffer, 1/peak)
		}
	}
	return buffer, nil
}

func renderTimeline(t *sompyler.Timeline, instr Instrument) ([]tone, error) {
	var ret []tone
	for e := range t.Events() {
		n, err := e.Resolve()
		if err != nil {
			return nil, err
		}
		samples, err := instr.Tone(n.Note.Frequency(), n.Duration, t.Amplitude(e))
		if err != nil {
			return nil, fmt.Errorf("voice %v, tick %d: %w", e.Voice, e.Tick, err)
		}
		ret = append(ret, tone{start: int(math.Round(n.Start * sompyler.SampleRate)), samples: samples})
	}
	return ret, nil
}
