// Package cmd holds what the sompyler commands share.
package cmd

import (
	"flag"
	"fmt"

	"github.com/sompyler/sompyler/modulation"
	"github.com/sompyler/sompyler/render"
	"github.com/sompyler/sompyler/shape"
)

// DefaultSustain is used when neither an attack nor a sustain shape is
// given: a plain decay.
const DefaultSustain = "0,1;1,0.5"

type Flags struct {
	Attack, Sustain, Tail, Release *string
	AM, FM                         *string
}

// InstrumentFlags registers the flags describing an instrument.
func InstrumentFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Attack:  fs.String("A", "", "Attack `shape`, x in seconds, e.g. \"0,0;0.05,1\"."),
		Sustain: fs.String("S", "", "Sustain `shape`, stretched over the note (if attack is not given, simply shape)."),
		Tail:    fs.String("T", "", "Tail `shape`, x in seconds, to regain minimal amplitude when transitioning from sustain to release."),
		Release: fs.String("R", "", "Release `shape`, x in seconds, not included in the note length."),
		AM:      fs.String("AM", "", "Amplitude modulation `FREQ;BASE:MOD[;SHIFT]`; FREQ in Hz or xFACTOR of the note frequency."),
		FM:      fs.String("FM", "", "Frequency modulation `FREQ;BASE:MOD[;SHIFT]`."),
	}
}

// Instrument builds the instrument described by the flags.
func (f *Flags) Instrument() (render.Instrument, error) {
	sustain := *f.Sustain
	if *f.Attack == "" && sustain == "" {
		sustain = DefaultSustain
	}
	env, err := shape.ParseEnvelope(*f.Attack, sustain, *f.Tail, *f.Release)
	if err != nil {
		return render.Instrument{}, err
	}
	ret := render.Instrument{Envelope: env}
	if *f.AM != "" {
		if ret.AM, err = modulation.Parse(*f.AM); err != nil {
			return render.Instrument{}, fmt.Errorf("-AM: %w", err)
		}
	}
	if *f.FM != "" {
		if ret.FM, err = modulation.Parse(*f.FM); err != nil {
			return render.Instrument{}, fmt.Errorf("-FM: %w", err)
		}
	}
	return ret, nil
}
