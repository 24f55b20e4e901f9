// Package smf writes resolved notes as a Standard MIDI File.
package smf

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/sompyler/sompyler"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	// A fixed tempo maps seconds to MIDI ticks; all tempo changes of the
	// score are already contained in the note times.
	bpm            = 120
	ticksPerSecond = ticksPerQuarter * bpm / 60
)

type message struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Write writes notes to w, one MIDI channel per voice in the order of
// voices. Voices beyond the 16th share channels. Note velocity follows the
// note intensity.
func Write(w io.Writer, title string, voices []string, notes []sompyler.ResolvedNote) error {
	channels := map[string]uint8{}
	for i, v := range voices {
		channels[v] = uint8(i % 16)
	}
	var messages []message
	for _, n := range notes {
		ch, ok := channels[n.Voice]
		if !ok {
			return fmt.Errorf("smf.Write: voice %v of note %v is not listed", n.Voice, n.Payload)
		}
		key := uint8(n.Note.Key)
		vel := uint8(1 + math.Round(n.Intensity*126))
		on := toTicks(n.Start)
		off := max(toTicks(n.Start+n.Duration), on+1)
		messages = append(messages,
			message{tick: on, msg: midi.NoteOn(ch, key, vel)},
			message{tick: off, off: true, msg: midi.NoteOff(ch, key)})
	}
	// note offs before note ons at the same tick, so repeated notes retrigger
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].tick != messages[j].tick {
			return messages[i].tick < messages[j].tick
		}
		return messages[i].off && !messages[j].off
	})
	var tr smf.Track
	if title != "" {
		tr.Add(0, smf.MetaTrackSequenceName(title))
	}
	tr.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, m := range messages {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	tr.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("smf.Write: could not add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("smf.Write: %w", err)
	}
	return nil
}

func toTicks(seconds float64) uint32 {
	return uint32(math.Round(seconds * ticksPerSecond))
}
