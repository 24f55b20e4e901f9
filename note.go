package sompyler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Note is a parsed chord payload: a pitch in scientific notation optionally
// followed by its length in ticks, e.g. "C#4 2". A payload without a length
// lasts one tick.
type Note struct {
	Key    int // MIDI key number, A4 = 69
	Length float64
}

var pitchClasses = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNote parses a payload such as "A4", "Eb3 2" or "F#5 0.5".
func ParseNote(payload string) (Note, error) {
	fields := strings.Fields(payload)
	if len(fields) == 0 || len(fields) > 2 {
		return Note{}, fmt.Errorf("invalid note %q: want \"PITCH [TICKS]\"", payload)
	}
	key, err := parsePitch(fields[0])
	if err != nil {
		return Note{}, fmt.Errorf("invalid note %q: %v", payload, err)
	}
	ret := Note{Key: key, Length: 1}
	if len(fields) == 2 {
		ret.Length, err = strconv.ParseFloat(fields[1], 64)
		if err != nil || ret.Length <= 0 {
			return Note{}, fmt.Errorf("invalid note %q: length must be a positive number of ticks", payload)
		}
	}
	return ret, nil
}

func parsePitch(s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("pitch %q too short", s)
	}
	pc, ok := pitchClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("unknown pitch class %q", s[:1])
	}
	i := 1
	for ; i < len(s) && (s[i] == '#' || s[i] == 'b'); i++ {
		if s[i] == '#' {
			pc++
		} else {
			pc--
		}
	}
	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in pitch %q", s)
	}
	key := (octave+1)*12 + pc
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("pitch %q outside of MIDI range", s)
	}
	return key, nil
}

// Frequency returns the equal-tempered frequency of the note in Hz.
func (n Note) Frequency() float64 {
	return 440 * math.Pow(2, float64(n.Key-69)/12)
}
