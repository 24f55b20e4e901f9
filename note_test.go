package sompyler_test

import (
	"math"
	"testing"

	"github.com/sompyler/sompyler"
)

func TestParseNote(t *testing.T) {
	for _, c := range []struct {
		payload string
		key     int
		length  float64
	}{
		{"A4", 69, 1},
		{"C#4 2", 61, 2},
		{"Bb3 0.5", 58, 0.5},
		{"c-1", 0, 1},
		{"G9", 127, 1},
		{"  E5   3 ", 76, 3},
	} {
		n, err := sompyler.ParseNote(c.payload)
		if err != nil {
			t.Fatalf("ParseNote(%q) failed: %v", c.payload, err)
		}
		if n.Key != c.key || n.Length != c.length {
			t.Errorf("ParseNote(%q) = %+v, want key %d length %v", c.payload, n, c.key, c.length)
		}
	}
}

func TestParseNoteErrors(t *testing.T) {
	for _, payload := range []string{"", "H4", "C", "C4 0", "C4 x", "C4 1 2", "G#9", "Cb-1", "C#"} {
		if _, err := sompyler.ParseNote(payload); err == nil {
			t.Errorf("ParseNote(%q) did not fail", payload)
		}
	}
}

func TestNoteFrequency(t *testing.T) {
	if f := (sompyler.Note{Key: 69}).Frequency(); f != 440 {
		t.Fatalf("A4 frequency = %v, want 440", f)
	}
	if f := (sompyler.Note{Key: 81}).Frequency(); math.Abs(f-880) > epsilon {
		t.Fatalf("A5 frequency = %v, want 880", f)
	}
}
