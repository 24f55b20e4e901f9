package sompyler_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sompyler/sompyler"
	"gopkg.in/yaml.v3"
)

func loadArrangement(t *testing.T, filename string) *sompyler.Arrangement {
	t.Helper()
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("cannot read %v: %v", filename, err)
	}
	score, err := sompyler.LoadScore(data)
	if err != nil {
		t.Fatalf("LoadScore failed: %v", err)
	}
	a, err := score.Arrange()
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
	return a
}

func TestAllTestScores(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.*"))
	if err != nil {
		t.Fatalf("cannot glob files in the testdata directory: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no test scores found")
	}
	for _, filename := range files {
		basename := filepath.Base(filename)
		t.Run(strings.TrimSuffix(basename, filepath.Ext(basename)), func(t *testing.T) {
			a := loadArrangement(t, filename)
			notes, err := a.Notes()
			if err != nil {
				t.Fatalf("Notes failed: %v", err)
			}
			for _, n := range notes {
				if n.Duration <= 0 || n.Intensity < 0 || n.Intensity > 1 {
					t.Errorf("note %+v has invalid duration or intensity", n)
				}
			}
			for i := 1; i < len(a.Measures); i++ {
				if a.Measures[i].Offset != a.Measures[i-1].End() {
					t.Errorf("measure %d starts at %v, previous ends at %v", i+1, a.Measures[i].Offset, a.Measures[i-1].End())
				}
			}
		})
	}
}

func TestLittleTune(t *testing.T) {
	a := loadArrangement(t, filepath.Join("testdata", "little_tune.yml"))
	if a.Title != "little tune" {
		t.Fatalf("Title = %q", a.Title)
	}
	if len(a.Measures) != 2 || len(a.Timelines) != 3 {
		t.Fatalf("got %d measures and %d timelines, want 2 and 3", len(a.Measures), len(a.Timelines))
	}
	if a.Measures[0].Duration() != 1 {
		t.Fatalf("first measure lasts %v, want 1", a.Measures[0].Duration())
	}
	second := a.Measures[1]
	if second.Offset != 1 || second.Length != 6 || second.Tempo != (sompyler.Curve{Base: 0.125, Factor: 2}) {
		t.Fatalf("second measure = %+v", second)
	}
	if second.Lower != a.Measures[0].Lower || second.Upper != a.Measures[0].Upper {
		t.Fatalf("second measure did not inherit the stress bounds")
	}
	if want := []string{"melody", "bass"}; !reflect.DeepEqual(a.Voices(), want) {
		t.Fatalf("Voices() = %v, want %v", a.Voices(), want)
	}
	var got []string
	var intensities []float64
	for e := range a.Events() {
		got = append(got, e.Voice+" "+e.Payload)
		intensities = append(intensities, e.Intensity)
	}
	want := []string{"melody C5 2", "melody E5", "melody G5", "melody D5 4", "bass C3 8", "melody C5 6"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if want := []float64{1, 0.5, 0.5, 0.75, 0.25, 1}; !reflect.DeepEqual(intensities, want) {
		t.Fatalf("intensities = %v, want %v", intensities, want)
	}
	notes, err := a.Notes()
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if last := notes[len(notes)-1]; last.Start != 1 {
		t.Fatalf("last note starts at %v, want 1", last.Start)
	}
	if bass := notes[4]; bass.Duration != 1 {
		t.Fatalf("bass note lasts %v, want 1", bass.Duration)
	}
}

func TestPickupScore(t *testing.T) {
	a := loadArrangement(t, filepath.Join("testdata", "pickup.json"))
	first := a.Measures[0]
	if first.Cut != 2 || first.Length != 4 {
		t.Fatalf("first measure = %+v, want cut 2 and length 4", first)
	}
	// authored order is kept, even if it is not sorted
	var ticks []int
	for e := range a.Timelines[0].Events() {
		ticks = append(ticks, e.Tick)
	}
	if want := []int{3, 2}; !reflect.DeepEqual(ticks, want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	if a.Measures[1].Upper != (sompyler.Curve{Base: 2, Factor: 2}) {
		t.Fatalf("upper bound = %v, want {2 2}", a.Measures[1].Upper)
	}
	if a.Measures[1].Offset != 2 {
		t.Fatalf("second measure starts at %v, want 2", a.Measures[1].Offset)
	}
}

func TestScoreErrors(t *testing.T) {
	for _, c := range []struct {
		name  string
		score string
		want  error
	}{
		{"no tempo", `measures: [{_meta: {stress_pattern: "1,1"}, v: {0: C4}}]`, sompyler.ErrConfiguration},
		{"bad pattern", `measures: [{_meta: {stress_pattern: "1,,1", ticks_per_minute: 60}}]`, sompyler.ErrMalformedPattern},
		{"voice stressor length", `measures: [{_meta: {stress_pattern: "1,1", ticks_per_minute: 60}, v: {_meta: {stressor: "1,1,1"}, 0: C4}}]`, sompyler.ErrConsistency},
		{"bad tempo", `measures: [{_meta: {stress_pattern: "1,1", ticks_per_minute: fast}}]`, sompyler.ErrConfiguration},
	} {
		t.Run(c.name, func(t *testing.T) {
			score, err := sompyler.LoadScore([]byte(c.score))
			if err == nil {
				_, err = score.Arrange()
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("error = %v, want %v", err, c.want)
			}
		})
	}
}

func TestScoreSyntaxErrors(t *testing.T) {
	for _, score := range []string{
		`measures: [[1, 2]]`,
		`measures: [{v: [C4]}]`,
		`measures: [{v: {x: C4}}]`,
		`measures: [{v: {0: {a: b}}}]`,
	} {
		if _, err := sompyler.LoadScore([]byte(score)); err == nil {
			t.Errorf("LoadScore(%q) did not fail", score)
		}
	}
}

func TestScoreOffsetErrors(t *testing.T) {
	for _, c := range []struct {
		name  string
		score string
		want  error
		line  string
	}{
		{"negative offset", `measures: [{v: {-3: C4}}]`, sompyler.ErrRange, "line 1"},
		{"duplicate offset", "measures:\n  - v:\n      0: C4\n      00: D4\n", sompyler.ErrConfiguration, "line 4"},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := sompyler.LoadScore([]byte(c.score))
			if !errors.Is(err, c.want) {
				t.Fatalf("error = %v, want %v", err, c.want)
			}
			if !strings.Contains(err.Error(), c.line) {
				t.Fatalf("error %q does not name %v", err, c.line)
			}
		})
	}
}

func TestScoreMarshalKeepsOrder(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "little_tune.yml"))
	if err != nil {
		t.Fatalf("cannot read score: %v", err)
	}
	score, err := sompyler.LoadScore(data)
	if err != nil {
		t.Fatalf("LoadScore failed: %v", err)
	}
	out, err := yaml.Marshal(score)
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	score2, err := sompyler.LoadScore(out)
	if err != nil {
		t.Fatalf("LoadScore of marshaled score failed: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(score, score2) {
		t.Fatalf("marshaled score differs:\n%s", out)
	}
}
