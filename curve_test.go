package sompyler_test

import (
	"errors"
	"math"
	"testing"

	"github.com/sompyler/sompyler"
	"gopkg.in/yaml.v3"
)

func TestRangeSpecYAML(t *testing.T) {
	for _, c := range []struct {
		input string
		want  sompyler.RangeSpec
	}{
		{"120", sompyler.Constant(120)},
		{"60-120", sompyler.RangeSpec{Start: 60, End: 120}},
		{"\"90 - 45\"", sompyler.RangeSpec{Start: 90, End: 45}},
		{"[30, 40]", sompyler.RangeSpec{Start: 30, End: 40}},
	} {
		var got sompyler.RangeSpec
		if err := yaml.Unmarshal([]byte(c.input), &got); err != nil {
			t.Fatalf("yaml.Unmarshal(%q) failed: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("yaml.Unmarshal(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestRangeSpecYAMLErrors(t *testing.T) {
	for _, input := range []string{"abc", "1-x", "[1, 2, 3]", "{a: 1}", "[a, b]"} {
		var got sompyler.RangeSpec
		if err := yaml.Unmarshal([]byte(input), &got); !errors.Is(err, sompyler.ErrConfiguration) {
			t.Errorf("yaml.Unmarshal(%q) error = %v, want ErrConfiguration", input, err)
		}
	}
}

func TestStressRange(t *testing.T) {
	c, err := sompyler.StressRange(sompyler.Constant(3))
	if err != nil {
		t.Fatalf("StressRange failed: %v", err)
	}
	if c != (sompyler.Curve{Base: 3, Factor: 1}) {
		t.Fatalf("StressRange(3) = %v, want {3 1}", c)
	}
	c, err = sompyler.StressRange(sompyler.RangeSpec{Start: 2, End: 8})
	if err != nil {
		t.Fatalf("StressRange failed: %v", err)
	}
	if c.Base != 2 || c.Factor != 4 {
		t.Fatalf("StressRange(2-8) = %v, want {2 4}", c)
	}
	if c.IsConstant() {
		t.Fatalf("StressRange(2-8) is constant")
	}
	if flat, err := sompyler.StressRange(sompyler.Constant(3)); err != nil || !flat.IsConstant() || flat.At(0.7) != 3 {
		t.Fatalf("StressRange(3) = (%v, %v), want a constant curve at 3", flat, err)
	}
	if got := c.At(0.5); math.Abs(got-4) > 1e-12 {
		t.Fatalf("At(0.5) = %v, want 4", got)
	}
	if _, err := sompyler.StressRange(sompyler.RangeSpec{Start: 0, End: 8}); !errors.Is(err, sompyler.ErrConfiguration) {
		t.Fatalf("StressRange with zero start error = %v, want ErrConfiguration", err)
	}
}

func TestTempoFromTicksPerMinute(t *testing.T) {
	c, err := sompyler.TempoFromTicksPerMinute(sompyler.RangeSpec{Start: 120, End: 240})
	if err != nil {
		t.Fatalf("TempoFromTicksPerMinute failed: %v", err)
	}
	if c.Base != 0.5 || c.Factor != 0.5 {
		t.Fatalf("TempoFromTicksPerMinute(120-240) = %v, want {0.5 0.5}", c)
	}
	if _, err := sompyler.TempoFromTicksPerMinute(sompyler.Constant(-1)); !errors.Is(err, sompyler.ErrConfiguration) {
		t.Fatalf("negative tempo error = %v, want ErrConfiguration", err)
	}
}
