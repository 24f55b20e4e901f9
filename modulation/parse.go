package modulation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sompyler/sompyler"
)

// Parse reads a modulation written as "FREQ;BASE:MOD[;SHIFT]", where FREQ is
// either a frequency in Hz ("5") or a factor of the carrier ("x2"). A
// trailing "!" on FREQ turns overdrive off.
func Parse(s string) (*Modulation, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("%w: modulation %q: want \"FREQ;BASE:MOD[;SHIFT]\"", sompyler.ErrConfiguration, s)
	}
	var c Config
	freq := strings.TrimSpace(parts[0])
	if strings.HasSuffix(freq, "!") {
		off := false
		c.Overdrive = &off
		freq = strings.TrimSuffix(freq, "!")
	}
	relative := strings.HasPrefix(freq, "x")
	v, err := strconv.ParseFloat(strings.TrimPrefix(freq, "x"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: modulation %q: frequency: %v", sompyler.ErrConfiguration, s, err)
	}
	if relative {
		c.Factor = &v
	} else {
		c.Frequency = &v
	}
	base, mod, ok := strings.Cut(parts[1], ":")
	if !ok {
		return nil, fmt.Errorf("%w: modulation %q: shares must be written BASE:MOD", sompyler.ErrConfiguration, s)
	}
	if c.BaseShare, err = strconv.ParseFloat(strings.TrimSpace(base), 64); err != nil {
		return nil, fmt.Errorf("%w: modulation %q: base share: %v", sompyler.ErrConfiguration, s, err)
	}
	if c.ModShare, err = strconv.ParseFloat(strings.TrimSpace(mod), 64); err != nil {
		return nil, fmt.Errorf("%w: modulation %q: mod share: %v", sompyler.ErrConfiguration, s, err)
	}
	if len(parts) == 3 {
		if c.Shift, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
			return nil, fmt.Errorf("%w: modulation %q: shift: %v", sompyler.ErrConfiguration, s, err)
		}
	}
	return New(c, nil)
}
