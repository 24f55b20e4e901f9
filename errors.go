package sompyler

import "errors"

// Errors returned by the score, shape and modulation packages. They are
// always wrapped with context; test for them with errors.Is.
var (
	// ErrConfiguration is returned when a required setting (tempo, stress
	// pattern, modulation frequency or factor) cannot be resolved.
	ErrConfiguration = errors.New("configuration error")
	// ErrMalformedPattern is returned for empty or unparseable stress
	// patterns.
	ErrMalformedPattern = errors.New("malformed stress pattern")
	// ErrRange is returned for tick offsets outside of [Cut, Length].
	ErrRange = errors.New("tick offset out of range")
	// ErrConsistency is returned when a voice stress pattern does not span
	// as many ticks as the measure's.
	ErrConsistency = errors.New("inconsistent stress pattern length")
	// ErrIndex is returned when a point coordinate beyond the point's
	// dimensions is accessed.
	ErrIndex = errors.New("point dimension out of range")
	// ErrMissingEnvelope is returned when a spatial point is created without
	// its nested envelope point.
	ErrMissingEnvelope = errors.New("missing envelope for spatial point")
)
