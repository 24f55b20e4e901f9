package sompyler

// SampleRate is the sample rate of all rendered audio, in Hz.
const SampleRate = 44100

type (
	// AudioBuffer is mono float32 audio at SampleRate.
	AudioBuffer []float32

	// AudioContext plays back audio buffers.
	AudioContext interface {
		Play(buffer AudioBuffer) (CloserWaiter, error)
	}

	// CloserWaiter is a playing buffer: Wait blocks until it has finished,
	// Close stops it early.
	CloserWaiter interface {
		Close() error
		Wait()
	}
)

// Seconds returns the length of the buffer in seconds.
func (b AudioBuffer) Seconds() float64 {
	return float64(len(b)) / SampleRate
}
