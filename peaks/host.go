// SPDX-License-Identifier: EPL-2.0

package peaks

// Info describes the basic audio facts of a file.
type Info struct {
	SampleRate int
	Channels   int
	Duration   float64 // seconds
}

// Block is the raw result of a batched peak retrieval. The data is
// block-structured, not interleaved: all maximum values come first
// (sample-major, channel-minor), followed by all minimum values at
// offset Samples*Channels.
type Block struct {
	Samples  int
	Channels int
	Data     []float32 // length 2*Samples*Channels
}

// MaxAt returns the maximum value for sample s on channel ch.
func (b Block) MaxAt(s, ch int) float32 {
	return b.Data[s*b.Channels+ch]
}

// MinAt returns the minimum value for sample s on channel ch.
func (b Block) MinAt(s, ch int) float32 {
	return b.Data[b.Samples*b.Channels+s*b.Channels+ch]
}

// Host is the decoding and peak-reading capability the engine drives.
// The filehost package provides a file-system implementation; tests use
// fakes.
type Host interface {
	// Probe reports sample rate, channel count and duration for a file.
	Probe(path string) (Info, error)

	// IndexSize reports the on-disk size of the sidecar peak index, or
	// an error when no index exists.
	IndexSize(path string) (int64, error)

	// RemoveIndex deletes the sidecar peak index if present.
	RemoveIndex(path string) error

	// BuildIndex (re)builds the sidecar peak index synchronously.
	BuildIndex(path string) error

	// ReadPeaks performs a batched peak retrieval: samples entries per
	// channel, each covering peakRate source frames, starting at start
	// seconds. A Block with Samples == 0 means no data was available.
	ReadPeaks(path string, peakRate int, start float64, channels, samples int) (Block, error)
}
