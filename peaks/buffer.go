// SPDX-License-Identifier: EPL-2.0

package peaks

// envelopeRMSFactor scales the min/max midline into the rms lane. The
// rms values are an envelope approximation, not a true root mean square.
const envelopeRMSFactor = 0.7

// ChannelPeaks holds the three per-pixel sequences for one channel.
// After rendering, Min, Max and RMS all have the same length.
type ChannelPeaks struct {
	Min []float32
	Max []float32
	RMS []float32
}

// Buffer is a finished per-channel peak buffer for one time window,
// ready for a rendering surface to draw. Buffers returned from the
// engine are shared with its cache: treat them as read-only. A caller
// that needs to mutate the lanes must copy them first.
type Buffer struct {
	Channels    []ChannelPeaks
	Length      int // pixels
	SampleRate  int
	StartOffset float64

	// IsPlaceholder marks a flat all-zero buffer produced when the file
	// was unreadable or extraction failed. Placeholders are never
	// cached, so the next request retries from a clean state.
	IsPlaceholder bool
}

// ChannelCount returns the number of channel lanes in the buffer.
func (b *Buffer) ChannelCount() int { return len(b.Channels) }

// newPlaceholder builds a flat buffer of the requested shape.
func newPlaceholder(channels, width, sampleRate int, startOffset float64) *Buffer {
	buf := &Buffer{
		Channels:      make([]ChannelPeaks, channels),
		Length:        width,
		SampleRate:    sampleRate,
		StartOffset:   startOffset,
		IsPlaceholder: true,
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = ChannelPeaks{
			Min: make([]float32, width),
			Max: make([]float32, width),
			RMS: make([]float32, width),
		}
	}
	return buf
}

// envelopeRMS derives the rms lane value from a min/max pair.
func envelopeRMS(minVal, maxVal float32) float32 {
	return (abs32(maxVal) + abs32(minVal)) / 2 * envelopeRMSFactor
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
