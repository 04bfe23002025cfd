// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"fmt"

	"github.com/ik5/wavescope/utils"
)

const (
	minPeakSamples = 50
	maxPeakSamples = 2000

	// shortClipRatio marks a window as "short" relative to the target
	// width: fewer than width*shortClipRatio source frames.
	shortClipRatio = 100
)

// rawPeaks is the deinterleaved extraction result before resampling.
// Arrays are per channel; their length is the returned sample count,
// which may differ from the requested pixel width.
type rawPeaks struct {
	min     [][]float32
	max     [][]float32
	rms     [][]float32
	samples int
}

// extractWindow chooses a sampling resolution for the requested time
// window, performs the batched peak retrieval, and deinterleaves the
// block-structured result into per-channel arrays. A multi-channel
// request that comes back empty is retried once as mono and the mono
// result replicated across all channels.
func extractWindow(h Host, path string, info Info, channels int, start, length float64, width int) (rawPeaks, error) {
	start = utils.Clamp(start, 0, info.Duration)
	if length <= 0 {
		length = info.Duration - start
	}
	if start+length > info.Duration {
		length = info.Duration - start
	}
	if length <= 0 {
		return rawPeaks{}, ErrEmptyWindow
	}

	totalWindowSamples := int64(float64(info.SampleRate) * length)
	if totalWindowSamples < 1 {
		totalWindowSamples = 1
	}

	var samplesNeeded int
	if totalWindowSamples < int64(width)*shortClipRatio {
		// Short clip relative to the target width: sample coarsely and
		// let the resampler stretch it.
		samplesNeeded = utils.ClampInt(max(minPeakSamples, width/4), minPeakSamples, maxPeakSamples)
	} else {
		samplesNeeded = utils.ClampInt(width, minPeakSamples, maxPeakSamples)
	}

	peakRate := int(totalWindowSamples / int64(samplesNeeded))
	if peakRate < 1 {
		peakRate = 1
	}

	block, err := h.ReadPeaks(path, peakRate, start, channels, samplesNeeded)
	if err != nil || block.Samples == 0 {
		// Retry once forcing mono; some sources only answer
		// single-channel requests.
		block, err = h.ReadPeaks(path, peakRate, start, 1, samplesNeeded)
		if err != nil {
			return rawPeaks{}, fmt.Errorf("peak retrieval: %w", err)
		}
		if block.Samples == 0 {
			return rawPeaks{}, ErrNoPeaks
		}
	}

	return deinterleave(block, channels), nil
}

// deinterleave splits a block-structured result into per-channel
// min/max arrays and derives the rms lane. When the block carries fewer
// channels than requested (the mono fallback), channels are replicated.
func deinterleave(b Block, channels int) rawPeaks {
	raw := rawPeaks{
		min:     make([][]float32, channels),
		max:     make([][]float32, channels),
		rms:     make([][]float32, channels),
		samples: b.Samples,
	}

	for ch := 0; ch < channels; ch++ {
		src := ch
		if src >= b.Channels {
			src = src % b.Channels
		}

		raw.min[ch] = make([]float32, b.Samples)
		raw.max[ch] = make([]float32, b.Samples)
		raw.rms[ch] = make([]float32, b.Samples)

		for s := 0; s < b.Samples; s++ {
			maxVal := b.MaxAt(s, src)
			minVal := b.MinAt(s, src)
			raw.max[ch][s] = maxVal
			raw.min[ch][s] = minVal
			raw.rms[ch][s] = envelopeRMS(minVal, maxVal)
		}
	}

	return raw
}
