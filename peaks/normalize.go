// SPDX-License-Identifier: EPL-2.0

package peaks

import "math"

const (
	// activeThreshold is the magnitude below which a sample counts as
	// silence for gain selection.
	activeThreshold = 0.001

	// minActiveSamples is the minimum number of non-silent samples a
	// channel needs before normalization kicks in. Avoids
	// divide-by-near-zero blowups on effectively silent material.
	minActiveSamples = 10

	maxGain   = 8.0
	clipLimit = 0.95
)

// scanChannel reports the channel's peak magnitude and the number of
// samples above the silence threshold.
func scanChannel(ch ChannelPeaks) (maxPeak float64, active int) {
	for i := range ch.Max {
		hi := math.Abs(float64(ch.Max[i]))
		lo := math.Abs(float64(ch.Min[i]))
		if hi > maxPeak {
			maxPeak = hi
		}
		if lo > maxPeak {
			maxPeak = lo
		}
		if hi > activeThreshold || lo > activeThreshold {
			active++
		}
	}
	return maxPeak, active
}

// silentChannel reports whether the channel has too little non-silent
// material for normalization to act on.
func silentChannel(maxPeak float64, active int) bool {
	return maxPeak <= activeThreshold || active <= minActiveSamples
}

// computeGain scans one channel and selects the adaptive normalization
// gain. Returns 1.0 when the channel is treated as silence.
func computeGain(ch ChannelPeaks, opts Options) float64 {
	maxPeak, active := scanChannel(ch)
	if silentChannel(maxPeak, active) {
		return 1.0
	}

	gain := gainTarget(maxPeak) / maxPeak

	if opts.AmplifyQuiet > 1.0 && maxPeak < 0.3 {
		gain *= 1 + (opts.AmplifyQuiet-1)*(0.3-maxPeak)/0.3
	}

	if opts.UseLogScale && gain > 1.5 {
		// Compress runaway amplification of near-silent noise floors.
		gain = 1 + math.Sqrt(gain-1)
	}

	if gain > maxGain {
		gain = maxGain
	}

	return gain
}

// gainTarget maps a peak magnitude to its bracket's target ceiling.
func gainTarget(maxPeak float64) float64 {
	switch {
	case maxPeak < 0.05:
		return 0.4
	case maxPeak < 0.1:
		return 0.5
	case maxPeak < 0.3:
		return 0.6
	case maxPeak < 0.7:
		return 0.8
	default:
		return 1.0
	}
}

// normalizeChannel applies adaptive gain, vertical zoom and soft
// clipping to one channel, in place.
func normalizeChannel(ch ChannelPeaks, opts Options) {
	if silentChannel(scanChannel(ch)) {
		return
	}

	zoom := opts.VerticalZoom
	if zoom <= 0 {
		zoom = 1.0
	}

	// The clip is identity below its knee, so at unity scale it only
	// touches samples already above the display ceiling.
	scale := float32(computeGain(ch, opts) * zoom)
	for i := range ch.Max {
		ch.Max[i] = softClip(ch.Max[i]*scale, clipLimit)
		ch.Min[i] = softClip(ch.Min[i]*scale, clipLimit)
		ch.RMS[i] = softClip(ch.RMS[i]*scale, clipLimit)
	}
}

// softClip limits v to ±limit. Values within 90% of the limit pass
// unchanged; beyond the knee a quadratic compression approaches the
// limit asymptotically, so |output| never reaches it. The curve is
// continuous (and has matching slope) at the knee.
func softClip(v, limit float32) float32 {
	knee := 0.9 * limit
	mag := v
	if mag < 0 {
		mag = -mag
	}
	if mag <= knee {
		return v
	}

	span := limit - knee
	out := limit - span*span/(mag-knee+span)
	if v < 0 {
		return -out
	}
	return out
}
