// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/wavescope/internal/audiotest"

// Local aliases so tests read naturally inside the package.

func newSilentSource(sampleRate, channels, totalSamples int) Source {
	return audiotest.NewSilentSource(sampleRate, channels, totalSamples)
}

func newConstantSource(sampleRate, channels, totalSamples int, value float32) Source {
	return audiotest.NewConstantSource(sampleRate, channels, totalSamples, value)
}

func newSineSource(sampleRate, channels, totalSamples int, frequency float64) Source {
	return audiotest.NewSineSource(sampleRate, channels, totalSamples, frequency)
}

// audiotestStereoSplit yields 1.0 on the left channel and 0.0 on the right.
func audiotestStereoSplit(sampleRate, totalSamples int) Source {
	return audiotest.NewMockSource(sampleRate, 2, totalSamples, func(sample, channel int) float32 {
		if channel == 0 {
			return 1.0
		}
		return 0.0
	})
}
