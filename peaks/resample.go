// SPDX-License-Identifier: EPL-2.0

package peaks

import "github.com/ik5/wavescope/utils"

// resampleLinear interpolates or decimates src to exactly width values.
// The first and last output pixels map exactly to the first and last
// source samples; nothing is extrapolated past available data. When the
// lengths already match, src is returned unchanged.
func resampleLinear(src []float32, width int) []float32 {
	n := len(src)
	if n == width {
		return src
	}

	out := make([]float32, width)
	if n == 0 {
		return out
	}
	if n == 1 || width == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}

	scale := float64(n-1) / float64(width-1)
	for p := 0; p < width; p++ {
		pos := float64(p) * scale
		i := int(pos)
		j := i + 1
		if j > n-1 {
			j = n - 1
		}
		out[p] = utils.Lerp(src[i], src[j], float32(pos-float64(i)))
	}

	return out
}

// resampleRaw stretches every channel lane of a raw extraction result
// to the target pixel width.
func resampleRaw(raw rawPeaks, width int) rawPeaks {
	for ch := range raw.min {
		raw.min[ch] = resampleLinear(raw.min[ch], width)
		raw.max[ch] = resampleLinear(raw.max[ch], width)
		raw.rms[ch] = resampleLinear(raw.rms[ch], width)
	}
	raw.samples = width
	return raw
}
