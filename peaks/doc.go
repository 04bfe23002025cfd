// SPDX-License-Identifier: EPL-2.0

// Package peaks extracts, normalizes and caches amplitude-envelope data
// for audio files so a caller can render a waveform.
//
// # Pipeline
//
// A render request flows through five stages:
//
//  1. Probe: resolve the file to sample rate, channel count and
//     duration, with fallback defaults (44.1 kHz, mono, 1 s floor).
//  2. Index: make sure an on-disk sidecar peak index exists and is not
//     truncated; rebuild it through the host when needed.
//  3. Extract: choose a sampling resolution for the requested window,
//     perform the batched block-structured peak retrieval, and
//     deinterleave it into per-channel min/max arrays.
//  4. Resample: linearly stretch or shrink the raw arrays to the exact
//     target pixel width.
//  5. Normalize: per channel, pick an adaptive gain by magnitude
//     bracket and soft-clip the result to a 0.95 ceiling.
//
// The finished buffer is memoized by (file, width, window). A cached
// entry whose leading max values are all near zero is treated as
// degenerate and silently recomputed. Buffers are shared between the
// cache and every caller that hits the same key: treat them as
// read-only.
//
// # Usage
//
//	engine := peaks.NewEngine(host, zerolog.Nop())
//	buf := engine.Render(peaks.Request{
//	    Path:     "take.wav",
//	    Channels: 2,
//	    Width:    800,
//	    Options:  peaks.DefaultOptions(),
//	})
//	// buf.Channels[ch].Min/Max/RMS each hold exactly 800 values.
//
// Render never fails; unreadable files and empty extractions degrade to
// a flat placeholder buffer with IsPlaceholder set, so a caller can
// always draw something.
//
// # The RMS lane
//
// The rms sequence is an envelope approximation derived from the
// min/max pair, (|max|+|min|)/2*0.7, not a true root mean square. It
// exists to give renderers a softer inner band, nothing more.
//
// # Cache key caveat
//
// Normalization settings (AmplifyQuiet, UseLogScale, VerticalZoom) are
// not part of the cache key. Changing them and re-rendering the same
// window can serve a buffer computed under the previous settings until
// the entry is invalidated.
package peaks
