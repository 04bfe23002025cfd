// SPDX-License-Identifier: EPL-2.0

package peaks

// Options is the typed configuration record for a peak rendering
// request. The zero value is not useful; start from DefaultOptions.
type Options struct {
	// StartOffset is the window start in seconds from the beginning of
	// the file.
	StartOffset float64

	// DisplayLength is the window length in seconds. Zero or negative
	// means the rest of the file.
	DisplayLength float64

	// AmplifyQuiet boosts quiet material (maxPeak < 0.3) by blending up
	// to this factor. 1.0 disables the boost.
	AmplifyQuiet float64

	// UseLogScale compresses large normalization gains so near-silent
	// noise floors are not amplified into full-scale garbage.
	UseLogScale bool

	// VerticalZoom scales the finished waveform. 1.0 is unity.
	VerticalZoom float64
}

// DefaultOptions returns the options used when a caller passes none.
func DefaultOptions() Options {
	return Options{
		AmplifyQuiet: 1.0,
		VerticalZoom: 1.0,
	}
}

// Request identifies one peak rendering job. Two requests with equal
// fields are interchangeable and may be served from cache.
type Request struct {
	// Path of the audio file.
	Path string

	// Channels is the number of waveform lanes the caller wants to draw.
	Channels int

	// Width is the target width in pixels; every output array has
	// exactly this length.
	Width int

	Options Options
}
