// SPDX-License-Identifier: EPL-2.0

package peaks

import "fmt"

const (
	defaultSampleRate = 44100
	defaultChannels   = 1
	minProbeDuration  = 1.0 // seconds
)

// probeSource resolves a file to its basic audio facts, substituting
// sane defaults for anything the host could not report. An unreadable
// file yields ErrMissingFile; the caller falls back to a placeholder
// buffer instead of propagating the failure.
func probeSource(h Host, path string) (Info, error) {
	info, err := h.Probe(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrMissingFile, err)
	}

	if info.SampleRate <= 0 {
		info.SampleRate = defaultSampleRate
	}
	if info.Channels <= 0 {
		info.Channels = defaultChannels
	}
	if info.Duration < minProbeDuration {
		info.Duration = minProbeDuration
	}

	return info, nil
}
