// SPDX-License-Identifier: EPL-2.0

package filehost

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension with no registered
	// decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrBadIndex indicates a sidecar index file that is truncated or not
	// a peak index at all.
	ErrBadIndex = errors.New("malformed peak index")

	// ErrBadIndexVersion indicates a peak index written by an
	// incompatible version.
	ErrBadIndexVersion = errors.New("unsupported peak index version")

	// ErrSpeakerInit indicates the playback device could not be
	// initialized.
	ErrSpeakerInit = errors.New("unable to initialize playback device")
)
