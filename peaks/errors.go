// SPDX-License-Identifier: EPL-2.0

package peaks

import "errors"

var (
	ErrMissingFile = errors.New("audio file cannot be opened")
	ErrNoPeaks     = errors.New("peak retrieval returned no samples")

	// ErrEmptyWindow marks a request whose time window clamps to
	// nothing before any peak retrieval happens. Unlike ErrNoPeaks it
	// says nothing about the health of the file or its index.
	ErrEmptyWindow = errors.New("display window is empty")
)
