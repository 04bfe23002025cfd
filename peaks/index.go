// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// minViableIndexSize is the smallest sidecar index that can hold a
	// header plus any data. Anything smaller is a truncated write and
	// is rebuilt from scratch.
	minViableIndexSize = 100

	indexSettleWait = 50 * time.Millisecond
)

// indexManager guarantees that a subsequent peak read has a sidecar
// index to work from. It never returns peak data itself, and rebuild
// failure is non-fatal: extraction proceeds and the zero-sample
// fallback handles the rest.
type indexManager struct {
	host Host
	log  zerolog.Logger
}

func (m *indexManager) ensure(path string) {
	size, err := m.host.IndexSize(path)
	if err == nil && size >= minViableIndexSize {
		return
	}

	if err == nil {
		// Present but undersized: truncated or corrupt.
		m.log.Debug().Str("file", path).Int64("size", size).Msg("removing undersized peak index")
		if rmErr := m.host.RemoveIndex(path); rmErr != nil {
			m.log.Warn().Err(rmErr).Str("file", path).Msg("stale peak index removal failed")
		}
	}

	if buildErr := m.host.BuildIndex(path); buildErr != nil {
		m.log.Warn().Err(buildErr).Str("file", path).Msg("peak index rebuild failed")
		return
	}

	waitForIndexSettle()
}

// waitForIndexSettle gives a host whose index building finishes in the
// background a bounded moment to flush before the first read. The
// bundled file host builds synchronously, so for it this is pure slack.
func waitForIndexSettle() {
	time.Sleep(indexSettleWait)
}
