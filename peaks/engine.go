// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Engine owns the extraction pipeline and its cache. It replaces the
// ambient globals of ad-hoc waveform code with one explicit object:
// create it once, render from it every frame, Reset it when the
// project changes.
type Engine struct {
	host  Host
	cache *Cache
	index *indexManager
	log   zerolog.Logger

	mtx   sync.Mutex
	infos map[string]Info // per-session probe memo
}

// NewEngine wires an engine to a host capability. Pass zerolog.Nop()
// to silence it.
func NewEngine(h Host, log zerolog.Logger) *Engine {
	return &Engine{
		host:  h,
		cache: NewCache(),
		index: &indexManager{host: h, log: log},
		log:   log,
		infos: make(map[string]Info),
	}
}

// Cache exposes the engine's cache, mostly for tests and stats.
func (e *Engine) Cache() *Cache { return e.cache }

// Probe resolves and memoizes the basic audio facts for a file.
func (e *Engine) Probe(path string) (Info, error) {
	e.mtx.Lock()
	if info, ok := e.infos[path]; ok {
		e.mtx.Unlock()
		return info, nil
	}
	e.mtx.Unlock()

	info, err := probeSource(e.host, path)
	if err != nil {
		return Info{}, err
	}

	e.mtx.Lock()
	e.infos[path] = info
	e.mtx.Unlock()
	return info, nil
}

// Render produces the per-channel peak buffer for a request. It never
// fails: every error path degrades to a flat placeholder buffer so the
// worst observable outcome is a flat-line waveform.
//
// The returned buffer may be served again on a later cache hit; treat
// it as read-only.
func (e *Engine) Render(req Request) *Buffer {
	width := req.Width
	if width < 1 {
		width = 1
	}
	channels := req.Channels
	if channels < 1 {
		channels = 1
	}
	opts := req.Options

	key := cacheKey(req.Path, width, opts.StartOffset, opts.DisplayLength)
	if buf, ok := e.cache.Get(key); ok {
		return buf
	}

	info, err := e.Probe(req.Path)
	if err != nil {
		e.log.Debug().Err(err).Str("file", req.Path).Msg("probe failed, serving placeholder")
		return newPlaceholder(channels, width, defaultSampleRate, opts.StartOffset)
	}

	e.index.ensure(req.Path)

	raw, err := extractWindow(e.host, req.Path, info, channels, opts.StartOffset, opts.DisplayLength, width)
	if errors.Is(err, ErrEmptyWindow) {
		// Out-of-range request, the host was never asked for peaks.
		// The index and cache stay as they are.
		e.log.Debug().Str("file", req.Path).Float64("start", opts.StartOffset).Msg("empty display window, serving placeholder")
		return newPlaceholder(channels, width, info.SampleRate, opts.StartOffset)
	}
	if err != nil {
		// Extraction came back empty even after the mono retry. Drop
		// the sidecar index and the cache entry so the next call
		// retries from a clean state.
		e.log.Warn().Err(err).Str("file", req.Path).Msg("extraction failed, purging index and cache")
		if rmErr := e.host.RemoveIndex(req.Path); rmErr != nil {
			e.log.Debug().Err(rmErr).Str("file", req.Path).Msg("index removal failed")
		}
		e.cache.Invalidate(req.Path)
		return newPlaceholder(channels, width, info.SampleRate, opts.StartOffset)
	}

	raw = resampleRaw(raw, width)

	buf := &Buffer{
		Channels:    make([]ChannelPeaks, channels),
		Length:      width,
		SampleRate:  info.SampleRate,
		StartOffset: opts.StartOffset,
	}
	for ch := 0; ch < channels; ch++ {
		buf.Channels[ch] = ChannelPeaks{
			Min: raw.min[ch],
			Max: raw.max[ch],
			RMS: raw.rms[ch],
		}
		normalizeChannel(buf.Channels[ch], opts)
	}

	e.cache.Put(key, buf)
	return buf
}

// Invalidate drops every cached buffer referencing the file and its
// probe memo, forcing a fresh extraction on the next render.
func (e *Engine) Invalidate(path string) {
	e.mtx.Lock()
	delete(e.infos, path)
	e.mtx.Unlock()

	n := e.cache.Invalidate(path)
	if n > 0 {
		e.log.Debug().Str("file", path).Int("entries", n).Msg("cache invalidated")
	}
}

// Reset drops all cached buffers and probe memos.
func (e *Engine) Reset() {
	e.mtx.Lock()
	e.infos = make(map[string]Info)
	e.mtx.Unlock()

	e.cache.Clear()
}
