// SPDX-License-Identifier: EPL-2.0

package wavescope

import (
	"github.com/rs/zerolog"

	"github.com/ik5/wavescope/filehost"
	"github.com/ik5/wavescope/peaks"
	"github.com/ik5/wavescope/player"
	"github.com/ik5/wavescope/regions"
)

// Config for a Scope. All fields are optional.
type Config struct {
	// Host configures file access and sidecar indexing. Its Logger
	// field is overridden by Logger below.
	Host filehost.Config

	Logger zerolog.Logger
}

// Scope bundles the waveform engine, the preview player and the region
// store over one local file host. It is the top-level object an
// application holds: one per open project.
type Scope struct {
	// Host grants direct access to probing and index maintenance.
	Host *filehost.Host

	// Peaks renders waveform buffers.
	Peaks *peaks.Engine

	// Player previews windows of audio files.
	Player *player.Player

	// Regions holds named time ranges per file.
	Regions *regions.Store
}

// New wires a Scope over the local file system.
func New(cfg Config) *Scope {
	cfg.Host.Logger = cfg.Logger
	host := filehost.New(cfg.Host)

	return &Scope{
		Host:    host,
		Peaks:   peaks.NewEngine(host, cfg.Logger),
		Player:  player.New(filehost.NewDevice(host, cfg.Logger), cfg.Logger),
		Regions: regions.NewStore(),
	}
}

// Render produces a peak buffer for drawing path at the given pixel
// width. The channel count comes from the file itself, capped at
// stereo. It never fails; unreadable files yield a flat placeholder.
func (s *Scope) Render(path string, width int, opts peaks.Options) *peaks.Buffer {
	channels := 1
	if info, err := s.Peaks.Probe(path); err == nil {
		channels = info.Channels
		if channels > 2 {
			channels = 2
		}
		if channels < 1 {
			channels = 1
		}
	}

	return s.Peaks.Render(peaks.Request{
		Path:     path,
		Channels: channels,
		Width:    width,
		Options:  opts,
	})
}

// Invalidate drops all cached state for a file after it changed on
// disk: peak cache entries, the probe memo and the sidecar index.
func (s *Scope) Invalidate(path string) error {
	s.Peaks.Invalidate(path)
	return s.Host.RemoveIndex(path)
}

// Reset returns the scope to its initial state: playback stopped,
// caches dropped, regions cleared. Sidecar indexes stay on disk.
func (s *Scope) Reset() {
	s.Player.Stop()
	s.Peaks.Reset()
	s.Regions.Reset()
}
