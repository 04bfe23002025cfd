// SPDX-License-Identifier: EPL-2.0

package player

import (
	"time"

	"github.com/rs/zerolog"
)

// State of the preview player.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Handle is one live playback voice owned by the device.
type Handle interface {
	// Position reports the current absolute position in seconds.
	// ok is false when the device cannot tell, in which case the
	// player falls back to its wall clock estimate.
	Position() (pos float64, ok bool)

	// Playing reports whether the device is still producing audio.
	Playing() bool

	// SetVolume adjusts the voice volume in [0, 1].
	SetVolume(v float64)

	// Close stops the voice and releases device resources.
	Close() error
}

// Device opens playback handles. The filehost package provides a
// speaker-backed implementation; tests use fakes.
type Device interface {
	Open(path string, startPos, windowLen, volume float64) (Handle, error)
}

// Session describes the active (or last) playback window.
type Session struct {
	Path         string
	WindowStart  float64
	WindowLength float64
	Position     float64 // absolute seconds
	Volume       float64
}

// Player is a small state machine for isolated preview playback of one
// file within a bounded time window. At most one session is active;
// starting a new one always stops the previous one first.
//
// Tick must be called once per UI frame while playing, or auto-stop at
// the window end will not fire.
type Player struct {
	dev Device
	log zerolog.Logger
	now func() time.Time

	state   State
	session Session
	handle  Handle
	volume  float64

	startedAt time.Time
	startPos  float64

	// marker is the last user-clicked position, preserved across stop
	// so the UI cursor stays where the user left it.
	marker float64
}

// New creates a stopped player bound to a device.
func New(dev Device, log zerolog.Logger) *Player {
	return &Player{
		dev:    dev,
		log:    log,
		now:    time.Now,
		volume: 1.0,
	}
}

// State returns the current playback state.
func (p *Player) State() State { return p.state }

// Session returns a copy of the current session. Meaningful while
// Playing; after a stop it keeps the last window with the position
// reset to its start.
func (p *Player) Session() Session { return p.session }

// Position returns the current absolute playback position.
func (p *Player) Position() float64 { return p.session.Position }

// Start begins playback of path within [windowStart,
// windowStart+windowLength), at relativePos seconds into the window.
// A running session is stopped first. On device failure the player
// stays Stopped and the error is returned.
func (p *Player) Start(path string, windowStart, windowLength, relativePos float64) error {
	if p.state == Playing {
		p.Stop()
	}

	absolute := windowStart + relativePos
	if absolute < windowStart {
		absolute = windowStart
	}
	if absolute > windowStart+windowLength {
		absolute = windowStart + windowLength
	}

	remaining := windowStart + windowLength - absolute
	handle, err := p.dev.Open(path, absolute, remaining, p.volume)
	if err != nil {
		p.log.Warn().Err(err).Str("file", path).Msg("preview playback unavailable")
		return err
	}

	p.handle = handle
	p.session = Session{
		Path:         path,
		WindowStart:  windowStart,
		WindowLength: windowLength,
		Position:     absolute,
		Volume:       p.volume,
	}
	p.startedAt = p.now()
	p.startPos = absolute
	p.state = Playing

	return nil
}

// Tick advances position tracking and applies auto-stop. Call once per
// frame while Playing; a no-op otherwise.
func (p *Player) Tick() {
	if p.state != Playing {
		return
	}

	pos, ok := p.handle.Position()
	if !ok {
		// Device cannot report; estimate from the wall clock.
		pos = p.startPos + p.now().Sub(p.startedAt).Seconds()
	}

	end := p.session.WindowStart + p.session.WindowLength
	if pos < p.session.WindowStart {
		pos = p.session.WindowStart
	}
	if pos >= end {
		p.session.Position = end
		p.Stop()
		return
	}
	p.session.Position = pos

	if !p.handle.Playing() {
		p.Stop()
	}
}

// Stop releases the playback handle and resets the cursor to the
// window start (not zero) so a redraw still shows a sensible position.
// The user marker survives.
func (p *Player) Stop() {
	if p.handle != nil {
		if err := p.handle.Close(); err != nil {
			p.log.Debug().Err(err).Msg("playback handle close failed")
		}
		p.handle = nil
	}
	p.state = Stopped
	p.session.Position = p.session.WindowStart
}

// SetVolume applies v in [0, 1] immediately when playing, otherwise
// stores it for the next Start.
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.session.Volume = v
	if p.state == Playing && p.handle != nil {
		p.handle.SetVolume(v)
	}
}

// Volume returns the configured volume.
func (p *Player) Volume() float64 { return p.volume }

// SetMarker records the last user-clicked position. It survives Stop.
func (p *Player) SetMarker(pos float64) { p.marker = pos }

// Marker returns the last user-clicked position.
func (p *Player) Marker() float64 { return p.marker }
