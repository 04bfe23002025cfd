// SPDX-License-Identifier: EPL-2.0

package filehost

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/ik5/wavescope/audio"
	"github.com/ik5/wavescope/player"
)

// DefaultSpeakerRate is the sample rate the speaker is initialized at.
// Sources at other rates are resampled on the fly.
const DefaultSpeakerRate = beep.SampleRate(44100)

// Device plays audio files through the system speaker. It implements
// player.Device. The speaker is initialized lazily on the first Open
// and shared by all handles.
type Device struct {
	host *Host
	log  zerolog.Logger
	rate beep.SampleRate

	initOnce sync.Once
	initErr  error
}

// NewDevice returns a playback device reading files through h.
func NewDevice(h *Host, log zerolog.Logger) *Device {
	return &Device{
		host: h,
		log:  log,
		rate: DefaultSpeakerRate,
	}
}

// Open starts playback of path at startPos seconds, bounded to
// windowLen seconds, at the given volume in [0, 1].
func (d *Device) Open(path string, startPos, windowLen, volume float64) (player.Handle, error) {
	d.initOnce.Do(func() {
		d.initErr = speaker.Init(d.rate, d.rate.N(time.Second/10))
	})
	if d.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpeakerInit, d.initErr)
	}

	src, err := d.host.open(path)
	if err != nil {
		return nil, err
	}

	// The speaker is stereo; fold anything wider down to mono first.
	var voice audio.Source = src
	if src.Channels() > 2 {
		voice = audio.NewMonoMixer(src)
	}

	srcRate := voice.SampleRate()
	if err := discardFrames(voice, int64(startPos*float64(srcRate))); err != nil {
		src.Close()
		return nil, err
	}

	stream := &sourceStreamer{src: voice, channels: voice.Channels()}
	bounded := beep.Take(int(windowLen*float64(srcRate)), stream)
	tap := newPositionTap(bounded, float64(srcRate), startPos)
	vol := &effects.Volume{
		Streamer: tap,
		Base:     2,
		Volume:   volumeGain(volume),
		Silent:   volume <= 0,
	}

	h := &handle{
		closer: src,
		stream: stream,
		tap:    tap,
		vol:    vol,
		log:    d.log,
	}

	out := beep.Resample(4, beep.SampleRate(srcRate), d.rate, vol)
	speaker.Play(beep.Seq(out, beep.Callback(func() {
		h.done.Store(true)
	})))

	d.log.Debug().
		Str("file", path).
		Float64("start", startPos).
		Float64("window", windowLen).
		Msg("preview voice opened")

	return h, nil
}

// volumeGain maps a linear [0, 1] volume to a beep base-2 exponent.
func volumeGain(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

type handle struct {
	closer audio.Source
	stream *sourceStreamer
	tap    *positionTap
	vol    *effects.Volume
	log    zerolog.Logger

	done   atomic.Bool
	closed atomic.Bool
}

func (h *handle) Position() (float64, bool) {
	return h.tap.position(), true
}

func (h *handle) Playing() bool {
	return !h.done.Load() && !h.closed.Load()
}

func (h *handle) SetVolume(v float64) {
	speaker.Lock()
	h.vol.Volume = volumeGain(v)
	h.vol.Silent = v <= 0
	speaker.Unlock()
}

func (h *handle) Close() error {
	if h.closed.Swap(true) {
		return nil
	}

	speaker.Lock()
	h.stream.stop()
	speaker.Unlock()

	return h.closer.Close()
}

// sourceStreamer adapts an audio.Source to a beep.Streamer, converting
// interleaved float32 PCM to beep's stereo float64 frames. Mono input
// is duplicated to both ears.
type sourceStreamer struct {
	src      audio.Source
	channels int
	buf      []float32
	stopped  bool
	err      error
}

func (s *sourceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.stopped || s.err != nil {
		return 0, false
	}

	need := len(samples) * s.channels
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}

	n, err := s.src.ReadSamples(s.buf[:need])
	frames := n / s.channels
	for f := 0; f < frames; f++ {
		if s.channels == 1 {
			v := float64(s.buf[f])
			samples[f][0] = v
			samples[f][1] = v
			continue
		}
		samples[f][0] = float64(s.buf[f*2])
		samples[f][1] = float64(s.buf[f*2+1])
	}

	if err != nil && frames == 0 {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return 0, false
	}
	return frames, frames > 0
}

func (s *sourceStreamer) Err() error { return s.err }

// stop ends the stream; call under speaker.Lock while playing.
func (s *sourceStreamer) stop() { s.stopped = true }

// positionTap counts frames flowing through the pipeline to report the
// playback position in source seconds. It sits between the bounded
// source and the volume stage so resampling does not skew the count.
type positionTap struct {
	s    beep.Streamer
	rate float64
	base float64

	mu     sync.Mutex
	frames int64
}

func newPositionTap(s beep.Streamer, rate, base float64) *positionTap {
	return &positionTap{s: s, rate: rate, base: base}
}

func (t *positionTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	t.mu.Lock()
	t.frames += int64(n)
	t.mu.Unlock()
	return n, ok
}

func (t *positionTap) Err() error { return t.s.Err() }

func (t *positionTap) position() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.base + float64(t.frames)/t.rate
}
