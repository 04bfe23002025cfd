// SPDX-License-Identifier: EPL-2.0

package filehost

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"

	"github.com/ik5/wavescope/internal/audiotest"
)

func TestSourceStreamer_Mono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 8, 0.25)
	s := &sourceStreamer{src: src, channels: 1}

	out := make([][2]float64, 8)
	n, ok := s.Stream(out)
	if !ok || n != 8 {
		t.Fatalf("Stream = %d, %v", n, ok)
	}

	for i := 0; i < n; i++ {
		if math.Abs(out[i][0]-0.25) > 1e-6 || math.Abs(out[i][1]-0.25) > 1e-6 {
			t.Fatalf("frame %d = %v, want duplicated mono 0.25", i, out[i])
		}
	}

	// Drained source ends the stream.
	if n, ok := s.Stream(out); n != 0 || ok {
		t.Errorf("after EOF: Stream = %d, %v", n, ok)
	}
	if s.Err() != nil {
		t.Errorf("EOF leaked as error: %v", s.Err())
	}
}

func TestSourceStreamer_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4, func(sample, channel int) float32 {
		if channel == 0 {
			return 0.5
		}
		return -0.5
	})
	s := &sourceStreamer{src: src, channels: 2}

	out := make([][2]float64, 4)
	n, ok := s.Stream(out)
	if !ok || n != 4 {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if out[0][0] != 0.5 || out[0][1] != -0.5 {
		t.Errorf("frame 0 = %v, want [0.5 -0.5]", out[0])
	}
}

func TestSourceStreamer_Stop(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 1000, 0.1)
	s := &sourceStreamer{src: src, channels: 1}

	out := make([][2]float64, 16)
	if n, ok := s.Stream(out); !ok || n != 16 {
		t.Fatalf("Stream = %d, %v", n, ok)
	}

	s.stop()
	if n, ok := s.Stream(out); n != 0 || ok {
		t.Errorf("after stop: Stream = %d, %v", n, ok)
	}
}

func TestPositionTap(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 44100, 0.1)
	var stream beep.Streamer = &sourceStreamer{src: src, channels: 1}
	tap := newPositionTap(stream, 44100, 2.5)

	if got := tap.position(); got != 2.5 {
		t.Fatalf("initial position = %f, want 2.5", got)
	}

	// Pull half a second of audio through.
	out := make([][2]float64, 512)
	pulled := 0
	for pulled < 22050 {
		n, ok := tap.Stream(out)
		if !ok {
			t.Fatalf("stream ended early at %d frames", pulled)
		}
		pulled += n
	}

	want := 2.5 + float64(pulled)/44100
	if got := tap.position(); math.Abs(got-want) > 1e-9 {
		t.Errorf("position = %f, want %f", got, want)
	}
}

func TestPositionTap_BoundedByTake(t *testing.T) {
	t.Parallel()

	// One second of source bounded to a quarter second window.
	src := audiotest.NewConstantSource(44100, 1, 44100, 0.1)
	stream := &sourceStreamer{src: src, channels: 1}
	bounded := beep.Take(11025, stream)
	tap := newPositionTap(bounded, 44100, 0)

	out := make([][2]float64, 512)
	for {
		if n, ok := tap.Stream(out); !ok && n == 0 {
			break
		}
	}

	if got := tap.position(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("position = %f, want 0.25", got)
	}
}

func TestVolumeGain(t *testing.T) {
	t.Parallel()

	if got := volumeGain(1); got != 0 {
		t.Errorf("volumeGain(1) = %f, want 0", got)
	}
	if got := volumeGain(0.5); math.Abs(got+1) > 1e-9 {
		t.Errorf("volumeGain(0.5) = %f, want -1", got)
	}
	if got := volumeGain(0); got != 0 {
		t.Errorf("volumeGain(0) = %f, want 0 (silent flag handles it)", got)
	}
}
