// SPDX-License-Identifier: EPL-2.0

package wavescope_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ik5/wavescope"
	"github.com/ik5/wavescope/formats/wav"
	"github.com/ik5/wavescope/peaks"
)

func newScope() *wavescope.Scope {
	return wavescope.New(wavescope.Config{Logger: zerolog.Nop()})
}

func writeWavFile(t *testing.T, sampleRate, channels, frames int, value int16) string {
	t.Helper()

	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = value
	}

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, sampleRate, channels, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Parallel()

	s := newScope()
	if s.Host == nil || s.Peaks == nil || s.Player == nil || s.Regions == nil {
		t.Fatalf("incomplete scope: %+v", s)
	}
}

func TestScope_Render(t *testing.T) {
	t.Parallel()

	path := writeWavFile(t, 44100, 1, 44100, 16384)
	s := newScope()

	buf := s.Render(path, 400, peaks.DefaultOptions())
	if buf.IsPlaceholder {
		t.Fatal("got placeholder for a readable file")
	}
	if buf.Length != 400 {
		t.Errorf("length = %d, want 400", buf.Length)
	}
	if len(buf.Channels) != 1 {
		t.Errorf("channels = %d, want 1", len(buf.Channels))
	}
}

func TestScope_Render_StereoCapped(t *testing.T) {
	t.Parallel()

	path := writeWavFile(t, 44100, 2, 44100, 16384)
	s := newScope()

	buf := s.Render(path, 200, peaks.DefaultOptions())
	if len(buf.Channels) != 2 {
		t.Errorf("channels = %d, want 2", len(buf.Channels))
	}
}

func TestScope_Render_MissingFile(t *testing.T) {
	t.Parallel()

	s := newScope()
	buf := s.Render(filepath.Join(t.TempDir(), "gone.wav"), 300, peaks.DefaultOptions())

	if !buf.IsPlaceholder {
		t.Fatal("expected placeholder for missing file")
	}
	if buf.Length != 300 {
		t.Errorf("length = %d, want 300", buf.Length)
	}
}

func TestScope_Invalidate(t *testing.T) {
	t.Parallel()

	path := writeWavFile(t, 44100, 1, 44100, 16384)
	s := newScope()

	s.Render(path, 400, peaks.DefaultOptions())
	if _, err := s.Host.IndexSize(path); err != nil {
		t.Fatalf("no index after render: %v", err)
	}

	if err := s.Invalidate(path); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := s.Host.IndexSize(path); err == nil {
		t.Error("index survived Invalidate")
	}
}

func TestScope_Reset(t *testing.T) {
	t.Parallel()

	s := newScope()
	s.Regions.Create("a.wav", 1, 2)

	s.Reset()
	if s.Regions.Count("a.wav") != 0 {
		t.Error("regions survived Reset")
	}
}
