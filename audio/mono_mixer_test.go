package audio

import (
	"io"
	"math"
	"testing"
)

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 2, 1000)
	mixer := NewMonoMixer(src)

	if mixer.SampleRate() != 44100 {
		t.Errorf("MonoMixer.SampleRate() = %d, want 44100", mixer.SampleRate())
	}

	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}

	if mixer.Frames() != 1000 {
		t.Errorf("MonoMixer.Frames() = %d, want 1000", mixer.Frames())
	}
}

func TestMonoMixer_MonoPassThrough(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 1, 100, 0.25)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 100)
	n, err := mixer.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 100 {
		t.Fatalf("ReadSamples() = %d samples, want 100", n)
	}

	for i := 0; i < n; i++ {
		if buf[i] != 0.25 {
			t.Fatalf("buf[%d] = %v, want 0.25", i, buf[i])
		}
	}
}

func TestMonoMixer_StereoAverage(t *testing.T) {
	t.Parallel()

	// Left channel is 1.0 and right channel is 0.0, so the mono mix
	// should sit at 0.5 for every frame.
	src := audiotestStereoSplit(8000, 200)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 200)
	n, err := mixer.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	for i := 0; i < n; i++ {
		if math.Abs(float64(buf[i]-0.5)) > 1e-6 {
			t.Fatalf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 2, 100)
	mixer := NewMonoMixer(src)

	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}
