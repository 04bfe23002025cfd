package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// fakeAiffReader simulates a go-audio aiff decoder for testing the wrapper.
type fakeAiffReader struct {
	format *goaudio.Format
	data   []int
	pos    int
}

func (f *fakeAiffReader) Format() *goaudio.Format { return f.format }

func (f *fakeAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_ReadSamples16Bit(t *testing.T) {
	t.Parallel()

	fake := &fakeAiffReader{
		format: &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		data:   []int{16384, -16384, 8192},
	}
	src := &source{dec: fake, sampleRate: 44100, channels: 1, bitDepth: 16, frames: 3}

	buf := make([]float32, 3)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadSamples() = %d samples, want 3", n)
	}

	want := []float32{0.5, -0.5, 0.25}
	for i := range want {
		diff := buf[i] - want[i]
		if diff > 0.001 || diff < -0.001 {
			t.Errorf("buf[%d] = %v, want ≈%v", i, buf[i], want[i])
		}
	}
}

func TestSource_Frames(t *testing.T) {
	t.Parallel()

	src := &source{frames: 44100}
	if src.Frames() != 44100 {
		t.Errorf("Frames() = %d, want 44100", src.Frames())
	}
}

func TestDecoder_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is not a FORM container")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestReadSeeker_Seek(t *testing.T) {
	t.Parallel()

	rs := &readSeeker{data: []byte{1, 2, 3, 4, 5}}

	pos, err := rs.Seek(2, io.SeekStart)
	if err != nil || pos != 2 {
		t.Fatalf("Seek(2, SeekStart) = (%d, %v), want (2, nil)", pos, err)
	}

	pos, err = rs.Seek(1, io.SeekCurrent)
	if err != nil || pos != 3 {
		t.Fatalf("Seek(1, SeekCurrent) = (%d, %v), want (3, nil)", pos, err)
	}

	pos, err = rs.Seek(-1, io.SeekEnd)
	if err != nil || pos != 4 {
		t.Fatalf("Seek(-1, SeekEnd) = (%d, %v), want (4, nil)", pos, err)
	}

	if _, err := rs.Seek(-10, io.SeekStart); err == nil {
		t.Error("Seek() to negative position did not fail")
	}
}
