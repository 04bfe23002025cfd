// SPDX-License-Identifier: EPL-2.0

package filehost

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ik5/wavescope/audio"
	"github.com/ik5/wavescope/formats/aiff"
	"github.com/ik5/wavescope/formats/mp3"
	"github.com/ik5/wavescope/formats/vorbis"
	"github.com/ik5/wavescope/formats/wav"
	"github.com/ik5/wavescope/peaks"
	"github.com/ik5/wavescope/utils"
)

// DefaultIndexSuffix is appended to the audio file's path to name its
// sidecar peak index.
const DefaultIndexSuffix = ".wspk"

// Config controls Host construction. Zero fields fall back to
// defaults.
type Config struct {
	// Registry maps file extensions to decoders. When nil,
	// DefaultRegistry is used.
	Registry *audio.Registry

	// IndexSuffix names the sidecar index next to each audio file.
	IndexSuffix string

	// BinFrames is the base index resolution in source frames per bin.
	BinFrames int

	Logger zerolog.Logger
}

// Host reads audio files from the local file system and maintains
// sidecar peak indexes next to them. It implements peaks.Host.
type Host struct {
	registry *audio.Registry
	suffix   string
	bin      int
	log      zerolog.Logger
}

// New returns a Host with the given configuration.
func New(cfg Config) *Host {
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.IndexSuffix == "" {
		cfg.IndexSuffix = DefaultIndexSuffix
	}
	if cfg.BinFrames <= 0 {
		cfg.BinFrames = DefaultBinFrames
	}

	return &Host{
		registry: cfg.Registry,
		suffix:   cfg.IndexSuffix,
		bin:      cfg.BinFrames,
		log:      cfg.Logger,
	}
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// IndexPath returns the sidecar index path for an audio file.
func (h *Host) IndexPath(path string) string {
	return path + h.suffix
}

func pathDir(path string) string {
	return filepath.Dir(path)
}

// formatKey normalizes a file extension to a registry key.
func formatKey(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "aif":
		return "aiff"
	case "oga":
		return "ogg"
	}
	return ext
}

// sourceFile couples a decoded source with the file it reads from so
// closing the source also closes the file.
type sourceFile struct {
	audio.Source
	f *os.File
}

func (s *sourceFile) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (h *Host) open(path string) (audio.Source, error) {
	key := formatKey(path)
	dec, ok := h.registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &sourceFile{Source: src, f: f}, nil
}

// Probe reports sample rate, channels and duration. When a valid
// sidecar index exists its header is used; otherwise the file is
// opened and decoded.
func (h *Host) Probe(path string) (peaks.Info, error) {
	if f, err := os.Open(h.IndexPath(path)); err == nil {
		hdr, herr := readIndexHeader(f)
		f.Close()
		if herr == nil {
			frames := int64(hdr.binCount) * int64(hdr.binFrames)
			return peaks.Info{
				SampleRate: hdr.sampleRate,
				Channels:   hdr.channels,
				Duration:   float64(frames) / float64(hdr.sampleRate),
			}, nil
		}
	}

	src, err := h.open(path)
	if err != nil {
		return peaks.Info{}, err
	}
	defer src.Close()

	info := peaks.Info{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}
	if frames := src.Frames(); frames > 0 {
		info.Duration = float64(frames) / float64(info.SampleRate)
	}
	return info, nil
}

// IndexSize reports the size of the sidecar index in bytes.
func (h *Host) IndexSize(path string) (int64, error) {
	fi, err := os.Stat(h.IndexPath(path))
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return fi.Size(), nil
}

// RemoveIndex deletes the sidecar index. A missing index is not an
// error.
func (h *Host) RemoveIndex(path string) error {
	err := os.Remove(h.IndexPath(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// BuildIndex decodes the whole file and writes a fresh sidecar index.
func (h *Host) BuildIndex(path string) error {
	src, err := h.open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	channels := src.Channels()
	curMax := make([]float32, channels)
	curMin := make([]float32, channels)
	inBin := 0
	var data []int16

	flush := func() {
		for ch := 0; ch < channels; ch++ {
			data = append(data, utils.Float32ToInt16(curMax[ch]), utils.Float32ToInt16(curMin[ch]))
		}
		inBin = 0
	}

	buf := make([]float32, 4096*channels)
	for {
		n, rerr := src.ReadSamples(buf)
		frames := n / channels
		for f := 0; f < frames; f++ {
			base := f * channels
			if inBin == 0 {
				for ch := 0; ch < channels; ch++ {
					curMax[ch] = buf[base+ch]
					curMin[ch] = buf[base+ch]
				}
			} else {
				for ch := 0; ch < channels; ch++ {
					v := buf[base+ch]
					if v > curMax[ch] {
						curMax[ch] = v
					}
					if v < curMin[ch] {
						curMin[ch] = v
					}
				}
			}
			inBin++
			if inBin == h.bin {
				flush()
			}
		}
		if rerr != nil || n == 0 {
			break
		}
	}
	if inBin > 0 {
		flush()
	}

	hdr := indexHeader{
		sampleRate: src.SampleRate(),
		channels:   channels,
		binFrames:  h.bin,
		binCount:   len(data) / (2 * channels),
	}

	h.log.Debug().
		Str("path", path).
		Int("bins", hdr.binCount).
		Int("channels", channels).
		Msg("peak index built")

	return saveIndex(h.IndexPath(path), hdr, data)
}

// ReadPeaks serves a batched peak request from the sidecar index,
// falling back to a direct decode scan when the index is missing or
// unreadable.
func (h *Host) ReadPeaks(path string, peakRate int, start float64, channels, samples int) (peaks.Block, error) {
	if peakRate <= 0 || channels <= 0 || samples <= 0 {
		return peaks.Block{}, nil
	}

	hdr, data, err := loadIndex(h.IndexPath(path))
	if err != nil {
		h.log.Debug().Str("path", path).Err(err).Msg("peak index unavailable, scanning directly")
		return h.directScan(path, peakRate, start, channels, samples)
	}

	fileCh := hdr.channels
	mixdown := channels == 1 && fileCh > 1
	startFrame := int64(start * float64(hdr.sampleRate))

	maxBlock := make([]float32, 0, samples*channels)
	minBlock := make([]float32, 0, samples*channels)

	produced := 0
	for s := 0; s < samples; s++ {
		frameLo := startFrame + int64(s)*int64(peakRate)
		frameHi := frameLo + int64(peakRate)

		b0 := int(frameLo / int64(hdr.binFrames))
		b1 := int((frameHi - 1) / int64(hdr.binFrames))
		if b0 < 0 || b0 >= hdr.binCount {
			break
		}
		if b1 >= hdr.binCount {
			b1 = hdr.binCount - 1
		}

		for ch := 0; ch < channels; ch++ {
			var mx, mn float32
			first := true
			lo, hi := ch%fileCh, ch%fileCh
			if mixdown {
				lo, hi = 0, fileCh-1
			}
			for b := b0; b <= b1; b++ {
				for src := lo; src <= hi; src++ {
					bmax, bmin := binAt(hdr, data, b, src)
					if first {
						mx, mn = bmax, bmin
						first = false
						continue
					}
					if bmax > mx {
						mx = bmax
					}
					if bmin < mn {
						mn = bmin
					}
				}
			}
			maxBlock = append(maxBlock, mx)
			minBlock = append(minBlock, mn)
		}
		produced++
	}

	if produced == 0 {
		return peaks.Block{}, nil
	}

	out := peaks.Block{
		Samples:  produced,
		Channels: channels,
		Data:     append(maxBlock, minBlock...),
	}
	return out, nil
}

// directScan decodes the file and computes peaks on the fly. Used when
// no index is available yet.
func (h *Host) directScan(path string, peakRate int, start float64, channels, samples int) (peaks.Block, error) {
	raw, err := h.open(path)
	if err != nil {
		return peaks.Block{}, err
	}
	defer raw.Close()

	var src audio.Source = raw
	if channels == 1 && raw.Channels() > 1 {
		src = audio.NewMonoMixer(raw)
	}

	ch := src.Channels()
	skip := int64(start * float64(src.SampleRate()))
	if err := discardFrames(src, skip); err != nil {
		return peaks.Block{}, err
	}

	curMax := make([]float32, ch)
	curMin := make([]float32, ch)
	maxBlock := make([]float32, 0, samples*ch)
	minBlock := make([]float32, 0, samples*ch)
	inBin := 0
	produced := 0

	flush := func() {
		maxBlock = append(maxBlock, curMax...)
		minBlock = append(minBlock, curMin...)
		inBin = 0
		produced++
	}

	buf := make([]float32, 4096*ch)
	for produced < samples {
		n, rerr := src.ReadSamples(buf)
		frames := n / ch
		for f := 0; f < frames && produced < samples; f++ {
			base := f * ch
			if inBin == 0 {
				copy(curMax, buf[base:base+ch])
				copy(curMin, buf[base:base+ch])
			} else {
				for c := 0; c < ch; c++ {
					v := buf[base+c]
					if v > curMax[c] {
						curMax[c] = v
					}
					if v < curMin[c] {
						curMin[c] = v
					}
				}
			}
			inBin++
			if inBin == peakRate {
				flush()
			}
		}
		if rerr != nil || n == 0 {
			break
		}
	}
	if inBin > 0 && produced < samples {
		flush()
	}

	if produced == 0 {
		return peaks.Block{}, nil
	}

	return peaks.Block{
		Samples:  produced,
		Channels: ch,
		Data:     append(maxBlock, minBlock...),
	}, nil
}

// discardFrames reads and drops frames from the start of a source.
func discardFrames(src audio.Source, frames int64) error {
	if frames <= 0 {
		return nil
	}

	buf := make([]float32, 4096)
	remaining := frames * int64(src.Channels())
	for remaining > 0 {
		want := int64(len(buf))
		if want > remaining {
			want = remaining
		}
		n, err := src.ReadSamples(buf[:want])
		remaining -= int64(n)
		if err != nil || n == 0 {
			return nil
		}
	}
	return nil
}
