// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level source abstraction used by the
// waveform engine.
//
// This package contains the building blocks every other package is wired
// through:
//   - Source interface for decoded audio input
//   - MonoMixer for channel mixdown
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    Frames() int64
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders implement this interface, which lets the file host
// scan any supported container the same way when it builds peak indexes
// or feeds preview playback.
//
// Frames reports the total number of frames per channel when the
// container carries that information (WAV data chunk size, MP3 decoder
// length, Vorbis stream length, AIFF COMM chunk); it returns -1 when the
// length is unknown. The probe layer uses it to derive total duration
// without decoding the whole file.
//
// # Channel Mixdown
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// The peak reader uses it when a caller asks for a single-channel
// envelope of a multi-channel file.
//
// # Format Registry
//
// The registry maps format keys (usually file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors
// indicate problems with the underlying reader:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
