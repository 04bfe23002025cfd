// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV file decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav for robust chunk handling
// and supports PCM at 8, 16, 24 and 32 bits per sample. The decoder
// reports the total frame count from the data chunk, which the waveform
// probe uses to derive file duration.
//
//	decoder := wav.Decoder{}
//	src, err := decoder.Decode(file)
//
// WriteWAV16 writes interleaved 16-bit PCM, and is mostly useful for
// producing fixtures and exporting scratch audio:
//
//	samples := []int16{100, -100, 200, -200}
//	wav.WriteWAV16(file, 44100, 2, samples)
package wav
