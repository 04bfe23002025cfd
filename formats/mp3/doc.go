// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding via github.com/hajimehoshi/go-mp3.
//
// The decoder produces stereo 16-bit PCM regardless of the input layout
// and reports the total frame count from the decoder's stream length,
// which lets the waveform probe derive duration cheaply.
//
//	decoder := mp3.Decoder{}
//	src, err := decoder.Decode(file)
package mp3
