// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding via
// github.com/jfreymuth/oggvorbis.
//
// The decoder reads interleaved float32 samples directly from the
// Vorbis stream and reports the total frame count when the input
// reader is seekable.
//
//	decoder := vorbis.Decoder{}
//	src, err := decoder.Decode(file)
package vorbis
