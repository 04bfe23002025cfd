// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF decoding via github.com/go-audio/aiff.
//
// Only 16-bit PCM is supported. The decoder reports the total frame
// count from the COMM chunk.
//
//	decoder := aiff.Decoder{}
//	src, err := decoder.Decode(file)
package aiff
