// SPDX-License-Identifier: EPL-2.0

// Package wavescope renders waveform overviews of audio files and
// previews them, the way a sample browser or audio editor sidebar
// would.
//
// # Architecture
//
// The package is a thin facade over four subpackages:
//
//   - peaks renders per-pixel min/max/RMS envelopes of an audio
//     window, with caching, adaptive resolution and display
//     normalization (quiet-signal gain, log scaling, soft clipping).
//   - player is a small state machine for isolated preview playback of
//     one file within a bounded window, with auto-stop at the window
//     end.
//   - regions stores named time ranges per file, with hit-testing and
//     JSON-friendly export/import.
//   - filehost backs all of the above with local files: an
//     extension-keyed decoder registry (wav, mp3, ogg, aiff), sidecar
//     peak indexes and speaker playback via gopxl/beep.
//
// # Quick Start
//
//	scope := wavescope.New(wavescope.Config{Logger: log})
//
//	// Draw a 1.5s window starting at 10s, 800 pixels wide.
//	buf := scope.Render("take1.wav", 800, peaks.Options{
//		StartOffset:   10,
//		DisplayLength: 1.5,
//		AmplifyQuiet:  1,
//		VerticalZoom:  1,
//	})
//	for x := 0; x < buf.Length; x++ {
//		top := buf.Channels[0].Max[x]
//		bottom := buf.Channels[0].Min[x]
//		// draw column x from bottom to top
//		_ = top
//		_ = bottom
//	}
//
//	// Preview the same window from 0.3s in.
//	scope.Player.Start("take1.wav", 10, 1.5, 0.3)
//	for scope.Player.State() == player.Playing {
//		scope.Player.Tick()
//	}
//
// Render never returns an error: files that cannot be read come back
// as a flat placeholder buffer, so drawing code has no failure path.
//
// The subpackages are usable on their own; peaks in particular accepts
// any implementation of its Host interface, not just filehost.
package wavescope
