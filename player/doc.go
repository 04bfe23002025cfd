// SPDX-License-Identifier: EPL-2.0

// Package player implements preview playback of a file within a
// bounded time window.
//
// The Player is a two-state machine (Stopped, Playing) driven by a
// frame-polled Tick. It owns at most one playback Handle at a time;
// starting a new preview always stops the previous one. When the
// device cannot report a position, the player estimates one from the
// wall clock so the cursor keeps moving.
//
//	p := player.New(device, zerolog.Nop())
//	p.Start("take.wav", 0, 5, 2) // play [2s, 5s) of the first 5s window
//	for p.State() == player.Playing {
//	    p.Tick() // once per UI frame
//	}
//
// Stop resets the reported position to the window start rather than
// zero, and the last user-clicked marker survives the stop, so a
// redraw after stopping still shows a sensible cursor.
package player
