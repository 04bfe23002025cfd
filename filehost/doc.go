// SPDX-License-Identifier: EPL-2.0

/*
Package filehost serves peak data and preview playback from audio files
on the local file system. It is the concrete backing for the peaks
engine (peaks.Host) and the preview player (player.Device).

# Decoding

Files are decoded through an extension-keyed audio.Registry. The
default registry covers wav, mp3, ogg (Vorbis) and aiff; callers can
supply their own registry to add or replace formats.

# Peak indexes

Each audio file gets a sidecar peak index next to it (".wspk" by
default): a small binary file of per-bin min/max pairs at a fixed base
resolution (256 source frames per bin by default). ReadPeaks serves
any coarser resolution by aggregating base bins, so the full file is
decoded once at index build time rather than on every redraw.

When the index is missing or unreadable, ReadPeaks falls back to a
direct streaming scan of the audio file. That keeps first paint
working while an index is (re)built.

Index writes are atomic: the sidecar is written to a temporary file in
the same directory and renamed into place.

# Playback

Device plays a window of an audio file through the system speaker
using gopxl/beep: the decoded source is adapted to a beep streamer,
bounded to the window length, routed through a volume stage and
resampled to the speaker rate. Position reporting counts frames at the
source rate, so it stays accurate across resampling.
*/
package filehost
