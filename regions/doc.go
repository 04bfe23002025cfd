// SPDX-License-Identifier: EPL-2.0

// Package regions stores named, user-defined time spans over a file's
// timeline.
//
// Regions are kept per file as an ordered sequence: insertion order is
// meaningful, because hit-testing returns the first region containing
// a position. Overlap is permitted and never reconciled. Every stored
// region satisfies Start < End with a span of at least MinSpan.
//
// Regions round-trip losslessly through Export/Import as plain
// Records, which marshal to JSON for embedding in preset data.
package regions
