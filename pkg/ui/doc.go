// Package ui renders pipeline status lines in a plain terminal.
//
// The Shell reads lines from a progress.Channel, colors them by their
// leading glyph and ends the run with a notice that distinguishes a full
// success from runs where nothing could be saved. The interactive
// alternative lives in the tui subpackage.
package ui
