// Package tint is the styling engine behind pipetint. It overlays
// colors and attributes onto plain text based on regex matches and
// resolves overlapping spans deterministically.
//
// The engine is built from four pieces:
//
//   - the range/priority data model (pkg/types): half-open style
//     ranges over plain-text offsets, ordered by a (stage, depth,
//     order) priority triple compared lexicographically;
//   - the nesting-depth analyzer (Pattern): ranks capture groups by
//     walking the compiled pattern's syntax tree, so inner groups
//     always outrank the groups that contain them;
//   - the ANSI decoder (Decode): reconstructs structured style ranges
//     and plain text from an already-styled string, preserving escape
//     sequences it does not understand verbatim at their offsets;
//   - the priority renderer (Render): serializes plain text plus
//     ranges back into styled, plain or markup output, emitting the
//     minimal transition at each change point.
//
// Styling survives pipes: a downstream pipetint invocation decodes the
// upstream stage's output into legacy ranges tagged with a lower
// pipeline stage, so everything highlighted in the current invocation
// outranks inherited styling. All offsets are computed against the
// plain text only; a pattern never matches against escape bytes.
//
// Every operation here is a pure function over immutable inputs.
// Decoding never fails (malformed escapes degrade to literal text);
// highlighting fails fast on bad patterns, unknown color names and
// out-of-range group assignments.
package tint
