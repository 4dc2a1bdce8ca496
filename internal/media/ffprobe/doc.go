// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no scribe-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, duration, channels)
//   - Format: container-level metadata (duration, size)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result provide convenient access to audio stream counts
// and duration parsing, which the fetch stage uses to verify that a
// downloaded file actually contains decodable audio.
package ffprobe
