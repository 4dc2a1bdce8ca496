// Package whisper runs speech-to-text over audio files by driving the
// faster-whisper engine through a bundled Python helper.
//
// The helper script is embedded in the binary and materialized into the
// caller's work directory for each run, so the only host requirements are a
// Python interpreter and the faster-whisper package. The engine owns model
// weight downloads and caching; this package only selects the model size and
// parses the JSON result.
package whisper
