// Package pipeline sequences a transcription run: fetch the audio for a
// video URL, transcribe it, render the requested output format, and write
// the result atomically.
//
// Each run owns a staging directory named run-<uuid> under the configured
// work directory. The directory is removed on every exit path; audio
// survives only when the caller routes it elsewhere with KeepAudio or
// AudioOutput. Engine processes inherit the run context, so cancelling it
// kills an in-flight download or inference.
package pipeline
