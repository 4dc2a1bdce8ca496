// Package transcript defines the timed-segment model produced by the
// transcription engine and renders it into the supported output encodings:
// continuous text, SubRip, and WebVTT.
//
// Rendering is pure string construction over validated segments. Callers own
// persistence; Render never touches the filesystem.
package transcript
