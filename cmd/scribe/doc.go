// Package main hosts the Scribe CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a video URL into a finished transcript:
// it resolves configuration, sets up structured logging, and hands the run to
// the transcription pipeline. Utility subcommands cover configuration
// scaffolding, environment status checks, the model reference table, and
// notification testing.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// reusable pipeline components.
package main
