// Package services defines shared utilities consumed by the pipeline stages
// and the external engine clients.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     reporting consistent across the download, transcription, and formatting
//     stages.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
