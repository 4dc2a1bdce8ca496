// Package ytdlp wraps the yt-dlp command-line downloader so the fetch stage
// can resolve a video URL into a local audio file and observe structured
// progress updates.
//
// It exposes a Client interface and a CLI implementation that shells out to
// yt-dlp with JSON progress and metadata output enabled, then verifies the
// downloaded file with ffprobe before handing it to the transcription stage.
// Tests can swap in fakes to avoid network access while still exercising
// pipeline behaviour.
package ytdlp
