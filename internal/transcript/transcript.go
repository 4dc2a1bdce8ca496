package transcript

// Segment is a contiguous time-bounded span of recognized speech. Offsets are
// seconds from the start of the audio. Segments arrive from the engine in
// chronological order and are rendered in that order.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcript is the full result of one transcription run. Segments is never
// nil; silent audio yields an empty slice.
type Transcript struct {
	Language string
	Duration float64
	Segments []Segment
}
