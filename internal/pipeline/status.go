package pipeline

// Status represents the lifecycle of a single transcription run.
type Status string

const (
	StatusPending      Status = "pending"
	StatusFetching     Status = "fetching"
	StatusTranscribing Status = "transcribing"
	StatusFormatting   Status = "formatting"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusFetching,
	StatusTranscribing,
	StatusFormatting,
	StatusCompleted,
	StatusFailed,
}

// AllStatuses returns the ordered list of run statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// IsTerminal reports whether the run can no longer progress.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// StageLabel returns the human-readable label progress renderers display.
func (s Status) StageLabel() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusFetching:
		return "Fetching audio"
	case StatusTranscribing:
		return "Transcribing"
	case StatusFormatting:
		return "Writing transcript"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

func (s Status) String() string {
	return string(s)
}
