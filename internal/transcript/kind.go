package transcript

import "strings"

// Kind selects the rendered output encoding.
type Kind string

const (
	KindText Kind = "txt"
	KindSRT  Kind = "srt"
	KindVTT  Kind = "vtt"
)

var allKinds = []Kind{KindText, KindSRT, KindVTT}

// AllKinds returns the ordered list of supported output kinds.
func AllKinds() []Kind {
	cp := make([]Kind, len(allKinds))
	copy(cp, allKinds)
	return cp
}

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, kind := range allKinds {
		if kind == normalized {
			return kind, true
		}
	}
	return "", false
}

// KindNames returns the supported kind selectors for help and error text.
func KindNames() string {
	names := make([]string, len(allKinds))
	for i, kind := range allKinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}

// Extension returns the conventional file extension, including the dot.
func (k Kind) Extension() string {
	return "." + string(k)
}

func (k Kind) String() string {
	return string(k)
}
