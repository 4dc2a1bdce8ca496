package transcript

import (
	"fmt"
	"strings"

	"scribe/internal/services"
)

// Render produces the complete output document for the requested kind.
// Timing is validated for every kind before any text is built: a segment with
// a negative start or with end at or before start aborts the render. The
// result is deterministic for identical input.
func Render(segments []Segment, kind Kind) (string, error) {
	if err := validateSegments(segments); err != nil {
		return "", err
	}
	switch kind {
	case KindText:
		return renderText(segments), nil
	case KindSRT:
		return renderSRT(segments), nil
	case KindVTT:
		return renderVTT(segments), nil
	default:
		return "", services.Wrap(services.ErrFormat, "format", "render", fmt.Sprintf("unsupported output kind %q", string(kind)), nil)
	}
}

func validateSegments(segments []Segment) error {
	for i, segment := range segments {
		if segment.Start < 0 {
			return services.Wrap(services.ErrFormat, "format", "validate",
				fmt.Sprintf("segment %d: negative start %.3f", i+1, segment.Start), nil)
		}
		if segment.End <= segment.Start {
			return services.Wrap(services.ErrFormat, "format", "validate",
				fmt.Sprintf("segment %d: end %.3f is not after start %.3f", i+1, segment.End, segment.Start), nil)
		}
	}
	return nil
}

func renderText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + "\n"
}

func renderSRT(segments []Segment) string {
	var b strings.Builder
	for i, segment := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		b.WriteString(formatTimestamp(segment.Start, ','))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(segment.End, ','))
		b.WriteByte('\n')
		b.WriteString(strings.TrimSpace(segment.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderVTT(segments []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, segment := range segments {
		b.WriteString(formatTimestamp(segment.Start, '.'))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(segment.End, '.'))
		b.WriteByte('\n')
		b.WriteString(strings.TrimSpace(segment.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}
