package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Formatter defines the interface for rendering a Report.
type Formatter interface {
	// Format converts a Report to a formatted string.
	Format(r *Report) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(r *Report) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(r *Report) string {
	return f(r)
}

// TextFormatter renders the human-readable report. Sections always appear
// in the order no marker, missing, repeated, out of order.
type TextFormatter struct {
	t func(string) string
}

// TextOption configures a TextFormatter.
type TextOption func(*TextFormatter)

// WithTranslator translates labels through t.
func WithTranslator(t func(string) string) TextOption {
	return func(f *TextFormatter) {
		f.t = t
	}
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(opts ...TextOption) *TextFormatter {
	f := &TextFormatter{t: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *TextFormatter) Format(r *Report) string {
	t := f.t
	var b strings.Builder

	title := t("Verification Report")
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n")

	if r.Video != "" {
		fmt.Fprintf(&b, "%s: %s\n", t("Video"), r.Video)
	}
	if r.Interrupted {
		fmt.Fprintf(&b, "%s: %s\n", t("Status"), t("interrupted, partial report"))
	}
	fmt.Fprintf(&b, "%s: %d\n", t("Total frames analyzed"), r.TotalFrames)
	if r.SkipMargin > 0 {
		fmt.Fprintf(&b, "%s: %d", t("Skip margin"), r.SkipMargin)
		if first, last, ok := r.ClassifiedRange(); ok && !r.Interrupted {
			fmt.Fprintf(&b, " (%s %d-%d)", t("classified positions"), first, last)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %d\n", t("Frames with no marker"), len(r.NoMarker))
	if len(r.NoMarker) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", t("No marker positions"), joinInts(r.NoMarker))
	}

	gapWord := t("gaps")
	if len(r.Missing) == 1 {
		gapWord = t("gap")
	}
	fmt.Fprintf(&b, "%s: %d", t("Missing frames"), r.MissingOrdinals())
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, " (%d %s)", len(r.Missing), gapWord)
	}
	b.WriteString("\n")
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", t("Missing frame numbers"), joinGaps(r.Missing))
	}

	fmt.Fprintf(&b, "%s: %d\n", t("Repeated frames"), len(r.Repeated))
	if len(r.Repeated) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", t("Repeated frame numbers"), joinOccurrences(r.Repeated, t("position")))
	}

	fmt.Fprintf(&b, "%s: %d\n", t("Out of order frames"), len(r.OutOfOrder))
	if len(r.OutOfOrder) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", t("Out of order frame numbers"), joinOccurrences(r.OutOfOrder, t("position")))
	}

	if r.Evidence != nil {
		fmt.Fprintf(&b, "%s: %s (%s %d, %s %d)\n", t("Evidence"), r.Evidence.Dir,
			t("written"), r.Evidence.Written, t("failed"), r.Evidence.Failed)
	}

	return b.String()
}

// JSONFormatter renders the report as indented JSON. Labels are never
// translated.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format implements Formatter.
func (f *JSONFormatter) Format(r *Report) string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}\n", err.Error())
	}
	return string(data) + "\n"
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// joinGaps renders gaps as ranges, a single missing ordinal as a plain number.
func joinGaps(gaps []Gap) string {
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		if g.From == g.To {
			parts[i] = strconv.Itoa(g.From)
		} else {
			parts[i] = fmt.Sprintf("%d-%d", g.From, g.To)
		}
	}
	return strings.Join(parts, ", ")
}

func joinOccurrences(occ []Occurrence, positionLabel string) string {
	parts := make([]string, len(occ))
	for i, o := range occ {
		parts[i] = fmt.Sprintf("%d (%s %d)", o.Ordinal, positionLabel, o.Position)
	}
	return strings.Join(parts, ", ")
}
