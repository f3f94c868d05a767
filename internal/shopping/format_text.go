package shopping

import (
	"bufio"
	"io"
)

// TextFormatter renders one "<Name> (<Unit>) — <Amount>" line per entry.
// A header is written only when a title is configured.
type TextFormatter struct {
	opts Options
}

func (f *TextFormatter) ContentType() string { return "text/plain; charset=utf-8" }
func (f *TextFormatter) Extension() string   { return "txt" }

func (f *TextFormatter) Render(w io.Writer, entries []AggregatedEntry) error {
	if len(entries) == 0 {
		return ErrEmptyList
	}

	bw := bufio.NewWriter(w)
	if f.opts.Title != "" {
		bw.WriteString(f.opts.Title + "\n")
		if line := f.opts.generatedLine(); line != "" {
			bw.WriteString(line + "\n")
		}
		bw.WriteString("\n")
	}

	for _, e := range entries {
		bw.WriteString(e.Label() + " — " + e.FormatAmount() + "\n")
	}
	return bw.Flush()
}
