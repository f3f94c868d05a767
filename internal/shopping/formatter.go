package shopping

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format selects an export variant.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// Formats lists every supported export format.
var Formats = []Format{FormatText, FormatPDF, FormatXLSX, FormatHTML}

// ParseFormat accepts a format token case-insensitively; "text" is an alias for txt.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	case "xlsx":
		return FormatXLSX, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Formatter renders an already aggregated and sorted shopping list.
// Implementations must not reorder or merge entries, and must return
// ErrEmptyList for an empty sequence.
type Formatter interface {
	Render(w io.Writer, entries []AggregatedEntry) error
	ContentType() string
	Extension() string
}

// Options carries the optional header shown by formats that have one.
type Options struct {
	Title       string
	GeneratedAt time.Time
}

// NewFormatter returns the formatter for f.
func NewFormatter(f Format, opts Options) (Formatter, error) {
	switch f {
	case FormatText:
		return &TextFormatter{opts: opts}, nil
	case FormatPDF:
		return &PDFFormatter{opts: opts}, nil
	case FormatXLSX:
		return &XLSXFormatter{opts: opts}, nil
	case FormatHTML:
		return &HTMLFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

func (o Options) titleOr(fallback string) string {
	if o.Title != "" {
		return o.Title
	}
	return fallback
}

func (o Options) generatedLine() string {
	if o.GeneratedAt.IsZero() {
		return ""
	}
	return "Generated " + o.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")
}
