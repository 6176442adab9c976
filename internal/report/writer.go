package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/mepower/internal/model"
)

// Output formats accepted by New.
const (
	FormatNDJSON   = "ndjson"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format: must be ndjson or markdown")

// Writer writes a batch of records.
type Writer interface {
	// Write outputs the records in order and returns the number of bytes written.
	Write(records []model.OutageRecord) (int, error)
}

// SerializationError reports a record that could not be encoded.
type SerializationError struct {
	// Index is the position of the record in the batch.
	Index int
	Err   error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize record %d: %v", e.Index, e.Err)
}

// Unwrap returns the encoder error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// New returns the writer for format, writing to output.
// The empty string selects NDJSON.
func New(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatNDJSON:
		return NewNDJSONWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
