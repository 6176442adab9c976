package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/mepower/internal/model"
)

// NDJSONWriter writes one compact JSON object per record, each followed by
// a newline. There is no enclosing array and no summary line.
type NDJSONWriter struct {
	output io.Writer
}

// NewNDJSONWriter creates an NDJSONWriter that writes to output.
func NewNDJSONWriter(output io.Writer) *NDJSONWriter {
	return &NDJSONWriter{output: output}
}

// Write encodes every record before writing anything, so an encoding
// failure leaves the output untouched.
func (w *NDJSONWriter) Write(records []model.OutageRecord) (int, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return 0, &SerializationError{Index: i, Err: err}
		}
	}

	return w.output.Write(buf.Bytes())
}
