package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"flight-arrival-regrouper/internal/model"
	"flight-arrival-regrouper/pkg/utils"
)

const fileExt = ".json"

// ArrivalWriter writes one arrival document per destination into a directory.
type ArrivalWriter struct {
	dir    string
	suffix string
	indent int
}

// NewArrivalWriter creates a writer for dir. Files are named
// <code><suffix>.json and indented with indent spaces (0 for compact output).
func NewArrivalWriter(dir, suffix string, indent int) *ArrivalWriter {
	return &ArrivalWriter{
		dir:    dir,
		suffix: suffix,
		indent: indent,
	}
}

// Prepare creates the output directory and its parents.
func (w *ArrivalWriter) Prepare() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Path returns the file path used for code.
func (w *ArrivalWriter) Path(code string) string {
	return utils.ArrivalFilePath(w.dir, code, w.suffix, fileExt)
}

// Write encodes records for code and writes them, returning the file path.
func (w *ArrivalWriter) Write(code string, records []model.FlattenedRecord) (string, error) {
	if !utils.IsSafeFileComponent(code) {
		return "", fmt.Errorf("refusing to write destination %q", code)
	}

	data, err := w.encode(model.ArrivalFile{FlightsData: records})
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", code, err)
	}

	path := w.Path(code)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// encode marshals compactly and re-indents with encoding/json, which keeps
// empty objects as {} where the jsoniter indenter leaves blank lines.
func (w *ArrivalWriter) encode(doc model.ArrivalFile) ([]byte, error) {
	data, err := model.JSON.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if w.indent <= 0 {
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data) * 2)
	if err := json.Indent(&buf, data, "", strings.Repeat(" ", w.indent)); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
