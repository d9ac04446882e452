package report

import (
	"fmt"

	"github.com/user/frameseq/pkg/ports"
)

// Writer writes formatted reports to files.
type Writer struct {
	fs        ports.FileSystem
	formatter Formatter
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(fs ports.FileSystem, formatter Formatter) *Writer {
	return &Writer{
		fs:        fs,
		formatter: formatter,
	}
}

// Write formats the report and writes it to path.
func (w *Writer) Write(path string, r *Report) error {
	content := w.formatter.Format(r)
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
