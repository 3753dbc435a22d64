package reporting

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/xkilldash9x/verdict-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter defines the interface for writing grading results to an output.
type Reporter interface {
	// Write records one task's summary.
	Write(summary *schemas.TaskSummary) error
	// Close finalizes the report and closes any underlying resources.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format and output path. An empty
// path or "stdout" writes to standard output.
func New(format, outputPath string) (Reporter, error) {
	var writer io.WriteCloser
	if outputPath == "" || outputPath == "stdout" {
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "json":
		return newJSONReporter(writer), nil
	default:
		writer.Close()
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// jsonReporter accumulates summaries and emits a single indented JSON
// document on Close, matching the artifact layout downstream analysis
// notebooks already consume.
type jsonReporter struct {
	writer    io.WriteCloser
	summaries []*schemas.TaskSummary
}

func newJSONReporter(w io.WriteCloser) *jsonReporter {
	return &jsonReporter{writer: w}
}

func (r *jsonReporter) Write(summary *schemas.TaskSummary) error {
	if summary == nil {
		return fmt.Errorf("cannot report a nil summary")
	}
	r.summaries = append(r.summaries, summary)
	return nil
}

func (r *jsonReporter) Close() error {
	defer r.writer.Close()

	data, err := json.MarshalIndent(r.summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := r.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
