package report

import "io"

// Writer renders reports to an output destination.
type Writer interface {
	// Write renders one report and returns the number of bytes written.
	Write(report *Report) (int, error)

	// WriteAll renders several reports as one document.
	WriteAll(reports []*Report) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeLayout is used for timestamps in human-readable reports.
const timeLayout = "2006-01-02 15:04:05 MST"
