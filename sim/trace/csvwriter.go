package trace

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVWriter stores trace records into a CSV file.
type CSVWriter struct {
	path string
	file *os.File

	records    []Record
	bufferSize int
	err        error // first write error
}

// NewCSVWriter creates a new CSVWriter. An empty path picks a unique
// file name at Init.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the file the writer writes to. It is only meaningful after Init.
func (w *CSVWriter) Path() string {
	return w.path
}

// Init creates the trace file and writes the header. It refuses to
// overwrite an existing file. Pending records are flushed at exit.
func (w *CSVWriter) Init() error {
	if w.path == "" {
		w.path = "cpusched_trace_" + xid.New().String() + ".csv"
	}

	if _, err := os.Stat(w.path); err == nil {
		return fmt.Errorf("trace file %s already exists", w.path)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}

	if _, err := fmt.Fprintf(file, "RunID, Clock, PID, Kind, Slice, Wakeup\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing trace header: %w", err)
	}

	w.file = file

	atexit.Register(func() {
		_ = w.Close()
	})
	return nil
}

// Write buffers a record and flushes when the buffer fills. A failed
// flush is kept and reported by Flush and Close.
func (w *CSVWriter) Write(r Record) {
	w.records = append(w.records, r)
	if len(w.records) >= w.bufferSize {
		_ = w.Flush()
	}
}

// WriteTrace buffers every record of a trace.
func (w *CSVWriter) WriteTrace(st *SimulationTrace) {
	if st == nil {
		return
	}
	for _, r := range st.Records {
		w.Write(r)
	}
}

// Flush writes buffered records to the file and returns the first write
// error seen so far.
func (w *CSVWriter) Flush() error {
	if w.file == nil {
		return w.err
	}
	for _, r := range w.records {
		if w.err != nil {
			break
		}
		_, w.err = fmt.Fprintf(w.file, "%s, %d, %d, %s, %d, %d\n",
			r.RunID,
			r.Clock,
			r.PID,
			r.Kind,
			r.Slice,
			r.Wakeup,
		)
	}

	w.records = nil
	return w.err
}

// Close flushes and closes the file. Calling it more than once is safe.
// It returns the first write error, if any, before the close error.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return w.err
	}
	flushErr := w.Flush()
	closeErr := w.file.Close()
	w.file = nil
	if flushErr != nil {
		return fmt.Errorf("writing trace file %s: %w", w.path, flushErr)
	}
	return closeErr
}
