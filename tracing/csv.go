package tracing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter stores records in a CSV file.
type CSVTraceWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer

	records    []Record
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter. The file is path.csv; an
// empty path gets a generated name.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// FileName returns the name of the CSV file.
func (t *CSVTraceWriter) FileName() string {
	return t.path + ".csv"
}

// Init creates the tracing csv file. It fails if the file already exists.
func (t *CSVTraceWriter) Init() error {
	if t.path == "" {
		t.path = "eventkernel_trace_" + xid.New().String()
	}

	if _, err := os.Stat(t.FileName()); err == nil {
		return fmt.Errorf("tracing: file %s already exists", t.FileName())
	}

	file, err := os.Create(t.FileName())
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	writer := csv.NewWriter(file)

	err = writer.Write(
		[]string{"ID", "Pos", "Domain", "Item", "Detail", "Tick"})
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("tracing: %w", err)
	}

	t.file = file
	t.writer = writer

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			logrus.WithError(err).Error("closing csv trace")
		}
	})

	return nil
}

// Write buffers a record.
func (t *CSVTraceWriter) Write(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.bufferSize {
		if err := t.Flush(); err != nil {
			panic(err)
		}
	}
}

// Flush writes the buffered records to the file.
func (t *CSVTraceWriter) Flush() error {
	for _, r := range t.records {
		err := t.writer.Write([]string{
			r.ID,
			r.Pos,
			r.Domain,
			r.Item,
			r.Detail,
			strconv.FormatInt(r.Tick, 10),
		})
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
	}

	t.records = nil
	t.writer.Flush()

	return t.writer.Error()
}

// Close flushes and closes the file. Closing twice does nothing.
func (t *CSVTraceWriter) Close() error {
	if t.file == nil {
		return nil
	}

	if err := t.Flush(); err != nil {
		return err
	}

	err := t.file.Close()
	t.file = nil

	return err
}
