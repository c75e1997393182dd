package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/granular/internal/sim"
)

// WriteRecordsCSV writes every record with a header row.
func WriteRecordsCSV(w io.Writer, records []sim.Record) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// RecordStream appends records to w one batch at a time, writing the
// header only before the first batch.
type RecordStream struct {
	w             io.Writer
	headerWritten bool
	rows          int
}

func NewRecordStream(w io.Writer) *RecordStream {
	return &RecordStream{w: w}
}

func (s *RecordStream) Write(records ...sim.Record) error {
	if len(records) == 0 {
		return nil
	}
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.w); err != nil {
			return fmt.Errorf("writing records: %w", err)
		}
		s.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, s.w); err != nil {
			return fmt.Errorf("writing records: %w", err)
		}
	}
	s.rows += len(records)
	return nil
}

// Rows returns the number of data rows written so far.
func (s *RecordStream) Rows() int { return s.rows }
