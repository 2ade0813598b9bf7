package atf

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// csvTuningLog appends one row per evaluated configuration to a semicolon-
// separated CSV file: timestamp, the resulting cost (the sentinel maxCost on
// an invalid evaluation), parameter values in declaration order, and the
// get-next, cost-function and report phase durations in milliseconds.
// Grounded on the sweep CSV writers in the example pack, which hold a single
// buffered *csv.Writer open for the run's lifetime and flush on every row.
type csvTuningLog struct {
	file   *os.File
	writer *csv.Writer
	names  []string
}

// DefaultLogFilename returns the default tuning-log filename for the given
// time, e.g. tuning_log_2026-08-02T10-15-30.000.csv.
func DefaultLogFilename(t time.Time) string {
	return fmt.Sprintf("tuning_log_%s.csv", t.Format("2006-01-02T15-04-05.000"))
}

func newCSVTuningLog(path string, names []string) (*csvTuningLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating tuning log %s: %v", ErrInternal, path, err)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'

	header := make([]string, 0, len(names)+5)
	header = append(header, "timestamp", "cost")
	header = append(header, names...)
	header = append(header, "get_next_config_ms", "cost_function_ms", "report_cost_ms")
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: writing tuning log header: %v", ErrInternal, err)
	}
	w.Flush()

	return &csvTuningLog{file: f, writer: w, names: names}, nil
}

// timing carries the three phase durations appended to every CSV row.
type timing struct {
	GetNext, CostFn, Report time.Duration
}

func (l *csvTuningLog) appendRow(ts time.Time, cfg *Configuration, cost float64, t timing) error {
	row := make([]string, 0, len(l.names)+5)
	row = append(row, ts.Format("2006-01-02T15:04:05.000Z07:00"))
	row = append(row, strconv.FormatFloat(cost, 'g', 17, 64))
	for _, name := range l.names {
		tv, ok := cfg.Get(name)
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, tv.Value.String())
	}
	row = append(row,
		strconv.FormatFloat(float64(t.GetNext.Microseconds())/1000, 'f', 3, 64),
		strconv.FormatFloat(float64(t.CostFn.Microseconds())/1000, 'f', 3, 64),
		strconv.FormatFloat(float64(t.Report.Microseconds())/1000, 'f', 3, 64),
	)

	if err := l.writer.Write(row); err != nil {
		return fmt.Errorf("%w: writing tuning log row: %v", ErrInternal, err)
	}
	l.writer.Flush()
	return l.writer.Error()
}

func (l *csvTuningLog) Close() error {
	l.writer.Flush()
	return l.file.Close()
}
