package indicator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

const csvTimeLayout = time.RFC3339

// ReadBarsCSV loads a bar sequence from a CSV file with a header row and
// columns: time, open, high, low, close, volume. Rows must already be in
// chronological order; out-of-order rows are rejected so that indicator
// callers can rely on the ordering invariant.
func ReadBarsCSV(path string) ([]Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil // empty file is not an error
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var bars []Bar
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record at line %d: %w", line+1, err)
		}
		line++
		if len(record) < 6 {
			return nil, fmt.Errorf("csv record at line %d has %d columns, want 6", line, len(record))
		}

		ts, err := time.Parse(csvTimeLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp at line %d: %w", line, err)
		}
		fields := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q at line %d: %w", record[i+1], line, err)
			}
			fields[i] = v
		}

		bar := Bar{Time: ts, Open: fields[0], High: fields[1], Low: fields[2], Close: fields[3], Volume: fields[4]}
		if len(bars) > 0 && !bar.Time.After(bars[len(bars)-1].Time) {
			return nil, fmt.Errorf("bar at line %d is not after the previous bar", line)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
