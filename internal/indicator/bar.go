// Package indicator computes technical indicators over ordered OHLCV bars.
//
// Every function is pure: identical input yields identical output, and no
// function holds state between calls. Callers must supply bars oldest to
// newest; the package never sorts. When a sequence is shorter than an
// indicator's warm-up length the function reports ok=false, which is a
// normal outcome for streaming data, not an error.
package indicator

import "time"

// Bar is a single OHLCV sample for a fixed time interval.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes extracts the close series from a bar sequence.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
