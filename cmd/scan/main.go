// Package main computes the indicator set over a CSV bar file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/trade-journal-bot/internal/csvwriter"
	"github.com/your-org/trade-journal-bot/internal/indicator"
	"github.com/your-org/trade-journal-bot/pkg/logger"
)

func main() {
	input := flag.String("input", "", "Path to the OHLCV CSV file")
	output := flag.String("output", "", "Optional CSV output path; JSON goes to stdout when empty")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger.SetGlobalLogLevel(*logLevel)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: scan -input bars.csv [-output snapshot.csv]")
		os.Exit(1)
	}

	bars, err := indicator.ReadBarsCSV(*input)
	if err != nil {
		logger.Fatalf("Failed to read bars: %v", err)
	}
	logger.Infof("Loaded %d bars from %s", len(bars), *input)

	result := indicator.Compute(bars)
	if !result.Warmup.CoreReady {
		logger.Warnf("Core indicators not warmed up yet, missing: %s",
			strings.Join(result.Warmup.Missing, ", "))
	}

	if *output == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatalf("Failed to encode result: %v", err)
		}
		return
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	writer, err := csvwriter.NewWriter(*output, zapLogger)
	if err != nil {
		logger.Fatalf("Failed to create output writer: %v", err)
	}
	defer writer.Close()

	if err := writer.WriteAll(
		[]string{"indicator", "value"},
		snapshotRows(result),
	); err != nil {
		logger.Fatalf("Failed to write snapshot: %v", err)
	}
	logger.Infof("Snapshot written to %s", *output)
}

// snapshotRows flattens the sparse result into name/value rows. Missing
// indicators are omitted rather than written as zeros.
func snapshotRows(r indicator.Result) [][]string {
	var rows [][]string
	add := func(name string, v *float64) {
		if v != nil {
			rows = append(rows, []string{name, formatValue(*v)})
		}
	}

	add("ema8", r.EMA8)
	add("ema21", r.EMA21)
	add("ema50", r.EMA50)
	add("ema200", r.EMA200)
	add("sma200", r.SMA200)
	add("rsi14", r.RSI14)
	if r.MACD != nil {
		rows = append(rows,
			[]string{"macd_line", formatValue(r.MACD.Line)},
			[]string{"macd_signal", formatValue(r.MACD.Signal)},
			[]string{"macd_histogram", formatValue(r.MACD.Histogram)},
		)
	}
	add("atr14", r.ATR14)
	add("adx14", r.ADX14)
	if r.Bollinger != nil {
		rows = append(rows,
			[]string{"bb_upper", formatValue(r.Bollinger.Upper)},
			[]string{"bb_middle", formatValue(r.Bollinger.Middle)},
			[]string{"bb_lower", formatValue(r.Bollinger.Lower)},
		)
	}
	if r.Stochastic != nil {
		rows = append(rows,
			[]string{"stoch_k", formatValue(r.Stochastic.K)},
			[]string{"stoch_d", formatValue(r.Stochastic.D)},
		)
	}
	add("cci20", r.CCI20)
	add("obv", r.OBV)
	add("vwap20", r.VWAP20)
	add("session_vwap", r.SessionVWAP)
	if r.Squeeze != nil {
		rows = append(rows,
			[]string{"squeeze_on", strconv.FormatBool(r.Squeeze.InSqueeze)},
			[]string{"squeeze_strength", formatValue(r.Squeeze.Strength)},
		)
	}
	return rows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
