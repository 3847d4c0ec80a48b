// Package report builds performance summaries from closed positions.
package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/your-org/trade-journal-bot/internal/journal"
	"github.com/your-org/trade-journal-bot/internal/pnl"
)

// Report holds the results of a closed-position analysis.
type Report struct {
	StartDate               time.Time       `json:"start_date"`
	EndDate                 time.Time       `json:"end_date"`
	TotalPositions          int             `json:"total_positions"`
	WinningPositions        int             `json:"winning_positions"`
	LosingPositions         int             `json:"losing_positions"`
	BreakevenPositions      int             `json:"breakeven_positions"`
	WinRate                 float64         `json:"win_rate"`
	LongWinningPositions    int             `json:"long_winning_positions"`
	LongLosingPositions     int             `json:"long_losing_positions"`
	LongWinRate             float64         `json:"long_win_rate"`
	ShortWinningPositions   int             `json:"short_winning_positions"`
	ShortLosingPositions    int             `json:"short_losing_positions"`
	ShortWinRate            float64         `json:"short_win_rate"`
	TotalPnL                decimal.Decimal `json:"total_pnl"`
	AverageProfit           decimal.Decimal `json:"average_profit"`
	AverageLoss             decimal.Decimal `json:"average_loss"`
	RiskRewardRatio         float64         `json:"risk_reward_ratio"`
	ProfitFactor            float64         `json:"profit_factor"`
	MaxDrawdown             decimal.Decimal `json:"max_drawdown"`
	RecoveryFactor          float64         `json:"recovery_factor"`
	SharpeRatio             float64         `json:"sharpe_ratio"`
	SortinoRatio            float64         `json:"sortino_ratio"`
	MaxConsecutiveWins      int             `json:"max_consecutive_wins"`
	MaxConsecutiveLosses    int             `json:"max_consecutive_losses"`
	AverageRMultiple        float64         `json:"average_r_multiple"`
	AverageHoldingDays      float64         `json:"average_holding_days"`
	ClosedByStop            int             `json:"closed_by_stop"`
	ClosedByTarget          int             `json:"closed_by_target"`
	ClosedByTime            int             `json:"closed_by_time"`
}

// Service handles report generation.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new report service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Analyze summarizes a set of closed positions. Positions still open or
// missing exit data are skipped rather than failing the whole report.
func Analyze(positions []journal.Position) (Report, error) {
	var closed []journal.Position
	for _, p := range positions {
		if p.IsOpen || p.ExitPrice == nil || p.ExitDate == nil {
			continue
		}
		closed = append(closed, p)
	}
	if len(closed) == 0 {
		return Report{}, fmt.Errorf("no closed positions to analyze")
	}

	sort.Slice(closed, func(i, j int) bool {
		return closed[i].ExitDate.Before(*closed[j].ExitDate)
	})

	var (
		totalPnL, totalProfit, totalLoss       decimal.Decimal
		pnlHistory                             []decimal.Decimal
		rMultiples, holdingDays                []float64
		longWins, longLosses                   int
		shortWins, shortLosses                 int
		breakeven                              int
		byStop, byTarget, byTime               int
		streakWins, streakLosses               int
		maxStreakWins, maxStreakLosses         int
	)

	for _, p := range closed {
		risk := p.RiskAmount
		if risk == nil && p.StopLoss != nil {
			r := p.EntryPrice.Sub(*p.StopLoss).Abs().Mul(p.Quantity)
			risk = &r
		}
		m := pnl.Realized(p.IsLong(), p.EntryPrice, *p.ExitPrice, p.Quantity, risk)

		totalPnL = totalPnL.Add(m.PL)
		pnlHistory = append(pnlHistory, m.PL)
		holdingDays = append(holdingDays, p.ExitDate.Sub(p.TradeDate).Hours()/24)
		if m.RMultiple != nil {
			rMultiples = append(rMultiples, m.RMultiple.InexactFloat64())
		}

		switch m.Outcome {
		case pnl.OutcomeWin:
			totalProfit = totalProfit.Add(m.PL)
			if p.IsLong() {
				longWins++
			} else {
				shortWins++
			}
			streakWins++
			streakLosses = 0
			if streakWins > maxStreakWins {
				maxStreakWins = streakWins
			}
		case pnl.OutcomeLoss:
			totalLoss = totalLoss.Add(m.PL)
			if p.IsLong() {
				longLosses++
			} else {
				shortLosses++
			}
			streakLosses++
			streakWins = 0
			if streakLosses > maxStreakLosses {
				maxStreakLosses = streakLosses
			}
		default:
			breakeven++
		}

		if p.ExitReason != nil {
			switch *p.ExitReason {
			case journal.ExitReasonStopLoss:
				byStop++
			case journal.ExitReasonTarget:
				byTarget++
			case journal.ExitReasonTime:
				byTime++
			}
		}
	}

	wins := longWins + shortWins
	losses := longLosses + shortLosses

	winRate := 0.0
	if wins+losses > 0 {
		winRate = float64(wins) / float64(wins+losses) * 100
	}
	longWinRate := 0.0
	if longWins+longLosses > 0 {
		longWinRate = float64(longWins) / float64(longWins+longLosses) * 100
	}
	shortWinRate := 0.0
	if shortWins+shortLosses > 0 {
		shortWinRate = float64(shortWins) / float64(shortWins+shortLosses) * 100
	}

	avgProfit := decimal.Zero
	if wins > 0 {
		avgProfit = totalProfit.Div(decimal.NewFromInt(int64(wins)))
	}
	avgLoss := decimal.Zero
	if losses > 0 {
		avgLoss = totalLoss.Div(decimal.NewFromInt(int64(losses)))
	}

	riskRewardRatio := 0.0
	if !avgLoss.IsZero() {
		riskRewardRatio = avgProfit.Div(avgLoss.Abs()).InexactFloat64()
	}
	profitFactor := 0.0
	if totalLoss.IsNegative() {
		profitFactor = totalProfit.Div(totalLoss.Abs()).InexactFloat64()
	}

	equityCurve := make([]decimal.Decimal, len(pnlHistory)+1)
	equityCurve[0] = decimal.Zero
	for i, p := range pnlHistory {
		equityCurve[i+1] = equityCurve[i].Add(p)
	}
	maxDrawdown := decimal.Zero
	peak := decimal.Zero
	for _, equity := range equityCurve {
		if equity.GreaterThan(peak) {
			peak = equity
		}
		drawdown := peak.Sub(equity)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}
	recoveryFactor := 0.0
	if maxDrawdown.IsPositive() {
		recoveryFactor = totalPnL.Div(maxDrawdown).InexactFloat64()
	}

	pnlFloats := make([]float64, len(pnlHistory))
	for i, p := range pnlHistory {
		pnlFloats[i] = p.InexactFloat64()
	}

	return Report{
		StartDate:             closed[0].TradeDate,
		EndDate:               *closed[len(closed)-1].ExitDate,
		TotalPositions:        len(closed),
		WinningPositions:      wins,
		LosingPositions:       losses,
		BreakevenPositions:    breakeven,
		WinRate:               winRate,
		LongWinningPositions:  longWins,
		LongLosingPositions:   longLosses,
		LongWinRate:           longWinRate,
		ShortWinningPositions: shortWins,
		ShortLosingPositions:  shortLosses,
		ShortWinRate:          shortWinRate,
		TotalPnL:              totalPnL,
		AverageProfit:         avgProfit,
		AverageLoss:           avgLoss,
		RiskRewardRatio:       riskRewardRatio,
		ProfitFactor:          profitFactor,
		MaxDrawdown:           maxDrawdown,
		RecoveryFactor:        recoveryFactor,
		SharpeRatio:           calculateSharpeRatio(pnlFloats, 0.0),
		SortinoRatio:          calculateSortinoRatio(pnlFloats, 0.0),
		MaxConsecutiveWins:    maxStreakWins,
		MaxConsecutiveLosses:  maxStreakLosses,
		AverageRMultiple:      mean(rMultiples),
		AverageHoldingDays:    mean(holdingDays),
		ClosedByStop:          byStop,
		ClosedByTarget:        byTarget,
		ClosedByTime:          byTime,
	}, nil
}

// Save persists the report snapshot.
func (s *Service) Save(ctx context.Context, report Report) error {
	query := `
        INSERT INTO performance_reports (
            time, start_date, end_date, total_positions, winning_positions,
            losing_positions, breakeven_positions, win_rate,
            long_winning_positions, long_losing_positions, long_win_rate,
            short_winning_positions, short_losing_positions, short_win_rate,
            total_pnl, average_profit, average_loss, risk_reward_ratio,
            profit_factor, max_drawdown, recovery_factor, sharpe_ratio,
            sortino_ratio, max_consecutive_wins, max_consecutive_losses,
            average_r_multiple, average_holding_days,
            closed_by_stop, closed_by_target, closed_by_time
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
            $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30
        );
    `
	_, err := s.db.Exec(ctx, query,
		time.Now(), report.StartDate, report.EndDate, report.TotalPositions, report.WinningPositions,
		report.LosingPositions, report.BreakevenPositions, report.WinRate,
		report.LongWinningPositions, report.LongLosingPositions, report.LongWinRate,
		report.ShortWinningPositions, report.ShortLosingPositions, report.ShortWinRate,
		report.TotalPnL, report.AverageProfit, report.AverageLoss, report.RiskRewardRatio,
		report.ProfitFactor, report.MaxDrawdown, report.RecoveryFactor, report.SharpeRatio,
		report.SortinoRatio, report.MaxConsecutiveWins, report.MaxConsecutiveLosses,
		report.AverageRMultiple, report.AverageHoldingDays,
		report.ClosedByStop, report.ClosedByTarget, report.ClosedByTime,
	)
	return err
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateStandardDeviation computes the population standard deviation.
func calculateStandardDeviation(returns []float64, mean float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	variance := 0.0
	for _, r := range returns {
		variance += math.Pow(r-mean, 2)
	}
	return math.Sqrt(variance / float64(len(returns)))
}

// calculateDownsideDeviation computes deviation of returns below target.
func calculateDownsideDeviation(returns []float64, target float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	downsideVariance := 0.0
	downsideCount := 0
	for _, r := range returns {
		if r < target {
			downsideVariance += math.Pow(r-target, 2)
			downsideCount++
		}
	}
	if downsideCount == 0 {
		return 0.0
	}
	return math.Sqrt(downsideVariance / float64(downsideCount))
}

func calculateSharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	m := mean(returns)
	stdDev := calculateStandardDeviation(returns, m)
	if stdDev == 0 {
		return 0.0
	}
	return (m - riskFreeRate) / stdDev
}

func calculateSortinoRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	m := mean(returns)
	downsideDev := calculateDownsideDeviation(returns, 0)
	if downsideDev == 0 {
		return 0.0
	}
	return (m - riskFreeRate) / downsideDev
}
