package stonkstats

import "math"

// Stats is a snapshot of account performance over a date range.
//
// WinRate and Sharpe are pointers because they can be undefined: no closed
// trades, or no variance in returns. Undefined is not zero, so it is not
// reported as zero.
type Stats struct {
	Range Range

	OpenPositions int
	ClosedTrades  int
	Wins, Losses  int
	WinRate       *Percent

	RealizedPnL      Money
	UnrealizedChange Money
	TotalPnL         Money
	NetCashFlow      Money
	OpenRisk         Money

	Sharpe *float64

	StartingBalance   Money
	RangeStartBalance Money
	CurrentAccount    Money

	TradingGrowth Percent
	TotalGrowth   Percent
}

// ComputeStats derives range-scoped performance metrics from the ledger
// snapshot. Counts, win rate, Sharpe and realized profit are scoped to trades
// opened inside the range; a position that banked money by trimming counts as
// a closed trade even while it still runs. CurrentAccount and OpenRisk
// describe the account as it stands and ignore the range entirely.
func (as *AccountingSystem) ComputeStats(rng Range) Stats {
	s := Stats{
		Range:           rng,
		StartingBalance: as.Settings.StartingBalance(),
		CurrentAccount:  as.CurrentAccount(),
		OpenRisk:        as.OpenRisk(),
		NetCashFlow:     as.Ledger.NetCashFlow(rng),
		RealizedPnL:     M(0, as.Settings.Currency),
	}

	filtered := as.Ledger.FilterByRange(rng)
	var returns []float64
	for e := range filtered.Entries() {
		if e.Status == StatusOpen {
			s.OpenPositions++
			continue
		}
		s.ClosedTrades++
		s.RealizedPnL = s.RealizedPnL.Add(e.RealizedPnL)
		// a breakeven trade is neither a win nor a loss
		switch {
		case e.RealizedPnL.IsPositive():
			s.Wins++
		case e.RealizedPnL.IsNegative():
			s.Losses++
		}
		if size := e.PositionSize(); !size.IsZero() {
			returns = append(returns, e.RealizedPnL.AsFloat()/size.AsFloat()*100)
		}
	}

	if s.ClosedTrades > 0 {
		rate := Percent(float64(s.Wins) / float64(s.ClosedTrades) * 100)
		s.WinRate = &rate
	}
	s.Sharpe = sharpeRatio(returns)

	s.UnrealizedChange = as.unrealizedChange(rng, Today())
	s.TotalPnL = s.RealizedPnL.Add(s.UnrealizedChange)

	s.RangeStartBalance = s.StartingBalance
	if !rng.From.IsZero() {
		s.RangeStartBalance = as.BalanceBefore(rng.From)
	}
	if base := s.RangeStartBalance.AsFloat(); base > 0 {
		s.TradingGrowth = Percent(s.TotalPnL.AsFloat() / base * 100)
		s.TotalGrowth = Percent(s.TotalPnL.Add(s.NetCashFlow).AsFloat() / base * 100)
	}
	return s
}

// unrealizedChange isolates the change in paper profit attributable to the
// window: unrealized at the window's end minus unrealized just before its
// start. With no window it is the current total unrealized profit.
func (as *AccountingSystem) unrealizedChange(rng Range, today Date) Money {
	if rng.IsZero() {
		return as.CurrentUnrealized()
	}
	end := as.CurrentUnrealized()
	if !rng.To.IsZero() && rng.To.Before(today) {
		end, _ = as.UnrealizedOn(rng.To)
	}
	start := M(0, as.Settings.Currency)
	if !rng.From.IsZero() {
		start, _ = as.UnrealizedOn(rng.From.Add(-1))
	}
	return end.Sub(start)
}

// sharpeRatio returns mean over population standard deviation of per-trade
// returns, or nil when fewer than two returns exist or they have no variance.
func sharpeRatio(returns []float64) *float64 {
	if len(returns) < 2 {
		return nil
	}
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return nil
	}
	sharpe := mean / stdDev
	return &sharpe
}
