package stonkstats

// CurveSample is one point of the reconstructed equity curve: the account's
// total value at the end of a calendar day, with the deltas that produced it.
type CurveSample struct {
	On   Date
	Live bool // stamped from live quotes rather than that day's close

	Balance     Money // realized balance plus unrealized for the day
	RealizedPnL Money // realized profit attributed to the day
	CashFlow    Money // signed deposits and withdrawals dated the day
	Unrealized  Money // paper profit of positions open on the day

	Tickers []string // positions holding shares on the day
}

// EquityCurve reconstructs the account's value day by day over the range, one
// sample per calendar day with no gaps. A day without activity repeats the
// previous balance; a flat line is the correct signal of no change.
//
// The curve always accumulates from true history: deltas are grouped over the
// full ledger even when the range narrows the displayed window, and the
// balance entering the window comes from everything dated before it. When the
// range reaches today a final live-valued sample is appended.
//
// An empty ledger with an unbounded range yields an empty curve.
func (as *AccountingSystem) EquityCurve(rng Range) []CurveSample {
	first := rng.From
	if first.IsZero() {
		var ok bool
		if first, ok = as.Ledger.FirstEntryDate(); !ok {
			return nil
		}
	}

	today := Today()
	end := rng.To
	withNow := end.IsZero() || !end.Before(today)
	if end.IsZero() || end.After(today) {
		end = today
	}

	realizedBalance := as.Settings.StartingBalance()
	if !rng.From.IsZero() {
		realizedBalance = as.BalanceBefore(rng.From)
	}

	// Day-grouped deltas over the full ledger, not the displayed window.
	realizedByDay := make(map[Date]Money)
	for e := range as.Ledger.Entries() {
		if e.HasRealized() {
			on := e.RealizedDate()
			realizedByDay[on] = realizedByDay[on].Add(e.RealizedPnL)
		}
	}
	flowByDay := make(map[Date]Money)
	for f := range as.Ledger.Flows() {
		flowByDay[f.On] = flowByDay[f.On].Add(f.Signed())
	}

	var curve []CurveSample
	for on := range NewRange(first, end).Days() {
		realizedBalance = realizedBalance.Add(realizedByDay[on]).Add(flowByDay[on])
		unrealized, tickers := as.UnrealizedOn(on)
		curve = append(curve, CurveSample{
			On:          on,
			Balance:     realizedBalance.Add(unrealized),
			RealizedPnL: realizedByDay[on],
			CashFlow:    flowByDay[on],
			Unrealized:  unrealized,
			Tickers:     tickers,
		})
	}

	if withNow && len(curve) > 0 {
		unrealized := as.CurrentUnrealized()
		curve = append(curve, CurveSample{
			On:         today,
			Live:       true,
			Balance:    realizedBalance.Add(unrealized),
			Unrealized: unrealized,
			Tickers:    curve[len(curve)-1].Tickers,
		})
	}
	return curve
}
