package stonkstats

import (
	"testing"
	"time"
)

// setupAccountTest creates a 10k account with one closed trade and one open
// trade carrying a trim.
func setupAccountTest(t *testing.T) *AccountingSystem {
	t.Helper()

	ledger := NewLedger("USD")
	ledger.Append(closedTrade("t1", "AAPL", D(2025, time.March, 1), D(2025, time.March, 5), 200, 190, 10, 500))

	open := openTrade("t2", "NVDA", D(2025, time.March, 3), 50, 45, 100)
	open.Status = StatusTrimmed
	open.Trims = []Trim{{On: D(2025, time.March, 8), Shares: Q(40)}}
	open.RealizedPnL = USD(160) // banked 4 per share on 40 shares
	open.Remaining = Q(60)
	ledger.Append(open)

	ledger.AppendFlow(CashFlow{ID: "f1", On: D(2025, time.March, 7), Type: Deposit, Amount: USD(2000)})

	market := NewMarketData("USD")
	market.SetClose("NVDA", D(2025, time.March, 3), 50)
	market.SetClose("NVDA", D(2025, time.March, 10), 55)
	market.SetLive("NVDA", 58)

	return testSystem(t, ledger, market, 10000)
}

func TestBalanceBefore(t *testing.T) {
	as := setupAccountTest(t)

	testCases := []struct {
		name string
		on   Date
		want float64
	}{
		{name: "before everything", on: D(2025, time.March, 1), want: 10000},
		// realized profit lands on its own day, not in that day's opening balance
		{name: "on the close day", on: D(2025, time.March, 5), want: 10000},
		{name: "day after the close", on: D(2025, time.March, 6), want: 10500},
		{name: "on the deposit day", on: D(2025, time.March, 7), want: 10500},
		{name: "day after the deposit", on: D(2025, time.March, 8), want: 12500},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := as.BalanceBefore(tc.on); !got.Equal(USD(tc.want)) {
				t.Errorf("BalanceBefore(%v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestUnrealizedOn(t *testing.T) {
	as := setupAccountTest(t)

	// before the trim, all 100 shares count at that day's close
	got, tickers := as.UnrealizedOn(D(2025, time.March, 3))
	if !got.Equal(USD(0)) { // close 50, entry 50
		t.Errorf("unrealized on entry day = %v, want 0", got)
	}
	if len(tickers) != 1 || tickers[0] != "NVDA" {
		t.Errorf("active tickers = %v, want [NVDA]", tickers)
	}

	// after the trim, only 60 shares count, at the 55 close
	got, _ = as.UnrealizedOn(D(2025, time.March, 10))
	if !got.Equal(USD(300)) { // (55-50)*60
		t.Errorf("unrealized after trim = %v, want 300", got)
	}
}

func TestUnrealizedOnMissingPrice(t *testing.T) {
	ledger := NewLedger("USD")
	ledger.Append(openTrade("t1", "ZZZZ", D(2025, time.March, 1), 50, 45, 100))
	as := testSystem(t, ledger, NewMarketData("USD"), 10000)

	// no resolvable price excludes the position instead of pricing it at zero
	got, tickers := as.UnrealizedOn(D(2025, time.March, 5))
	if !got.IsZero() {
		t.Errorf("unrealized with no price = %v, want 0", got)
	}
	if len(tickers) != 1 {
		t.Errorf("the position is still active, tickers = %v", tickers)
	}
}

func TestCurrentUnrealized(t *testing.T) {
	as := setupAccountTest(t)
	// live quote 58 on the 60 remaining shares
	if got := as.CurrentUnrealized(); !got.Equal(USD(480)) {
		t.Errorf("CurrentUnrealized = %v, want 480", got)
	}
}

func TestCurrentAccount(t *testing.T) {
	as := setupAccountTest(t)
	// 10000 + 500 + 160 realized + 2000 deposit + 480 live unrealized
	if got := as.CurrentAccount(); !got.Equal(USD(13140)) {
		t.Errorf("CurrentAccount = %v, want 13140", got)
	}
}

func TestOpenRisk(t *testing.T) {
	as := setupAccountTest(t)
	// 60 shares * (50-45) = 300 at risk, minus 160 already banked
	if got := as.OpenRisk(); !got.Equal(USD(140)) {
		t.Errorf("OpenRisk = %v, want 140", got)
	}
}

func TestOpenRiskFlooredAtZero(t *testing.T) {
	ledger := NewLedger("USD")
	e := openTrade("t1", "NVDA", D(2025, time.March, 1), 50, 45, 100)
	e.Status = StatusTrimmed
	e.Trims = []Trim{{On: D(2025, time.March, 5), Shares: Q(80)}}
	e.RealizedPnL = USD(800) // banked more than the remaining risk
	e.Remaining = Q(20)
	ledger.Append(e)
	as := testSystem(t, ledger, NewMarketData("USD"), 10000)

	// 20*(50-45)=100 at risk, 800 banked: the position cannot show negative risk
	if got := as.OpenRisk(); !got.IsZero() {
		t.Errorf("OpenRisk = %v, want 0", got)
	}
}
