package renderer

import (
	"strings"
	"testing"
	"time"

	stonkstats "github.com/kristopherluo/StonkStats.io"
)

func TestStatsMarkdown(t *testing.T) {
	rate := stonkstats.Percent(100)
	sharpe := 1.5
	s := stonkstats.Stats{
		Range:             stonkstats.NewRange(stonkstats.NewDate(2025, time.March, 1), stonkstats.NewDate(2025, time.March, 10)),
		OpenPositions:     1,
		ClosedTrades:      1,
		Wins:              1,
		WinRate:           &rate,
		RealizedPnL:       stonkstats.USD(500),
		UnrealizedChange:  stonkstats.USD(500),
		TotalPnL:          stonkstats.USD(1000),
		NetCashFlow:       stonkstats.USD(2000),
		Sharpe:            &sharpe,
		StartingBalance:   stonkstats.USD(10000),
		RangeStartBalance: stonkstats.USD(10000),
		CurrentAccount:    stonkstats.USD(13000),
		TradingGrowth:     stonkstats.Percent(10),
		TotalGrowth:       stonkstats.Percent(30),
	}

	out := StatsMarkdown(s)
	for _, want := range []string{
		"# Performance",
		"## Account",
		"## Profit & Loss",
		"## Trades",
		"$13,000.00",
		"+$500.00",
		"+$2,000.00",
		"1.50",
		"100.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestStatsMarkdownUndefinedMetrics(t *testing.T) {
	out := StatsMarkdown(stonkstats.Stats{})
	if strings.Count(out, "n/a") != 2 {
		t.Errorf("undefined win rate and sharpe should both render as n/a:\n%s", out)
	}
	if strings.Contains(out, "Range:") {
		t.Errorf("unbounded stats should not print a range line:\n%s", out)
	}
}

func TestCurveMarkdown(t *testing.T) {
	curve := []stonkstats.CurveSample{
		{
			On:          stonkstats.NewDate(2025, time.March, 5),
			Balance:     stonkstats.USD(10500),
			RealizedPnL: stonkstats.USD(500),
			CashFlow:    stonkstats.USD(0),
			Unrealized:  stonkstats.USD(0),
		},
		{
			On:         stonkstats.Today(),
			Live:       true,
			Balance:    stonkstats.USD(11000),
			Unrealized: stonkstats.USD(500),
		},
	}

	out := CurveMarkdown(curve)
	for _, want := range []string{"# Equity Curve", "2025-03-05", "$10,500.00", "| now", "$11,000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("curve report missing %q:\n%s", want, out)
		}
	}
}

func TestCurveMarkdownEmpty(t *testing.T) {
	out := CurveMarkdown(nil)
	if !strings.Contains(out, "No journal entries yet.") {
		t.Errorf("empty curve report:\n%s", out)
	}
}
