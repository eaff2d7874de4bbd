// Package renderer turns computed statistics and equity curves into markdown
// reports and chart images.
package renderer

import (
	"bytes"
	"fmt"

	stonkstats "github.com/kristopherluo/StonkStats.io"
	md "github.com/nao1215/markdown"
)

// StatsMarkdown renders a stats snapshot to a markdown string.
func StatsMarkdown(s stonkstats.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance")
	if !s.Range.IsZero() {
		doc.PlainTextf("Range: %s", s.Range)
	}

	doc.H2("Account")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Current Account"), md.Bold(s.CurrentAccount.String())},
		Rows: [][]string{
			{"Starting Balance", s.StartingBalance.String()},
			{"Range-Start Balance", s.RangeStartBalance.String()},
			{"Net Cash Flow", s.NetCashFlow.SignedString()},
			{"Open Risk", s.OpenRisk.String()},
		},
	})

	doc.H2("Profit & Loss")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total P&L"), md.Bold(s.TotalPnL.SignedString())},
		Rows: [][]string{
			{"Realized P&L", s.RealizedPnL.SignedString()},
			{"Unrealized Change", s.UnrealizedChange.SignedString()},
			{"Trading Growth", s.TradingGrowth.SignedString()},
			{"Total Growth", s.TotalGrowth.SignedString()},
		},
	})

	doc.H2("Trades")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Open Positions", fmt.Sprintf("%d", s.OpenPositions)},
			{"Closed Trades", fmt.Sprintf("%d", s.ClosedTrades)},
			{"Wins / Losses", fmt.Sprintf("%d / %d", s.Wins, s.Losses)},
			{"Win Rate", orNA(s.WinRate)},
			{"Sharpe", sharpeString(s.Sharpe)},
		},
	})

	return doc.String()
}

// CurveMarkdown renders an equity curve to a markdown table, one row per day.
func CurveMarkdown(curve []stonkstats.CurveSample) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Equity Curve")
	if len(curve) == 0 {
		doc.PlainText("No journal entries yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Balance", "Realized", "Cash Flow", "Unrealized"},
	}
	for _, c := range curve {
		day := c.On.String()
		if c.Live {
			day = "now"
		}
		table.Rows = append(table.Rows, []string{
			day,
			c.Balance.String(),
			c.RealizedPnL.SignedString(),
			c.CashFlow.SignedString(),
			c.Unrealized.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

func orNA(p *stonkstats.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.String()
}

func sharpeString(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *p)
}
