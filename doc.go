// Package stonkstats reconstructs a trading account's historical equity curve
// and derives performance statistics from a journal of trades, a cash-flow
// log, and price observations.
//
// The core functionalities include:
//   - Journal Model: an immutable snapshot of trade lifecycle records
//     (entries, partial trims, closes) and deposits/withdrawals, decoded from
//     a human-readable JSONL ledger.
//   - Price Resolution: a tiered policy that prefers fresh historical prices,
//     falls back to live quotes when history is stale, and degrades
//     gracefully when no price can be found at all.
//   - Accounting: day-accurate balance reconstruction combining realized
//     P&L, cash flow, and unrealized P&L of positions still held, including
//     positions partially trimmed before the valuation date.
//   - Equity Curve: one balance sample per calendar day over an arbitrary
//     window, plus a final live-priced "now" sample.
//   - Statistics: range-scoped win rate, simplified Sharpe ratio, growth
//     percentages and open risk, computed against range-relative starting
//     balances.
//
// This package serves as the foundational logic for the `stonk` command-line
// tool. All computations are pure functions of their input snapshots: the
// package never mutates the journal, the cash-flow log, or the settings.
package stonkstats
