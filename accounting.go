package stonkstats

// AccountingSystem reconstructs account value from a ledger snapshot, a price
// resolver and the account settings. It holds no mutable state of its own;
// every method recomputes from the snapshot it was built over.
type AccountingSystem struct {
	Ledger   *Ledger
	Resolver *PriceResolver
	Settings Settings
}

// NewAccountingSystem binds a ledger snapshot, a price source and settings
// into one computation context.
func NewAccountingSystem(ledger *Ledger, source PriceSource, settings Settings) *AccountingSystem {
	return &AccountingSystem{
		Ledger:   ledger,
		Resolver: NewPriceResolver(source, settings),
		Settings: settings,
	}
}

// BalanceBefore returns the account's realized balance at the start of the
// given day: starting balance plus realized profit and cash flow dated
// strictly before it. Events landing exactly on the day belong to that day's
// own delta, not to its opening balance.
func (as *AccountingSystem) BalanceBefore(on Date) Money {
	balance := as.Settings.StartingBalance()
	for e := range as.Ledger.Entries() {
		if e.HasRealized() && e.RealizedDate().Before(on) {
			balance = balance.Add(e.RealizedPnL)
		}
	}
	for f := range as.Ledger.Flows() {
		if f.On.Before(on) {
			balance = balance.Add(f.Signed())
		}
	}
	return balance
}

// UnrealizedOn returns the total paper profit of every position open on the
// given day, valued at that day's resolved price, together with the tickers
// that contributed. A position with no resolvable price contributes nothing.
func (as *AccountingSystem) UnrealizedOn(on Date) (Money, []string) {
	total := M(0, as.Settings.Currency)
	var tickers []string
	for e := range as.Ledger.Entries() {
		if !e.OpenOn(on) {
			continue
		}
		held := e.SharesHeldOn(on)
		if !held.IsPositive() {
			continue
		}
		tickers = append(tickers, e.Ticker)
		pt, ok := as.Resolver.Resolve(e.Ticker, on)
		if !ok {
			continue
		}
		total = total.Add(pt.Price.Sub(e.Entry).Mul(held))
	}
	return total, tickers
}

// CurrentUnrealized returns the total paper profit of every position still
// open right now, valued at live quotes.
func (as *AccountingSystem) CurrentUnrealized() Money {
	today := Today()
	total := M(0, as.Settings.Currency)
	for e := range as.Ledger.Entries() {
		if !e.HasExposure() {
			continue
		}
		held := e.SharesHeldOn(today)
		if !held.IsPositive() {
			continue
		}
		pt, ok := as.Resolver.ResolveLive(e.Ticker)
		if !ok {
			continue
		}
		total = total.Add(pt.Price.Sub(e.Entry).Mul(held))
	}
	return total
}

// CurrentAccount returns the account's value right now over the full ledger:
// starting balance, all realized profit, all cash flow and live unrealized
// profit. It is a fact about the account, independent of any display range.
func (as *AccountingSystem) CurrentAccount() Money {
	balance := as.Settings.StartingBalance()
	for e := range as.Ledger.Entries() {
		if e.HasRealized() {
			balance = balance.Add(e.RealizedPnL)
		}
	}
	for f := range as.Ledger.Flows() {
		balance = balance.Add(f.Signed())
	}
	return balance.Add(as.CurrentUnrealized())
}

// OpenRisk returns the total amount at risk across open and trimmed
// positions: remaining shares times the entry-to-stop distance, net of profit
// already banked by trims, floored at zero per position.
func (as *AccountingSystem) OpenRisk() Money {
	today := Today()
	total := M(0, as.Settings.Currency)
	for e := range as.Ledger.Entries() {
		if !e.HasExposure() {
			continue
		}
		held := e.SharesHeldOn(today)
		if !held.IsPositive() {
			continue
		}
		risk := e.Entry.Sub(e.Stop).Mul(held)
		if e.Status == StatusTrimmed {
			risk = risk.Sub(e.RealizedPnL)
		}
		if risk.IsNegative() {
			continue
		}
		total = total.Add(risk)
	}
	return total
}
