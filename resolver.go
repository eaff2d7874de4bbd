package stonkstats

// PricePoint is a resolved price for a (ticker, day) pair. SourceDate may be
// earlier than the requested day when the lookup fell back to the nearest
// available close.
type PricePoint struct {
	Price      Money
	SourceDate Date
}

// PriceResolver picks a price for a ticker on a day, falling back between
// historical and live data.
//
// A historical close within LookbackDays at or before the requested day wins
// when it is at most StalenessDays old. A staler close is only used when no
// live quote exists; live quotes are fresher but describe the current moment,
// not the requested day, so they only stand in when the cache has nothing
// trustworthy. No resolvable price at all yields (zero, false): the caller
// must exclude the position from valuation, never price it at zero.
type PriceResolver struct {
	Source        PriceSource
	StalenessDays int
	LookbackDays  int
}

// NewPriceResolver returns a resolver over the source with the thresholds
// from settings.
func NewPriceResolver(source PriceSource, s Settings) *PriceResolver {
	return &PriceResolver{Source: source, StalenessDays: s.StalenessDays, LookbackDays: s.LookbackDays}
}

// Resolve returns a price for the ticker on the given day, and false when no
// path yields one.
func (r *PriceResolver) Resolve(ticker string, on Date) (PricePoint, bool) {
	if r.Source.HasHistory() {
		if price, src, ok := r.Source.HistoricalPrice(ticker, on); ok && on.DaysSince(src) <= r.LookbackDays {
			if on.DaysSince(src) <= r.StalenessDays {
				return PricePoint{Price: price, SourceDate: src}, true
			}
			// Stale close. A live quote, when present, is closer to the truth.
			if live, ok := r.Source.CurrentPrice(ticker); ok {
				return PricePoint{Price: live, SourceDate: on}, true
			}
			return PricePoint{Price: price, SourceDate: src}, true
		}
	}
	if live, ok := r.Source.CurrentPrice(ticker); ok {
		return PricePoint{Price: live, SourceDate: on}, true
	}
	return PricePoint{}, false
}

// ResolveLive returns the live quote only, bypassing the historical cache.
// The "now" valuation uses it so the most recent sample reflects the market
// as it stands, not yesterday's close.
func (r *PriceResolver) ResolveLive(ticker string) (PricePoint, bool) {
	if live, ok := r.Source.CurrentPrice(ticker); ok {
		return PricePoint{Price: live, SourceDate: Today()}, true
	}
	// Fall back on the freshest close when no live quote exists.
	if price, src, ok := r.Source.HistoricalPrice(ticker, Today()); ok {
		return PricePoint{Price: price, SourceDate: src}, true
	}
	return PricePoint{}, false
}
