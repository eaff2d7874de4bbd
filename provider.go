package stonkstats

// Provider fetches market prices from an external source. It is the only
// I/O-bound collaborator: the cache is refreshed once up front, then all
// valuation reads happen synchronously against the cache.
type Provider interface {
	// Name identifies the provider in logs and error messages.
	Name() string
	// Daily returns daily closes for a ticker over the range. An open-ended
	// range means "everything available".
	Daily(ticker string, rng Range) (*PriceHistory, error)
	// Latest returns the most recent quote for a ticker.
	Latest(ticker string) (float64, error)
}
