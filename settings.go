package stonkstats

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the account configuration the computations are anchored on.
type Settings struct {
	// StartingAccountSize is the account value before the first journal entry.
	StartingAccountSize float64 `yaml:"startingAccountSize"`
	// Currency is the account denomination, e.g. "USD".
	Currency string `yaml:"currency"`

	// StalenessDays is how far behind a requested date a historical price may
	// be before a live price is preferred over it.
	StalenessDays int `yaml:"stalenessDays"`
	// LookbackDays is how far back a historical price lookup searches for the
	// nearest earlier close.
	LookbackDays int `yaml:"lookbackDays"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		StartingAccountSize: 0,
		Currency:            "USD",
		StalenessDays:       2,
		LookbackDays:        7,
	}
}

// StartingBalance returns the starting account size as Money in the account
// currency.
func (s Settings) StartingBalance() Money {
	return M(s.StartingAccountSize, s.Currency)
}

// LoadSettings reads settings from a YAML file. A missing file yields the
// defaults; unset fields fall back to their default value.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("cannot read settings %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("cannot parse settings %q: %w", path, err)
	}
	if s.Currency == "" {
		s.Currency = "USD"
	}
	if s.StalenessDays <= 0 {
		s.StalenessDays = 2
	}
	if s.LookbackDays <= 0 {
		s.LookbackDays = 7
	}
	return s, nil
}

// SaveSettings writes settings to a YAML file.
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write settings %q: %w", path, err)
	}
	return nil
}
