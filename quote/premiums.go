package quote

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// PremiumTable maps a term to the percentage premium subtracted from the
// spot rate when previewing an implied fixed rate. The values are display
// constants, not protocol invariants, and can be overridden from a file.
// Premiums must increase monotonically with term length.
type PremiumTable struct {
	D1  decimal.Decimal
	D7  decimal.Decimal
	D30 decimal.Decimal
}

// DefaultDialogPremiums are the compiled-in premiums used by the swap
// configuration preview.
var DefaultDialogPremiums = PremiumTable{
	D1:  decimal.NewFromFloat(0.08),
	D7:  decimal.NewFromFloat(0.22),
	D30: decimal.NewFromFloat(0.55),
}

// DefaultCardPremiums are the compiled-in premiums used by the market list
// headline rate.
var DefaultCardPremiums = PremiumTable{
	D1:  decimal.NewFromFloat(0.2),
	D7:  decimal.NewFromFloat(0.8),
	D30: decimal.NewFromFloat(1.6),
}

// For returns the premium for the given term.
func (t PremiumTable) For(term Term) decimal.Decimal {
	switch term {
	case Term1D:
		return t.D1
	case Term7D:
		return t.D7
	default:
		return t.D30
	}
}

// Validate checks the monotonicity invariant.
func (t PremiumTable) Validate() error {
	if t.D1.IsNegative() {
		return fmt.Errorf("quote: premium for 1D must not be negative")
	}
	if t.D7.LessThan(t.D1) || t.D30.LessThan(t.D7) {
		return fmt.Errorf("quote: premiums must increase with term length")
	}
	return nil
}

type premiumFile struct {
	D1  string `yaml:"premium_1d"`
	D7  string `yaml:"premium_7d"`
	D30 string `yaml:"premium_30d"`
}

// LoadPremiumTable reads a premium table from a YAML file. Values are
// percentages, e.g. "0.08" for 8 bps.
func LoadPremiumTable(path string) (PremiumTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PremiumTable{}, fmt.Errorf("quote: read premium table: %w", err)
	}

	var f premiumFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return PremiumTable{}, fmt.Errorf("quote: parse premium table: %w", err)
	}

	table := PremiumTable{}
	for _, entry := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{f.D1, &table.D1},
		{f.D7, &table.D7},
		{f.D30, &table.D30},
	} {
		v, err := decimal.NewFromString(entry.raw)
		if err != nil {
			return PremiumTable{}, fmt.Errorf("quote: parse premium %q: %w", entry.raw, err)
		}
		*entry.dst = v
	}

	if err := table.Validate(); err != nil {
		return PremiumTable{}, err
	}
	return table, nil
}
