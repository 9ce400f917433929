package transfer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// toMinorUnits converts a decimal amount expressed in major currency units to
// an integer number of minor units. The conversion works on the string form of
// the number so no binary floating point is involved; fractions of a minor
// unit are truncated.
func toMinorUnits(amount json.Number) (int64, error) {
	s := amount.String()
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %q", s)
	}

	return d.Mul(decimal.NewFromInt(100)).Truncate(0).IntPart(), nil
}

// normalizeCurrency lower-cases an ISO 4217 code.
func normalizeCurrency(code string) string {
	return strings.ToLower(code)
}
