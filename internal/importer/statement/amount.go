package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a bank-formatted amount. Thousands separators are
// dropped and a trailing "D"/"C" marks debits and credits, as some Brazilian
// banks write "1.234,56 D".
func parseAmount(s string, decimalPoint bool) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	sign := ""

	switch {
	case strings.HasSuffix(clean, "D"):
		clean, sign = strings.TrimSuffix(clean, "D"), "-"
	case strings.HasSuffix(clean, "C"):
		clean = strings.TrimSuffix(clean, "C")
	}

	clean = strings.Replace(clean, "R$", "", 1)

	if decimalPoint {
		clean = strings.ReplaceAll(clean, ",", "")
	} else {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(sign + clean)
	if err != nil {
		return decimal.Zero, err
	}

	return d, nil
}
