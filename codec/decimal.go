package codec

import (
	"github.com/shopspring/decimal"
)

// DecimalPlaces is the number of fractional digits carried on the wire.
const DecimalPlaces = 8

//
// EncodeDecimal renders a decimal as a plain literal with at most DecimalPlaces fractional digits
// (rounded half away from zero) and no trailing zeros. The separator is always ".".
//
func EncodeDecimal(d decimal.Decimal) string {
	return d.Round(DecimalPlaces).String()
}

//
// DecodeDecimal parses a decimal literal without ever passing through a binary floating point
// value.
//
func DecodeDecimal(token string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, &MalformedNumberError{Token: token, Err: err}
	}

	return d, nil
}
