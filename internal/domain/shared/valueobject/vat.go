package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// priceScale is the number of decimal places kept for unit prices.
const priceScale = 4

var hundred = decimal.NewFromInt(100)

// VATRate is a value object representing a VAT percentage (e.g. 19 for 19%).
// It owns the net/gross price relationship used everywhere prices are
// converted: net = gross / (1 + rate/100).
type VATRate struct {
	percent decimal.Decimal
}

// NewVATRate creates a VATRate from a percentage value
func NewVATRate(percent decimal.Decimal) (VATRate, error) {
	if percent.IsNegative() {
		return VATRate{}, fmt.Errorf("vat percent cannot be negative: %s", percent)
	}
	return VATRate{percent: percent}, nil
}

// MustVATRate creates a VATRate and panics on invalid input. For tests and constants.
func MustVATRate(percent decimal.Decimal) VATRate {
	r, err := NewVATRate(percent)
	if err != nil {
		panic(err)
	}
	return r
}

// Percent returns the percentage value
func (r VATRate) Percent() decimal.Decimal {
	return r.percent
}

// multiplier returns 1 + rate/100
func (r VATRate) multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(r.percent.Div(hundred))
}

// NetToGross converts a net price to gross
func (r VATRate) NetToGross(net decimal.Decimal) decimal.Decimal {
	return net.Mul(r.multiplier()).Round(priceScale)
}

// GrossToNet converts a gross price to net
func (r VATRate) GrossToNet(gross decimal.Decimal) decimal.Decimal {
	return gross.DivRound(r.multiplier(), priceScale)
}

// VATAmount returns the VAT portion of a net price
func (r VATRate) VATAmount(net decimal.Decimal) decimal.Decimal {
	return r.NetToGross(net).Sub(net)
}
