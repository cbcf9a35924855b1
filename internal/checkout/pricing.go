package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storekit/storefront-backend/pkg/config"
)

// Quote is the priced breakdown of a checkout before the order is written.
type Quote struct {
	SubtotalCents int `json:"subtotal_cents"`
	ShippingCents int `json:"shipping_cents"`
	TaxCents      int `json:"tax_cents"`
	TotalCents    int `json:"total_cents"`
}

// Pricer turns a goods subtotal into a full quote using the configured tax
// rate and shipping rules.
type Pricer struct {
	taxRate                    decimal.Decimal
	shippingFeeCents           int
	freeShippingThresholdCents int
}

// NewPricer parses the configured tax percentage once up front.
func NewPricer(cfg config.CheckoutConfig) (*Pricer, error) {
	rate, err := decimal.NewFromString(cfg.TaxPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid tax percent %q: %w", cfg.TaxPercent, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("tax percent must not be negative")
	}
	return &Pricer{
		taxRate:                    rate.Div(decimal.NewFromInt(100)),
		shippingFeeCents:           cfg.ShippingFeeCents,
		freeShippingThresholdCents: cfg.FreeShippingThresholdCents,
	}, nil
}

// Price computes shipping and tax for the goods subtotal. Tax applies to the
// goods only, not the shipping fee. Tax is rounded half-up to the cent.
func (p *Pricer) Price(subtotalCents int) Quote {
	shipping := p.shippingFeeCents
	if subtotalCents >= p.freeShippingThresholdCents {
		shipping = 0
	}

	tax := decimal.NewFromInt(int64(subtotalCents)).
		Mul(p.taxRate).
		Round(0).
		IntPart()

	return Quote{
		SubtotalCents: subtotalCents,
		ShippingCents: shipping,
		TaxCents:      int(tax),
		TotalCents:    subtotalCents + shipping + int(tax),
	}
}
