package service

// PricingPolicy carries the checkout constants that varied across
// deployments. FreeShippingOver <= 0 means the flat fee always applies.
type PricingPolicy struct {
	TaxRate          float64
	ShippingFlatFee  float64
	FreeShippingOver float64
}

func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		TaxRate:          0.21,
		ShippingFlatFee:  50,
		FreeShippingOver: 50,
	}
}

func (p PricingPolicy) Shipping(subtotal float64) float64 {
	if p.FreeShippingOver > 0 && subtotal > p.FreeShippingOver {
		return 0
	}
	return p.ShippingFlatFee
}

// Quote computes tax, shipping and total from a subtotal, in that order.
func (p PricingPolicy) Quote(subtotal float64) (tax, shipping, total float64) {
	tax = subtotal * p.TaxRate
	shipping = p.Shipping(subtotal)
	total = subtotal + tax + shipping
	return tax, shipping, total
}
