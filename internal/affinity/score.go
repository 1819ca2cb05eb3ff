// Package affinity scores how plausible a (customer, merchant) pairing is.
// The transaction engine uses the score as an acceptance probability when
// matching a sampled customer to a merchant.
package affinity

import "shield-data-lab/internal/domain"

type matrixKey struct {
	segment domain.Segment
	risk    domain.RiskCategory
}

// baseMatrix holds the segment × risk-category base probabilities. Basic
// customers cluster on low-risk merchants; Private customers tolerate the
// high-risk tail.
var baseMatrix = map[matrixKey]float64{
	{domain.SegmentBasic, domain.RiskLow}:       0.9,
	{domain.SegmentBasic, domain.RiskMedium}:    0.6,
	{domain.SegmentBasic, domain.RiskHigh}:      0.2,
	{domain.SegmentStandard, domain.RiskLow}:    0.8,
	{domain.SegmentStandard, domain.RiskMedium}: 0.9,
	{domain.SegmentStandard, domain.RiskHigh}:   0.5,
	{domain.SegmentPremium, domain.RiskLow}:     0.7,
	{domain.SegmentPremium, domain.RiskMedium}:  0.9,
	{domain.SegmentPremium, domain.RiskHigh}:    0.8,
	{domain.SegmentPrivate, domain.RiskLow}:     0.6,
	{domain.SegmentPrivate, domain.RiskMedium}:  0.8,
	{domain.SegmentPrivate, domain.RiskHigh}:    0.9,
}

// MCC adjustment sets.
var (
	// sensitiveMCCs are compliance-sensitive sectors PEP customers avoid.
	sensitiveMCCs = map[string]bool{
		"7995": true, // casino/gaming
		"5999": true, // misc e-commerce
	}

	// premiumMCCs are big-ticket sectors out of reach for Basic accounts.
	premiumMCCs = map[string]bool{
		"5735": true, // electronics
		"4121": true, // taxi
	}
)

// Score returns the probability in [0, 1] that the customer would plausibly
// transact at the merchant. Pure function, no state.
func Score(c *domain.Customer, m *domain.Merchant) float64 {
	p, ok := baseMatrix[matrixKey{c.Segment, m.RiskCategory}]
	if !ok {
		p = 0.5
	}

	if c.IsPEP && sensitiveMCCs[m.CategoryCode] {
		p *= 0.1
	}
	if c.Segment == domain.SegmentBasic && premiumMCCs[m.CategoryCode] {
		p *= 0.3
	}

	return p
}
