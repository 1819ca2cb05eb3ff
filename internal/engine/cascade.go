package engine

import (
	"time"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

// draw is the context a cascade decision sees: the sampled pairing plus the
// customer's carried state at decision time.
type draw struct {
	customer *domain.Customer
	state    *CustomerState
	merchant *domain.Merchant
	ts       time.Time
}

// outcome is the cascade's verdict for one draw. merchant may differ from the
// sampled one when a pattern forces a reassignment.
type outcome struct {
	fraudType domain.FraudType
	amount    float64
	delayDays int
	merchant  *domain.Merchant
}

func (o outcome) isFraud() bool { return o.fraudType != domain.FraudLegit }

// pattern is one tagged variant of the fraud cascade: an eligibility
// condition, a conditional firing probability and the amount/delay/merchant
// rules applied when it fires.
type pattern struct {
	typ  domain.FraudType
	prob float64

	// claimOnMiss marks branches that consume the draw even when the fraud
	// roll fails: the row comes out legitimate and later branches are never
	// evaluated.
	claimOnMiss bool

	eligible func(d *draw) bool
	fire     func(d *draw) outcome
}

// velocityWindow is the repeat-purchase gap treated as suspicious.
const velocityWindow = 5 * time.Minute

// buildCascade assembles the ordered pattern list. Priority order is fixed:
// the first branch to fire wins and at most one pattern tags any row.
func (e *Engine) buildCascade() []pattern {
	return []pattern{
		{
			// Tiny charges probing stolen card numbers, routed abroad.
			typ:  domain.FraudCardTesting,
			prob: 0.0005,
			eligible: func(*draw) bool {
				return true
			},
			fire: func(d *draw) outcome {
				return outcome{
					fraudType: domain.FraudCardTesting,
					amount:    randx.Round2(e.rng.Uniform(0.50, 4.99)),
					merchant:  e.pickOverride(e.foreignMerchants, d.merchant),
					delayDays: e.rng.IntBetween(1, 3),
				}
			},
		},
		{
			// High-value drain of a compromised Premium/Private account.
			typ:  domain.FraudAccountTakeover,
			prob: 0.15,
			eligible: func(d *draw) bool {
				return e.fraudsters[d.customer.CustomerID] && isPremiumTier(d.customer.Segment)
			},
			fire: func(d *draw) outcome {
				amount := e.rng.Uniform(1000, 5000)
				if e.rng.Hit(0.4) {
					// Attackers favor round figures.
					amount = float64(int(amount/100+0.5)) * 100
				}
				return outcome{
					fraudType: domain.FraudAccountTakeover,
					amount:    randx.Round2(amount),
					merchant:  e.pickOverride(e.highRiskMerchants, d.merchant),
					delayDays: e.rng.IntBetween(7, 45),
				}
			},
		},
		{
			// Sustained skimming at a compromised terminal. A failed roll
			// still leaves the row at the compromised merchant, legitimate.
			typ:         domain.FraudCompromisedTerminal,
			prob:        0.70,
			claimOnMiss: true,
			eligible: func(d *draw) bool {
				return e.compromised[d.merchant.MerchantID]
			},
			fire: func(d *draw) outcome {
				amount := e.rng.Normal(d.customer.AvgTransactionAmount, 30)
				if amount < 10 {
					amount = 10
				}
				return outcome{
					fraudType: domain.FraudCompromisedTerminal,
					amount:    randx.Round2(amount),
					merchant:  d.merchant,
					delayDays: e.rng.IntBetween(14, 60),
				}
			},
		},
		{
			// Abnormally rapid repeat purchase.
			typ:         domain.FraudVelocity,
			prob:        0.30,
			claimOnMiss: true,
			eligible: func(d *draw) bool {
				return d.state.HasTransaction && gapUnder(d.state.LastTransactionAt, d.ts, velocityWindow)
			},
			fire: func(d *draw) outcome {
				return outcome{
					fraudType: domain.FraudVelocity,
					amount:    randx.Round2(e.rng.Uniform(50, 300)),
					merchant:  d.merchant,
					delayDays: e.rng.IntBetween(1, 7),
				}
			},
		},
		{
			// Sudden country change away from both the usual and the
			// domestic market.
			typ:         domain.FraudGeographicAnomaly,
			prob:        0.15,
			claimOnMiss: true,
			eligible: func(d *draw) bool {
				return d.state.UsualCountry != "" &&
					d.merchant.Country != d.state.UsualCountry &&
					d.merchant.Country != e.cfg.DomesticCountry
			},
			fire: func(d *draw) outcome {
				return outcome{
					fraudType: domain.FraudGeographicAnomaly,
					amount:    randx.Round2(e.rng.Uniform(100, 800)),
					merchant:  d.merchant,
					delayDays: e.rng.IntBetween(3, 21),
				}
			},
		},
	}
}

// resolve walks the cascade in priority order and returns the verdict for
// one draw. Exactly one branch decides the row; the default is a legitimate
// purchase around the customer's average ticket.
func (e *Engine) resolve(d *draw) outcome {
	for _, p := range e.cascade {
		if !p.eligible(d) {
			continue
		}
		if e.rng.Hit(p.prob) {
			return p.fire(d)
		}
		if p.claimOnMiss {
			break
		}
	}
	return e.legitOutcome(d)
}

// legitOutcome draws a normal purchase amount for the sampled pairing.
func (e *Engine) legitOutcome(d *draw) outcome {
	amount := e.rng.Normal(d.customer.AvgTransactionAmount, 15)
	if amount < 1 {
		amount = 1
	}
	return outcome{
		fraudType: domain.FraudLegit,
		amount:    randx.Round2(amount),
		merchant:  d.merchant,
	}
}

// pickOverride samples a forced merchant from pool, or keeps the fallback
// when the pool is empty. Empty candidate subsets degrade gracefully rather
// than failing the transaction.
func (e *Engine) pickOverride(pool []*domain.Merchant, fallback *domain.Merchant) *domain.Merchant {
	if len(pool) == 0 {
		return fallback
	}
	return pool[e.rng.Intn(len(pool))]
}

func gapUnder(prev, cur time.Time, window time.Duration) bool {
	gap := cur.Sub(prev)
	if gap < 0 {
		gap = -gap
	}
	return gap < window
}

func isPremiumTier(seg domain.Segment) bool {
	return seg == domain.SegmentPremium || seg == domain.SegmentPrivate
}
