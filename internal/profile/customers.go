// Package profile generates the static customer and merchant tables the
// transaction engine consumes. Both generators are parameterized attribute
// samplers with no shared mutable state; each row is drawn independently
// from the run's seeded source.
package profile

import (
	"fmt"
	"time"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

// Segment mix and per-segment amount/income parameters.
var (
	segments       = []domain.Segment{domain.SegmentBasic, domain.SegmentStandard, domain.SegmentPremium, domain.SegmentPrivate}
	segmentWeights = []float64{0.45, 0.40, 0.12, 0.03}

	// mean and standard deviation of the per-transaction amount by segment
	segmentAmount = map[domain.Segment][2]float64{
		domain.SegmentBasic:    {15, 25},
		domain.SegmentStandard: {35, 20},
		domain.SegmentPremium:  {120, 60},
		domain.SegmentPrivate:  {450, 200},
	}

	segmentIncome = map[domain.Segment][2]float64{
		domain.SegmentBasic:    {25000, 8000},
		domain.SegmentStandard: {45000, 15000},
		domain.SegmentPremium:  {85000, 30000},
		domain.SegmentPrivate:  {250000, 100000},
	}

	velocities      = []domain.SpendingVelocity{domain.VelocityLow, domain.VelocityMedium, domain.VelocityHigh}
	velocityWeights = []float64{0.6, 0.3, 0.1}

	dayParts       = []domain.DayPart{domain.DayPartMorning, domain.DayPartLunch, domain.DayPartEvening, domain.DayPartNight}
	dayPartWeights = []float64{0.3, 0.4, 0.25, 0.05}

	cardCounts  = []int{1, 2, 3}
	cardWeights = []float64{0.7, 0.25, 0.05}
)

// pepRate is the share of Premium/Private customers carrying the
// politically-exposed flag.
const pepRate = 0.02

// GenerateCustomers produces n customer rows. endDate anchors account
// opening dates; rows are immutable once returned.
func GenerateCustomers(r *randx.Rand, n int, endDate time.Time) []*domain.Customer {
	segmentPick := randx.NewCumulative(segmentWeights)
	velocityPick := randx.NewCumulative(velocityWeights)
	dayPartPick := randx.NewCumulative(dayPartWeights)
	cardPick := randx.NewCumulative(cardWeights)

	customers := make([]*domain.Customer, 0, n)
	for i := 1; i <= n; i++ {
		seg := segments[segmentPick.Sample(r)]

		age := clampInt(int(r.Gamma2(180)), 30, 1825)
		score := clampInt(int(r.Normal(680, 80)), 300, 850)

		amt := segmentAmount[seg]
		avgAmount := r.Normal(amt[0], amt[1])
		if avgAmount < 5 {
			avgAmount = 5
		}

		inc := segmentIncome[seg]

		first, last := personName(r)

		customers = append(customers, &domain.Customer{
			CustomerID:           fmt.Sprintf("CUST_%08d", i),
			Name:                 first + " " + last,
			Email:                emailFor(first, last, i, r),
			Segment:              seg,
			AccountAgeDays:       age,
			CreditScore:          score,
			AvgTransactionAmount: randx.Round2(avgAmount),
			IsPEP:                isPremiumTier(seg) && r.Hit(pepRate),
			ActiveCards:          cardCounts[cardPick.Sample(r)],
			AnnualIncome:         int(r.Normal(inc[0], inc[1])),
			AccountOpeningDate:   endDate.AddDate(0, 0, -age),

			SpendingVelocity:       velocities[velocityPick.Sample(r)],
			RiskTolerance:          riskTolerance(seg),
			PreferredHours:         dayParts[dayPartPick.Sample(r)],
			AvgTransactionsPerWeek: r.Poisson(5),
		})
	}
	return customers
}

func isPremiumTier(seg domain.Segment) bool {
	return seg == domain.SegmentPremium || seg == domain.SegmentPrivate
}

func riskTolerance(seg domain.Segment) float64 {
	switch seg {
	case domain.SegmentPremium, domain.SegmentPrivate:
		return 0.8
	case domain.SegmentStandard:
		return 0.5
	default:
		return 0.2
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
