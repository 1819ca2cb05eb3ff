package profile

import (
	"fmt"
	"time"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

// mccEntry describes one merchant category: its human label, baseline risk
// tier and share of the merchant population.
type mccEntry struct {
	code   string
	label  string
	risk   domain.RiskCategory
	weight float64
}

// mccTable drives both category assignment and the derived risk category.
var mccTable = []mccEntry{
	{"5411", "Supermarket", domain.RiskLow, 0.15},
	{"5812", "Restaurant", domain.RiskMedium, 0.12},
	{"5999", "Misc E-commerce", domain.RiskHigh, 0.18},
	{"4121", "Taxi Transport", domain.RiskMedium, 0.05},
	{"7995", "Casino/Gaming", domain.RiskHigh, 0.02},
	{"5735", "Electronics", domain.RiskHigh, 0.08},
	{"5912", "Pharmacy", domain.RiskLow, 0.06},
	{"5941", "Sporting Goods", domain.RiskMedium, 0.04},
	{"5661", "Footwear", domain.RiskLow, 0.03},
	{"5542", "Gas Station", domain.RiskLow, 0.10},
	{"4814", "Telecom", domain.RiskMedium, 0.05},
	{"7399", "Business Services", domain.RiskMedium, 0.04},
	{"5311", "Department Store", domain.RiskLow, 0.03},
	{"5722", "Appliances", domain.RiskMedium, 0.03},
	{"5815", "Streaming/Digital", domain.RiskHigh, 0.02},
}

var (
	countries      = []string{"FR", "BE", "ES", "IT", "GB", "US", "CN"}
	countryWeights = []float64{0.85, 0.05, 0.03, 0.02, 0.02, 0.02, 0.01}
)

// compromisedRate is the share of merchants operating compromised terminals.
const compromisedRate = 0.005

// GenerateMerchants produces n merchant rows, including the compromised
// subset chosen without replacement. endDate anchors registration dates.
func GenerateMerchants(r *randx.Rand, n int, endDate time.Time) []*domain.Merchant {
	mccWeights := make([]float64, len(mccTable))
	for i, e := range mccTable {
		mccWeights[i] = e.weight
	}
	mccPick := randx.NewCumulative(mccWeights)
	countryPick := randx.NewCumulative(countryWeights)

	merchants := make([]*domain.Merchant, 0, n)
	for i := 1; i <= n; i++ {
		entry := mccTable[mccPick.Sample(r)]

		// Registration uniformly within the last five years.
		regOffset := r.Intn(5 * 365)

		merchants = append(merchants, &domain.Merchant{
			MerchantID:        fmt.Sprintf("MERCH_%07d", i),
			Name:              companyName(r),
			CategoryCode:      entry.code,
			CategoryLabel:     entry.label,
			RiskCategory:      entry.risk,
			ChargebackRate30d: randx.Round2(chargebackRate(r, entry.risk)),
			City:              cityName(r),
			Country:           countries[countryPick.Sample(r)],
			AvgMonthlyVolume:  int(r.LogNormal(9, 1.5)),
			RegistrationDate:  endDate.AddDate(0, 0, -regOffset),
		})
	}

	markCompromised(r, merchants)
	return merchants
}

// chargebackRate draws the 30-day chargeback rate for a risk tier, floored
// at zero.
func chargebackRate(r *randx.Rand, risk domain.RiskCategory) float64 {
	var rate float64
	switch risk {
	case domain.RiskLow:
		rate = r.Normal(0.3, 0.15)
	case domain.RiskMedium:
		rate = r.Normal(0.8, 0.3)
	default:
		rate = r.Normal(2.1, 0.8)
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}

// markCompromised flags 0.5% of merchants as compromised terminals, chosen
// without replacement.
func markCompromised(r *randx.Rand, merchants []*domain.Merchant) {
	k := int(float64(len(merchants)) * compromisedRate)
	if k == 0 {
		return
	}
	for _, idx := range r.Perm(len(merchants))[:k] {
		merchants[idx].IsCompromised = true
	}
}

// CompromisedIDs returns the merchant ids of the compromised-terminal
// cluster.
func CompromisedIDs(merchants []*domain.Merchant) map[string]bool {
	ids := make(map[string]bool)
	for _, m := range merchants {
		if m.IsCompromised {
			ids[m.MerchantID] = true
		}
	}
	return ids
}
