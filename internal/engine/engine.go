// Package engine implements the transaction generation core: timestamp
// rejection sampling against the seasonality model, weighted customer and
// compatibility-screened merchant selection, the priority-ordered fraud
// cascade and the per-customer history it feeds on.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shield-data-lab/internal/affinity"
	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
	"shield-data-lab/internal/seasonality"
)

// Engine errors.
var (
	ErrNoCustomers = errors.New("customer table is empty")
	ErrNoMerchants = errors.New("merchant table is empty")
)

// Config parameterizes one generation run.
type Config struct {
	DrawCount       int       // attempted draws; emitted rows are fewer (rejection sampling)
	WindowDays      int       // simulation window length
	EndDate         time.Time // newest possible timestamp
	DomesticCountry string    // ISO2 home market, e.g. "FR"
	Currency        string
}

// fraudsterRate is the share of customers whose accounts are treated as
// compromised for the account-takeover pattern.
const fraudsterRate = 0.01

// recencyMeanDays is the mean of the exponential recency offset.
const recencyMeanDays = 30.0

// hourWeights is the 24-bin hour-of-day selection table, weighted toward
// daytime. Normalized implicitly by the cumulative sampler.
var hourWeights = []float64{
	0.01, 0.01, 0.01, 0.01, 0.01, 0.02,
	0.03, 0.05, 0.07, 0.08, 0.09, 0.10,
	0.09, 0.08, 0.07, 0.06, 0.07, 0.08,
	0.06, 0.04, 0.03, 0.02, 0.01, 0.01,
}

var (
	channels       = []domain.Channel{domain.ChannelCardPresent, domain.ChannelCardNotPresent, domain.ChannelContactless, domain.ChannelOnline}
	channelWeights = []float64{0.35, 0.25, 0.30, 0.10}
)

// Engine generates the transaction table from immutable profile inputs.
// Not safe for concurrent use: there is a single logical writer by design.
type Engine struct {
	cfg       Config
	rng       *randx.Rand
	customers []*domain.Customer
	merchants []*domain.Merchant

	// Pre-sliced merchant subsets for forced reassignment.
	foreignMerchants  []*domain.Merchant
	highRiskMerchants []*domain.Merchant

	compromised map[string]bool // compromised-terminal cluster
	fraudsters  map[string]bool // pre-selected compromised accounts

	customerPick *randx.Cumulative
	hourPick     *randx.Cumulative
	channelPick  *randx.Cumulative

	cascade []pattern
}

// New builds an engine over the generated profiles. Empty profile tables are
// fatal: every transaction must reference a valid row.
func New(cfg Config, rng *randx.Rand, customers []*domain.Customer, merchants []*domain.Merchant) (*Engine, error) {
	if len(customers) == 0 {
		return nil, ErrNoCustomers
	}
	if len(merchants) == 0 {
		return nil, ErrNoMerchants
	}

	e := &Engine{
		cfg:         cfg,
		rng:         rng,
		customers:   customers,
		merchants:   merchants,
		compromised: make(map[string]bool),
		fraudsters:  make(map[string]bool),
	}

	weights := make([]float64, len(customers))
	for i, c := range customers {
		weights[i] = c.AvgTransactionAmount
	}
	e.customerPick = randx.NewCumulative(weights)
	e.hourPick = randx.NewCumulative(hourWeights)
	e.channelPick = randx.NewCumulative(channelWeights)

	for _, m := range merchants {
		if m.IsCompromised {
			e.compromised[m.MerchantID] = true
		}
		if m.Country != cfg.DomesticCountry {
			e.foreignMerchants = append(e.foreignMerchants, m)
		}
		if m.RiskCategory == domain.RiskHigh {
			e.highRiskMerchants = append(e.highRiskMerchants, m)
		}
	}

	e.selectFraudsters()
	e.cascade = e.buildCascade()
	return e, nil
}

// selectFraudsters picks 1% of customers, once, before generation.
func (e *Engine) selectFraudsters() {
	k := int(float64(len(e.customers)) * fraudsterRate)
	for _, idx := range e.rng.Perm(len(e.customers))[:k] {
		e.fraudsters[e.customers[idx].CustomerID] = true
	}
}

// Generate attempts cfg.DrawCount draws and returns the emitted rows. The
// caller owns states; passing the same map across calls would carry history
// over, so each run gets a fresh one. Discarded draws mutate no state and
// are not retried, so the emitted count is below the draw count.
func (e *Engine) Generate(ctx context.Context, states map[string]*CustomerState) ([]*domain.Transaction, error) {
	txns := make([]*domain.Transaction, 0, e.cfg.DrawCount)

	for i := 1; i <= e.cfg.DrawCount; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		ts, ok := e.sampleTimestamp()
		if !ok {
			continue
		}

		customer := e.customers[e.customerPick.Sample(e.rng)]
		merchant := e.sampleMerchant(customer)

		st := states[customer.CustomerID]
		if st == nil {
			st = &CustomerState{}
			states[customer.CustomerID] = st
		}

		out := e.resolve(&draw{customer: customer, state: st, merchant: merchant, ts: ts})

		txns = append(txns, e.buildTransaction(i, customer, out, ts))

		// History update: last-seen timestamp always, usual country only on
		// first observation.
		st.LastTransactionAt = ts
		st.HasTransaction = true
		if st.UsualCountry == "" {
			st.UsualCountry = out.merchant.Country
		}
	}

	return txns, nil
}

// sampleTimestamp draws a candidate timestamp and accepts it with
// probability seasonality/2. A rejected draw is dropped entirely.
func (e *Engine) sampleTimestamp() (time.Time, bool) {
	daysAgo := e.rng.Exponential(recencyMeanDays)
	if daysAgo > float64(e.cfg.WindowDays) {
		daysAgo = float64(e.cfg.WindowDays)
	}

	hour := e.hourPick.Sample(e.rng)
	minute := e.rng.Intn(60)
	second := e.rng.Intn(60)

	day := e.cfg.EndDate.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC)

	if !e.rng.Hit(seasonality.Factor(ts) / 2.0) {
		return time.Time{}, false
	}
	return ts, true
}

// sampleMerchant draws merchants uniformly until one passes the
// compatibility screen, keeping the fifth sample unconditionally.
func (e *Engine) sampleMerchant(c *domain.Customer) *domain.Merchant {
	var m *domain.Merchant
	for attempt := 0; attempt < 5; attempt++ {
		m = e.merchants[e.rng.Intn(len(e.merchants))]
		if e.rng.Hit(affinity.Score(c, m)) {
			return m
		}
	}
	return m
}

// buildTransaction assembles the row for a resolved draw. The id carries the
// draw index, so id gaps mark rejected draws.
func (e *Engine) buildTransaction(drawIndex int, c *domain.Customer, out outcome, ts time.Time) *domain.Transaction {
	m := out.merchant

	var delay *int
	if out.isFraud() {
		d := out.delayDays
		delay = &d
	}

	status := domain.StatusApproved
	if out.isFraud() {
		if e.rng.Hit(0.15) { // early interdiction
			status = domain.StatusDeclined
		}
	} else if e.rng.Hit(0.02) { // false decline
		status = domain.StatusDeclined
	}

	return &domain.Transaction{
		TransactionID:      fmt.Sprintf("TXN_%010d", drawIndex),
		CustomerID:         c.CustomerID,
		MerchantID:         m.MerchantID,
		Timestamp:          ts,
		Amount:             out.amount,
		Currency:           e.cfg.Currency,
		CategoryCode:       m.CategoryCode,
		MerchantCountry:    m.Country,
		MerchantCity:       m.City,
		Channel:            channels[e.channelPick.Sample(e.rng)],
		IsInternational:    m.Country != e.cfg.DomesticCountry,
		IsFraud:            out.isFraud(),
		FraudType:          out.fraudType,
		DetectionDelayDays: delay,
		Status:             status,
		RiskCategory:       m.RiskCategory,
	}
}
