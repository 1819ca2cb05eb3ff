// Package pipeline coordinates the full generation run.
// Flow: customers → merchants → transactions → devices → alerts → validation
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shield-data-lab/internal/alert"
	"shield-data-lab/internal/config"
	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/device"
	"shield-data-lab/internal/engine"
	"shield-data-lab/internal/observability"
	"shield-data-lab/internal/profile"
	"shield-data-lab/internal/randx"
	"shield-data-lab/internal/stats"
)

// Runner executes the staged generation pipeline. Stages run strictly in
// order off a single seeded source, which is the whole reproducibility
// contract: same config, same dataset.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a Runner. A nil logger disables stage logging.
func New(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

// Result pairs the generated dataset with its summary.
type Result struct {
	Data    *dataset.Dataset
	Summary *stats.Summary
	Elapsed time.Duration
}

// Run generates all five tables and validates them. Any validation failure
// is a generator bug, not an input problem, and aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	start := time.Now()
	rng := randx.New(r.cfg.Seed)
	endDate := r.cfg.ResolvedEndDate()

	r.log.Info("pipeline start",
		zap.Int64("seed", r.cfg.Seed),
		zap.Int("customers", r.cfg.Customers),
		zap.Int("merchants", r.cfg.Merchants),
		zap.Int("draws", r.cfg.DrawCount),
		zap.Time("end_date", endDate),
	)

	customers := profile.GenerateCustomers(rng, r.cfg.Customers, endDate)
	r.log.Info("customer profiles generated", zap.Int("count", len(customers)))

	merchants := profile.GenerateMerchants(rng, r.cfg.Merchants, endDate)
	r.log.Info("merchant registry generated",
		zap.Int("count", len(merchants)),
		zap.Int("compromised", len(profile.CompromisedIDs(merchants))),
	)

	eng, err := engine.New(engine.Config{
		DrawCount:       r.cfg.DrawCount,
		WindowDays:      r.cfg.WindowDays,
		EndDate:         endDate,
		DomesticCountry: r.cfg.DomesticCountry,
		Currency:        r.cfg.Currency,
	}, rng, customers, merchants)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	txns, err := eng.Generate(ctx, engine.NewStateMap())
	if err != nil {
		observability.RecordPipelineRun("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("generate transactions: %w", err)
	}
	observability.RecordDrawsRejected(r.cfg.DrawCount - len(txns))
	r.log.Info("transactions generated",
		zap.Int("emitted", len(txns)),
		zap.Int("draws", r.cfg.DrawCount),
	)

	devices := device.NewGenerator(rng).Generate(txns)
	r.log.Info("device fingerprints generated", zap.Int("count", len(devices)))

	alerts := alert.NewSampler(rng).Sample(txns)
	r.log.Info("fraud alerts sampled", zap.Int("count", len(alerts)))

	data := &dataset.Dataset{
		Seed:         r.cfg.Seed,
		Customers:    customers,
		Merchants:    merchants,
		Transactions: txns,
		Devices:      devices,
		Alerts:       alerts,
	}
	if err := data.Validate(); err != nil {
		observability.RecordPipelineRun("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("dataset validation: %w", err)
	}

	summary := stats.Compute(data)
	elapsed := time.Since(start)

	observability.RecordRowsGenerated("customers", len(customers))
	observability.RecordRowsGenerated("merchants", len(merchants))
	observability.RecordRowsGenerated("transactions", len(txns))
	observability.RecordRowsGenerated("devices", len(devices))
	observability.RecordRowsGenerated("alerts", len(alerts))
	for fraudType, count := range summary.FraudByType {
		observability.RecordFraudTransactions(string(fraudType), count)
	}
	observability.RecordPipelineRun("success", elapsed.Seconds())
	r.log.Info("pipeline complete",
		zap.Int("fraud_count", summary.FraudCount),
		zap.Float64("fraud_rate", summary.FraudRate),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{Data: data, Summary: summary, Elapsed: elapsed}, nil
}
