package clickhouse

import (
	"context"
	"fmt"
	"time"

	"shield-data-lab/internal/domain"
)

// AnalyticsStore loads transactions into the columnar analytics table and
// serves the aggregation queries the dashboards read. MergeTree does not
// enforce uniqueness; the pipeline truncates before re-loading a run.
type AnalyticsStore struct {
	conn *Conn
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(conn *Conn) *AnalyticsStore {
	return &AnalyticsStore{conn: conn}
}

// InsertBulk appends transaction rows in one native batch.
func (s *AnalyticsStore) InsertBulk(ctx context.Context, txns []*domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO transactions_analytics (
			transaction_id, customer_id, merchant_id, transaction_timestamp,
			amount, currency, merchant_category_code, merchant_country,
			channel, is_international, is_fraud, fraud_type, status, risk_category
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, tx := range txns {
		err = batch.Append(
			tx.TransactionID, tx.CustomerID, tx.MerchantID, tx.Timestamp,
			tx.Amount, tx.Currency, tx.CategoryCode, tx.MerchantCountry,
			string(tx.Channel), boolU8(tx.IsInternational), boolU8(tx.IsFraud),
			string(tx.FraudType), string(tx.Status), string(tx.RiskCategory),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// Truncate empties the analytics table before a reload.
func (s *AnalyticsStore) Truncate(ctx context.Context) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE transactions_analytics`); err != nil {
		return fmt.Errorf("truncate analytics table: %w", err)
	}
	return nil
}

// FraudTypeStat is one row of the fraud mix aggregation.
type FraudTypeStat struct {
	FraudType   string
	Count       uint64
	TotalAmount float64
}

// FraudByType aggregates fraud rows by pattern, largest count first.
func (s *AnalyticsStore) FraudByType(ctx context.Context) ([]*FraudTypeStat, error) {
	query := `
		SELECT fraud_type, count() AS cnt, sum(amount) AS total
		FROM transactions_analytics
		WHERE is_fraud = 1
		GROUP BY fraud_type
		ORDER BY cnt DESC, fraud_type ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fraud by type: %w", err)
	}
	defer rows.Close()

	var stats []*FraudTypeStat
	for rows.Next() {
		st := &FraudTypeStat{}
		if err := rows.Scan(&st.FraudType, &st.Count, &st.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan fraud stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DailyVolume is one day of transaction volume.
type DailyVolume struct {
	Day         time.Time
	Count       uint64
	TotalAmount float64
	FraudCount  uint64
}

// VolumeByDay aggregates the table per calendar day, oldest first.
func (s *AnalyticsStore) VolumeByDay(ctx context.Context) ([]*DailyVolume, error) {
	query := `
		SELECT toStartOfDay(transaction_timestamp) AS day,
		       count() AS cnt,
		       sum(amount) AS total,
		       countIf(is_fraud = 1) AS fraud_cnt
		FROM transactions_analytics
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("volume by day: %w", err)
	}
	defer rows.Close()

	var days []*DailyVolume
	for rows.Next() {
		d := &DailyVolume{}
		if err := rows.Scan(&d.Day, &d.Count, &d.TotalAmount, &d.FraudCount); err != nil {
			return nil, fmt.Errorf("scan daily volume: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// CategoryFraudStat is one row of the per-category fraud rate aggregation.
type CategoryFraudStat struct {
	CategoryCode string
	Count        uint64
	FraudCount   uint64
	FraudRate    float64
}

// FraudRateByCategory aggregates fraud exposure per merchant category code,
// highest rate first.
func (s *AnalyticsStore) FraudRateByCategory(ctx context.Context) ([]*CategoryFraudStat, error) {
	query := `
		SELECT merchant_category_code,
		       count() AS cnt,
		       countIf(is_fraud = 1) AS fraud_cnt,
		       fraud_cnt / cnt AS rate
		FROM transactions_analytics
		GROUP BY merchant_category_code
		ORDER BY rate DESC, merchant_category_code ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fraud rate by category: %w", err)
	}
	defer rows.Close()

	var stats []*CategoryFraudStat
	for rows.Next() {
		st := &CategoryFraudStat{}
		if err := rows.Scan(&st.CategoryCode, &st.Count, &st.FraudCount, &st.FraudRate); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// CountryFraudStat is one row of the per-country fraud rate aggregation.
type CountryFraudStat struct {
	Country    string
	Count      uint64
	FraudCount uint64
	FraudRate  float64
}

// FraudRateByCountry aggregates fraud exposure per merchant country,
// highest rate first.
func (s *AnalyticsStore) FraudRateByCountry(ctx context.Context) ([]*CountryFraudStat, error) {
	query := `
		SELECT merchant_country,
		       count() AS cnt,
		       countIf(is_fraud = 1) AS fraud_cnt,
		       fraud_cnt / cnt AS rate
		FROM transactions_analytics
		GROUP BY merchant_country
		ORDER BY rate DESC, merchant_country ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fraud rate by country: %w", err)
	}
	defer rows.Close()

	var stats []*CountryFraudStat
	for rows.Next() {
		st := &CountryFraudStat{}
		if err := rows.Scan(&st.Country, &st.Count, &st.FraudCount, &st.FraudRate); err != nil {
			return nil, fmt.Errorf("scan country stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// MerchantFraudStat is one row of the merchant exposure aggregation.
type MerchantFraudStat struct {
	MerchantID  string
	FraudCount  uint64
	FraudAmount float64
}

// TopFraudMerchants returns the merchants with the most fraud rows.
func (s *AnalyticsStore) TopFraudMerchants(ctx context.Context, limit int) ([]*MerchantFraudStat, error) {
	query := `
		SELECT merchant_id, count() AS cnt, sum(amount) AS total
		FROM transactions_analytics
		WHERE is_fraud = 1
		GROUP BY merchant_id
		ORDER BY cnt DESC, merchant_id ASC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top fraud merchants: %w", err)
	}
	defer rows.Close()

	var stats []*MerchantFraudStat
	for rows.Next() {
		st := &MerchantFraudStat{}
		if err := rows.Scan(&st.MerchantID, &st.FraudCount, &st.FraudAmount); err != nil {
			return nil, fmt.Errorf("scan merchant stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func boolU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
