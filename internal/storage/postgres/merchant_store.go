package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

// MerchantStore implements storage.MerchantStore using PostgreSQL.
type MerchantStore struct {
	pool *Pool
}

// NewMerchantStore creates a new MerchantStore.
func NewMerchantStore(pool *Pool) *MerchantStore {
	return &MerchantStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MerchantStore = (*MerchantStore)(nil)

// ImportBulk loads merchant rows via COPY.
func (s *MerchantStore) ImportBulk(ctx context.Context, merchants []*domain.Merchant) (int64, error) {
	if len(merchants) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(merchants))
	for i, m := range merchants {
		rows[i] = []any{
			m.MerchantID, m.Name, m.CategoryCode, m.CategoryLabel,
			string(m.RiskCategory), m.ChargebackRate30d, m.City, m.Country,
			m.AvgMonthlyVolume, m.RegistrationDate, m.IsCompromised,
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"merchant_registry"},
		[]string{
			"merchant_id", "name", "merchant_category_code", "category_label",
			"risk_category", "chargeback_rate_30d", "city", "country",
			"avg_monthly_volume", "registration_date", "is_compromised",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, storage.ErrDuplicateKey
		}
		return 0, fmt.Errorf("import merchants: %w", err)
	}
	return n, nil
}

// GetByID retrieves a merchant by id. Returns ErrNotFound if not exists.
func (s *MerchantStore) GetByID(ctx context.Context, merchantID string) (*domain.Merchant, error) {
	query := `
		SELECT merchant_id, name, merchant_category_code, category_label,
		       risk_category, chargeback_rate_30d, city, country,
		       avg_monthly_volume, registration_date, is_compromised
		FROM merchant_registry
		WHERE merchant_id = $1
	`

	var m domain.Merchant
	var risk string
	err := s.pool.QueryRow(ctx, query, merchantID).Scan(
		&m.MerchantID, &m.Name, &m.CategoryCode, &m.CategoryLabel,
		&risk, &m.ChargebackRate30d, &m.City, &m.Country,
		&m.AvgMonthlyVolume, &m.RegistrationDate, &m.IsCompromised,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	m.RiskCategory = domain.RiskCategory(risk)
	return &m, nil
}

// Count returns the number of staged merchant rows.
func (s *MerchantStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM merchant_registry`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count merchants: %w", err)
	}
	return n, nil
}
