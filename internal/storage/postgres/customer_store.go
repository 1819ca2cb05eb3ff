package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

// CustomerStore implements storage.CustomerStore using PostgreSQL.
type CustomerStore struct {
	pool *Pool
}

// NewCustomerStore creates a new CustomerStore.
func NewCustomerStore(pool *Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CustomerStore = (*CustomerStore)(nil)

// ImportBulk loads customer rows via COPY. Returns ErrDuplicateKey if any
// customer_id already exists in staging.
func (s *CustomerStore) ImportBulk(ctx context.Context, customers []*domain.Customer) (int64, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(customers))
	for i, c := range customers {
		rows[i] = []any{
			c.CustomerID, c.Name, c.Email, string(c.Segment),
			c.AccountAgeDays, c.CreditScore, c.AvgTransactionAmount,
			c.IsPEP, c.ActiveCards, c.AnnualIncome, c.AccountOpeningDate,
			string(c.SpendingVelocity), c.RiskTolerance,
			string(c.PreferredHours), c.AvgTransactionsPerWeek,
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"customer_profile"},
		[]string{
			"customer_id", "name", "email", "customer_segment",
			"account_age_days", "credit_score", "avg_transaction_amount",
			"is_pep", "active_cards", "annual_income", "account_opening_date",
			"spending_velocity", "risk_tolerance", "preferred_hours",
			"avg_transactions_per_week",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, storage.ErrDuplicateKey
		}
		return 0, fmt.Errorf("import customers: %w", err)
	}
	return n, nil
}

// GetByID retrieves a customer by id. Returns ErrNotFound if not exists.
func (s *CustomerStore) GetByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, email, customer_segment, account_age_days,
		       credit_score, avg_transaction_amount, is_pep, active_cards,
		       annual_income, account_opening_date, spending_velocity,
		       risk_tolerance, preferred_hours, avg_transactions_per_week
		FROM customer_profile
		WHERE customer_id = $1
	`

	var c domain.Customer
	var segment, velocity, hours string
	err := s.pool.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID, &c.Name, &c.Email, &segment, &c.AccountAgeDays,
		&c.CreditScore, &c.AvgTransactionAmount, &c.IsPEP, &c.ActiveCards,
		&c.AnnualIncome, &c.AccountOpeningDate, &velocity,
		&c.RiskTolerance, &hours, &c.AvgTransactionsPerWeek,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	c.Segment = domain.Segment(segment)
	c.SpendingVelocity = domain.SpendingVelocity(velocity)
	c.PreferredHours = domain.DayPart(hours)
	return &c, nil
}

// Count returns the number of staged customer rows.
func (s *CustomerStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM customer_profile`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
