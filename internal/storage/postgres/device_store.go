package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/storage"
)

// DeviceStore implements storage.DeviceStore using PostgreSQL.
type DeviceStore struct {
	pool *Pool
}

// NewDeviceStore creates a new DeviceStore.
func NewDeviceStore(pool *Pool) *DeviceStore {
	return &DeviceStore{pool: pool}
}

// Compile-time interface check.
var _ storage.DeviceStore = (*DeviceStore)(nil)

// ImportBulk loads fingerprint rows via COPY.
func (s *DeviceStore) ImportBulk(ctx context.Context, devices []*domain.Device) (int64, error) {
	if len(devices) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(devices))
	for i, d := range devices {
		rows[i] = []any{
			d.TransactionID, d.DeviceID, string(d.DeviceType), d.OS,
			d.Browser, d.IPAddress, d.IsVPN, d.IsEmulator, d.DeviceChanged,
			d.ScreenResolution, d.Language, d.Timezone, d.UserAgent,
			d.DeviceUserCount,
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"device_fingerprinting"},
		[]string{
			"transaction_id", "device_id", "device_type", "os", "browser",
			"ip_address", "is_vpn", "is_emulator", "device_change_24h",
			"screen_resolution", "language", "timezone", "user_agent",
			"device_user_count",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, storage.ErrDuplicateKey
		}
		return 0, fmt.Errorf("import devices: %w", err)
	}
	return n, nil
}

// Count returns the number of staged fingerprint rows.
func (s *DeviceStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM device_fingerprinting`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count devices: %w", err)
	}
	return n, nil
}
