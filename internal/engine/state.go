package engine

import "time"

// CustomerState is the per-customer history carried across draws. The engine
// owns the map for the duration of one generation run and mutates entries in
// strict draw order; velocity and geography patterns read the state written
// by the customer's previous transaction.
type CustomerState struct {
	// LastTransactionAt is the timestamp of the customer's most recent
	// emitted transaction. Valid only when HasTransaction is set.
	LastTransactionAt time.Time
	HasTransaction    bool

	// UsualCountry is the merchant country of the customer's first
	// transaction. Frozen on first observation, never updated again.
	UsualCountry string
}

// NewStateMap creates an empty per-customer state map to pass into Generate.
func NewStateMap() map[string]*CustomerState {
	return make(map[string]*CustomerState)
}
