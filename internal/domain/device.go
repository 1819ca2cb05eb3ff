package domain

// DeviceType is the device form factor observed for a transaction.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// Device represents one row of the device_fingerprinting table: the device
// fingerprint observed for a single transaction. DeviceUserCount is derived
// after the full pass as the number of distinct customers ever seen on the
// device identity; values above 1 are the device-sharing fraud-ring signal.
type Device struct {
	TransactionID    string
	DeviceID         string
	DeviceType       DeviceType
	OS               string
	Browser          string
	IPAddress        string
	IsVPN            bool
	IsEmulator       bool
	DeviceChanged    bool // device re-provisioned on this transaction
	ScreenResolution string
	Language         string
	Timezone         string
	UserAgent        string
	DeviceUserCount  int
}
