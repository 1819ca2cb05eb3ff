// Package device derives the fingerprint table from the transaction stream.
// One fingerprint row per transaction; per-customer device continuity plus a
// shared-device pool that ties account-takeover rows into a fraud ring.
package device

import (
	"fmt"
	"sort"

	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/randx"
)

var (
	osNames   = []string{"iOS", "Android", "Windows", "MacOS"}
	osWeights = []float64{0.35, 0.40, 0.15, 0.10}

	browsers       = []string{"Safari", "Chrome", "Firefox", "Edge"}
	browserWeights = []float64{0.30, 0.50, 0.10, 0.10}

	deviceTypes       = []domain.DeviceType{domain.DeviceMobile, domain.DeviceTablet, domain.DeviceDesktop}
	deviceTypeWeights = []float64{0.65, 0.10, 0.25}

	resolutions = []string{"1920x1080", "1366x768", "375x667", "414x896"}
)

// Reuse and churn probabilities.
const (
	ringJoinProb  = 0.30 // account-takeover row moves to a ring device
	ringReuseProb = 0.60 // join an existing ring device instead of minting one
	churnProb     = 0.05 // customer re-provisions after this row
	fraudVPNProb  = 0.65
	legitVPNProb  = 0.08
	emulatorProb  = 0.35
)

// profile is a customer's current device identity.
type profile struct {
	deviceID string
	os       string
	browser  string
}

// Generator walks transactions in stream order and keeps per-customer device
// assignments between rows.
type Generator struct {
	rng      *randx.Rand
	profiles map[string]*profile
	ringIDs  []string // ring devices in mint order, sampled for reuse

	osPick      *randx.Cumulative
	browserPick *randx.Cumulative
	typePick    *randx.Cumulative
}

func NewGenerator(rng *randx.Rand) *Generator {
	return &Generator{
		rng:         rng,
		profiles:    make(map[string]*profile),
		osPick:      randx.NewCumulative(osWeights),
		browserPick: randx.NewCumulative(browserWeights),
		typePick:    randx.NewCumulative(deviceTypeWeights),
	}
}

// Generate emits one fingerprint per transaction, in input order. The
// DeviceUserCount column counts distinct customers per device over the whole
// run, so it is joined in after the pass completes.
func (g *Generator) Generate(txns []*domain.Transaction) []*domain.Device {
	usersByDevice := make(map[string]map[string]bool)
	devices := make([]*domain.Device, 0, len(txns))

	for _, tx := range txns {
		p := g.profiles[tx.CustomerID]
		if p == nil {
			p = &profile{
				deviceID: fmt.Sprintf("DEV_%08d", len(g.profiles)),
				os:       osNames[g.osPick.Sample(g.rng)],
				browser:  browsers[g.browserPick.Sample(g.rng)],
			}
			g.profiles[tx.CustomerID] = p
		}

		// Organized fraud: takeover rows migrate onto shared ring devices,
		// the overlap is what makes the ring detectable.
		if tx.FraudType == domain.FraudAccountTakeover && g.rng.Hit(ringJoinProb) {
			p.deviceID = g.ringDevice()
		}

		users := usersByDevice[p.deviceID]
		if users == nil {
			users = make(map[string]bool)
			usersByDevice[p.deviceID] = users
		}
		users[tx.CustomerID] = true

		// Churn is decided now but takes effect on the next row; this row
		// still carries the old device with the changed flag set.
		changed := g.rng.Hit(churnProb)

		isVPN, isEmulator := false, false
		if tx.IsFraud {
			isVPN = g.rng.Hit(fraudVPNProb)
			isEmulator = g.rng.Hit(emulatorProb)
		} else {
			isVPN = g.rng.Hit(legitVPNProb)
		}

		devices = append(devices, &domain.Device{
			TransactionID:    tx.TransactionID,
			DeviceID:         p.deviceID,
			DeviceType:       deviceTypes[g.typePick.Sample(g.rng)],
			OS:               p.os,
			Browser:          p.browser,
			IPAddress:        g.ipv4(),
			IsVPN:            isVPN,
			IsEmulator:       isEmulator,
			DeviceChanged:    changed,
			ScreenResolution: resolutions[g.rng.Intn(len(resolutions))],
			Language:         "fr-FR",
			Timezone:         "Europe/Paris",
			UserAgent:        fmt.Sprintf("Mozilla/5.0 (%s) %s", p.os, p.browser),
		})

		if changed {
			g.profiles[tx.CustomerID] = &profile{
				deviceID: fmt.Sprintf("DEV_%08d", g.rng.IntBetween(100000, 999999)),
				os:       osNames[g.rng.Intn(len(osNames))],
				browser:  browsers[g.rng.Intn(len(browsers))],
			}
		}
	}

	for _, d := range devices {
		d.DeviceUserCount = len(usersByDevice[d.DeviceID])
	}
	return devices
}

// ringDevice reuses an existing shared device or mints the next one.
func (g *Generator) ringDevice() string {
	if len(g.ringIDs) > 0 && g.rng.Hit(ringReuseProb) {
		return g.ringIDs[g.rng.Intn(len(g.ringIDs))]
	}
	id := fmt.Sprintf("DEV_FRAUD_%05d", len(g.ringIDs))
	g.ringIDs = append(g.ringIDs, id)
	return id
}

func (g *Generator) ipv4() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rng.IntBetween(1, 223), g.rng.Intn(256), g.rng.Intn(256), g.rng.IntBetween(1, 254))
}

// SharedDeviceIDs lists devices used by more than one customer, sorted for
// stable reporting output.
func SharedDeviceIDs(devices []*domain.Device) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, d := range devices {
		if d.DeviceUserCount > 1 && !seen[d.DeviceID] {
			seen[d.DeviceID] = true
			ids = append(ids, d.DeviceID)
		}
	}
	sort.Strings(ids)
	return ids
}
