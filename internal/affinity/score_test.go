package affinity

import (
	"testing"

	"shield-data-lab/internal/domain"
)

func customer(seg domain.Segment, pep bool) *domain.Customer {
	return &domain.Customer{CustomerID: "CUST_00000001", Segment: seg, IsPEP: pep}
}

func merchant(risk domain.RiskCategory, mcc string) *domain.Merchant {
	return &domain.Merchant{MerchantID: "MERCH_0000001", RiskCategory: risk, CategoryCode: mcc}
}

func TestScore_BaseMatrix(t *testing.T) {
	tests := []struct {
		segment domain.Segment
		risk    domain.RiskCategory
		want    float64
	}{
		{domain.SegmentBasic, domain.RiskLow, 0.9},
		{domain.SegmentBasic, domain.RiskHigh, 0.2},
		{domain.SegmentStandard, domain.RiskMedium, 0.9},
		{domain.SegmentPremium, domain.RiskHigh, 0.8},
		{domain.SegmentPrivate, domain.RiskHigh, 0.9},
	}

	for _, tt := range tests {
		got := Score(customer(tt.segment, false), merchant(tt.risk, "5411"))
		if got != tt.want {
			t.Errorf("Score(%s, %s) = %f, want %f", tt.segment, tt.risk, got, tt.want)
		}
	}
}

func TestScore_UnknownKeyDefaults(t *testing.T) {
	got := Score(customer("Unknown", false), merchant(domain.RiskLow, "5411"))
	if got != 0.5 {
		t.Errorf("expected default 0.5 for unknown segment, got %f", got)
	}
}

func TestScore_PEPAvoidsSensitiveSectors(t *testing.T) {
	plain := Score(customer(domain.SegmentPremium, false), merchant(domain.RiskHigh, "7995"))
	pep := Score(customer(domain.SegmentPremium, true), merchant(domain.RiskHigh, "7995"))

	if pep != plain*0.1 {
		t.Errorf("PEP score %f, want %f", pep, plain*0.1)
	}
}

func TestScore_BasicAvoidsPremiumSectors(t *testing.T) {
	got := Score(customer(domain.SegmentBasic, false), merchant(domain.RiskHigh, "5735"))
	want := 0.2 * 0.3
	if got != want {
		t.Errorf("Basic electronics score %f, want %f", got, want)
	}
}

func TestScore_InUnitInterval(t *testing.T) {
	segments := []domain.Segment{domain.SegmentBasic, domain.SegmentStandard, domain.SegmentPremium, domain.SegmentPrivate}
	risks := []domain.RiskCategory{domain.RiskLow, domain.RiskMedium, domain.RiskHigh}
	mccs := []string{"5411", "7995", "5735", "4121", "5999"}

	for _, seg := range segments {
		for _, risk := range risks {
			for _, mcc := range mccs {
				for _, pep := range []bool{false, true} {
					got := Score(customer(seg, pep), merchant(risk, mcc))
					if got < 0 || got > 1 {
						t.Fatalf("score %f outside [0,1] for %s/%s/%s pep=%v", got, seg, risk, mcc, pep)
					}
				}
			}
		}
	}
}
