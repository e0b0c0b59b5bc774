package advice

import "github.com/yurifrl/finscore/pkg/scoring"

const starterSIP = 500.0

type RiskProfile string

const (
	Conservative RiskProfile = "conservative"
	Balanced     RiskProfile = "balanced"
	Aggressive   RiskProfile = "aggressive"
)

type SIP struct {
	ShouldInvest bool        `json:"should_invest"`
	Reason       string      `json:"reason"`
	SuggestedSIP float64     `json:"suggested_sip"`
	RiskProfile  RiskProfile `json:"risk_profile,omitempty"`
}

// RecommendSIP sizes a monthly SIP from savings: half of savings capped at
// 20% of income, at least 1000 and at most 30% of income.
func RecommendSIP(m scoring.Metrics) SIP {
	if m.Income <= 0 || m.SavingsRate == nil {
		return SIP{Reason: "Unable to detect stable income and savings from your data."}
	}
	if m.Savings <= 0 {
		return SIP{Reason: "Your net savings are negative. Focus on reducing expenses or EMIs before starting a SIP."}
	}

	rate := *m.SavingsRate
	if rate < 0.05 {
		return SIP{
			ShouldInvest: true,
			Reason:       "Your savings are low. Start with a small SIP to build the habit while improving savings.",
			SuggestedSIP: starterSIP,
			RiskProfile:  Conservative,
		}
	}

	raw := min(m.Savings*0.5, m.Income*0.2)
	suggested := max(1000, min(raw, m.Income*0.3))

	risk := Conservative
	switch {
	case rate > 0.3:
		risk = Aggressive
	case rate > 0.15:
		risk = Balanced
	}

	return SIP{
		ShouldInvest: true,
		Reason:       "You have positive savings. A portion of this can be allocated to disciplined SIP investments.",
		SuggestedSIP: round2(suggested),
		RiskProfile:  risk,
	}
}
