// Package advice turns score metrics into loan, SIP and budgeting advice.
// It never looks at transactions.
package advice

import (
	"github.com/shopspring/decimal"
	"github.com/yurifrl/finscore/pkg/scoring"
)

// Config holds the knobs of the loan recommendation.
type Config struct {
	AnnualRate   float64 `mapstructure:"annual_rate"`
	Tenures      []int   `mapstructure:"tenures"`
	SafeEMIRatio float64 `mapstructure:"safe_emi_ratio"`
	EMIStep      float64 `mapstructure:"emi_step"`
}

func DefaultConfig() Config {
	return Config{
		AnnualRate:   0.10,
		Tenures:      []int{3, 5, 10},
		SafeEMIRatio: 0.4,
		EMIStep:      500,
	}
}

type Advice struct {
	Loan Loan     `json:"loan"`
	SIP  SIP      `json:"sip"`
	Tips []string `json:"tips"`
}

type Advisor struct {
	cfg Config
}

// New returns an Advisor. Zero fields of cfg take their default.
func New(cfg Config) *Advisor {
	def := DefaultConfig()
	if cfg.AnnualRate <= 0 {
		cfg.AnnualRate = def.AnnualRate
	}
	if len(cfg.Tenures) == 0 {
		cfg.Tenures = def.Tenures
	}
	if cfg.SafeEMIRatio <= 0 {
		cfg.SafeEMIRatio = def.SafeEMIRatio
	}
	if cfg.EMIStep <= 0 {
		cfg.EMIStep = def.EMIStep
	}
	return &Advisor{cfg: cfg}
}

// Build combines the three independent recommendations.
func (a *Advisor) Build(m scoring.Metrics) Advice {
	return Advice{
		Loan: a.Loan(m),
		SIP:  RecommendSIP(m),
		Tips: Tips(m),
	}
}

// Build uses DefaultConfig.
func Build(m scoring.Metrics) Advice {
	return New(DefaultConfig()).Build(m)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
