package advice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/scoring"
)

func healthy() scoring.Metrics {
	return scoring.Metrics{
		Income:      10000,
		Expense:     3000,
		EMI:         0,
		Savings:     7000,
		DTI:         models.Float(0),
		SavingsRate: models.Float(0.7),
		OutgoRatio:  models.Float(0.3),
	}
}

func TestLoanAffordable(t *testing.T) {
	loan := New(DefaultConfig()).Loan(healthy())

	require.True(t, loan.CanTakeLoan)
	assert.Equal(t, 4000.0, loan.SuggestedNewEMI)
	require.Len(t, loan.ApproxLoanAmounts, 3)
	want := map[int]float64{3: 123964.94, 5: 188261.48, 10: 302684.65}
	for _, opt := range loan.ApproxLoanAmounts {
		assert.InDelta(t, want[opt.TenureYears], opt.ApproxLoanAmount, 0.01, "tenure %d", opt.TenureYears)
	}
}

func TestLoanRefusals(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		name   string
		modify func(*scoring.Metrics)
		reason string
	}{
		{"no income", func(m *scoring.Metrics) { m.Income = 0 }, reasonNoIncome},
		{"no dti", func(m *scoring.Metrics) { m.DTI = nil }, reasonNoIncome},
		{"high dti", func(m *scoring.Metrics) { m.DTI = models.Float(0.6) }, reasonHighDTI},
		{"no savings", func(m *scoring.Metrics) { m.Savings = 0 }, reasonNoSavings},
		{"no headroom", func(m *scoring.Metrics) { m.EMI = 4000; m.DTI = models.Float(0.4) }, reasonNoHeadroom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthy()
			tt.modify(&m)
			loan := a.Loan(m)
			assert.False(t, loan.CanTakeLoan)
			assert.Equal(t, tt.reason, loan.Reason)
			assert.Zero(t, loan.SuggestedNewEMI)
			assert.NotNil(t, loan.ApproxLoanAmounts)
			assert.Empty(t, loan.ApproxLoanAmounts)
		})
	}
}

func TestLoanEMIStepRoundsHalfToEven(t *testing.T) {
	m := healthy()
	m.EMI = 750 // headroom 3250
	m.DTI = models.Float(0.075)

	assert.Equal(t, 3000.0, New(DefaultConfig()).Loan(m).SuggestedNewEMI)
}

func TestEMIToLoan(t *testing.T) {
	r := 0.10 / 12
	closed := 5000 * (1 - math.Pow(1+r, -60)) / r

	assert.InDelta(t, closed, EMIToLoan(5000, 0.10, 5), 0.005)
	assert.InDelta(t, 235326.85, round2(EMIToLoan(5000, 0.10, 5)), 0.001)
	assert.Equal(t, 6000.0, EMIToLoan(100, 0, 5))
	assert.Zero(t, EMIToLoan(0, 0.10, 5))
}

func TestRecommendSIP(t *testing.T) {
	tests := []struct {
		name    string
		metrics scoring.Metrics
		invest  bool
		amount  float64
		risk    RiskProfile
	}{
		{"no income", scoring.Metrics{}, false, 0, ""},
		{"negative savings", scoring.Metrics{Income: 1000, Savings: -10, SavingsRate: models.Float(0)}, false, 0, ""},
		{"starter", scoring.Metrics{Income: 10000, Savings: 300, SavingsRate: models.Float(0.03)}, true, 500, Conservative},
		{"floor of 1000", scoring.Metrics{Income: 10000, Savings: 1000, SavingsRate: models.Float(0.1)}, true, 1000, Conservative},
		{"balanced", scoring.Metrics{Income: 10000, Savings: 2500, SavingsRate: models.Float(0.25)}, true, 1250, Balanced},
		{"aggressive capped at 20%", healthy(), true, 2000, Aggressive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sip := RecommendSIP(tt.metrics)
			assert.Equal(t, tt.invest, sip.ShouldInvest)
			assert.Equal(t, tt.amount, sip.SuggestedSIP)
			assert.Equal(t, tt.risk, sip.RiskProfile)
			assert.NotEmpty(t, sip.Reason)
		})
	}
}

func TestTips(t *testing.T) {
	assert.Equal(t, []string{
		"Your EMI to income ratio looks healthy. Try to maintain this level when taking new credit.",
		"Your savings rate looks good. Continue this habit and channel it into SIPs / long-term investments.",
		"Your expenses are within a healthy range relative to income.",
		"Try to build at least 3 months of expenses as an emergency fund before aggressive investing.",
	}, Tips(healthy()))

	strained := scoring.Metrics{
		Income:      1000,
		Expense:     800,
		EMI:         600,
		Savings:     -400,
		DTI:         models.Float(0.6),
		SavingsRate: models.Float(0),
	}
	assert.Equal(t, []string{
		"Your EMI burden is very high (>50% of income). Avoid new loans and try to prepay high-interest debt.",
		"You are not generating positive savings. Review discretionary expenses for possible cuts.",
		"More than 70% of your income is going into expenses. Try to optimise lifestyle & fixed costs.",
		"You have less than 1 month of expenses as buffer. Build an emergency fund first.",
	}, Tips(strained))

	// no income and no expense: only the savings tip applies
	assert.Len(t, Tips(scoring.Metrics{}), 1)
}

func TestBuildRefusesOnHighDTI(t *testing.T) {
	m := healthy()
	m.EMI = 6000
	m.DTI = models.Float(0.6)

	adv := Build(m)

	assert.False(t, adv.Loan.CanTakeLoan)
	assert.Equal(t, reasonHighDTI, adv.Loan.Reason)
	assert.True(t, adv.SIP.ShouldInvest)
	assert.NotEmpty(t, adv.Tips)
}

func TestNewFillsDefaults(t *testing.T) {
	a := New(Config{})
	assert.Equal(t, DefaultConfig(), a.cfg)
}
