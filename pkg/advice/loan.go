package advice

import (
	"math"

	"github.com/yurifrl/finscore/pkg/scoring"
)

const (
	reasonNoIncome       = "No stable income detected from transactions."
	reasonHighDTI        = "Your current EMI burden is already high (DTI > 50%). Focus on reducing debt first."
	reasonNoSavings      = "Your savings are negative or zero. Build some buffer before taking a new loan."
	reasonNoHeadroom     = "Your EMI + expenses are already using most of your income."
	reasonLoanAffordable = "Based on your current EMIs and income, you can safely take a new loan with the suggested EMI and tenures shown."
)

type LoanOption struct {
	TenureYears      int     `json:"tenure_years"`
	ApproxLoanAmount float64 `json:"approx_loan_amount"`
}

type Loan struct {
	CanTakeLoan       bool         `json:"can_take_loan"`
	Reason            string       `json:"reason"`
	SuggestedNewEMI   float64      `json:"suggested_new_emi"`
	ApproxLoanAmounts []LoanOption `json:"approx_loan_amounts"`
}

func refuseLoan(reason string) Loan {
	return Loan{Reason: reason, ApproxLoanAmounts: []LoanOption{}}
}

// Loan suggests a new EMI that keeps total EMIs within SafeEMIRatio of
// income, and the principal it would service for each tenure.
func (a *Advisor) Loan(m scoring.Metrics) Loan {
	if m.Income <= 0 || m.DTI == nil {
		return refuseLoan(reasonNoIncome)
	}
	if *m.DTI > 0.5 {
		return refuseLoan(reasonHighDTI)
	}
	if m.Savings <= 0 {
		return refuseLoan(reasonNoSavings)
	}
	available := m.Income*a.cfg.SafeEMIRatio - m.EMI
	if available <= 0 {
		return refuseLoan(reasonNoHeadroom)
	}

	emi := max(0, math.RoundToEven(available/a.cfg.EMIStep)*a.cfg.EMIStep)
	options := make([]LoanOption, 0, len(a.cfg.Tenures))
	for _, years := range a.cfg.Tenures {
		options = append(options, LoanOption{
			TenureYears:      years,
			ApproxLoanAmount: round2(EMIToLoan(emi, a.cfg.AnnualRate, years)),
		})
	}
	return Loan{
		CanTakeLoan:       true,
		Reason:            reasonLoanAffordable,
		SuggestedNewEMI:   round2(emi),
		ApproxLoanAmounts: options,
	}
}

// EMIToLoan is the principal repaid by a monthly emi over years at
// annualRate: emi * (1 - (1+r)^-n) / r with r monthly and n in months.
func EMIToLoan(emi, annualRate float64, years int) float64 {
	if emi <= 0 {
		return 0
	}
	r := annualRate / 12
	n := float64(years * 12)
	if r == 0 {
		return emi * n
	}
	return emi * (1 - math.Pow(1+r, -n)) / r
}
