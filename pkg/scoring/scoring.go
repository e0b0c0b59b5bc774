// Package scoring aggregates classified transactions into cash-flow totals
// and a 0-100 financial health score.
package scoring

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yurifrl/finscore/pkg/models"
)

const (
	baseScore     = 50
	noIncomeScore = 20
	inflowFloor   = 90
)

// Metrics are the aggregated totals and ratios behind a score. The ratios are
// nil when there is no income to divide by.
type Metrics struct {
	Income      float64  `json:"income"`
	Expense     float64  `json:"expense"`
	EMI         float64  `json:"emi"`
	Investment  float64  `json:"investment"`
	TotalOutgo  float64  `json:"total_outgo"`
	Savings     float64  `json:"savings"`
	DTI         *float64 `json:"dti"`
	SavingsRate *float64 `json:"savings_rate"`
	OutgoRatio  *float64 `json:"outgo_ratio"`
}

type Result struct {
	Score   int     `json:"score"`
	Metrics Metrics `json:"metrics"`
}

type bucket int

const (
	bucketNone bucket = iota
	bucketIncome
	bucketExpense
	bucketEMI
	bucketInvestment
)

var categoryBuckets = map[string]bucket{
	"income":          bucketIncome,
	"salary":          bucketIncome,
	"stipend":         bucketIncome,
	"inflow":          bucketIncome,
	"emi":             bucketEMI,
	"loan_emi":        bucketEMI,
	"loan":            bucketEMI,
	"credit_card_emi": bucketEMI,
	"home_loan":       bucketEMI,
	"investment":      bucketInvestment,
	"sip":             bucketInvestment,
	"mutual_fund":     bucketInvestment,
	"expense":         bucketExpense,
}

func bucketOf(tx models.Transaction) bucket {
	if b, ok := categoryBuckets[strings.ToLower(string(tx.Category))]; ok {
		return b
	}
	switch tx.Type {
	case models.Credit:
		return bucketIncome
	case models.Debit:
		return bucketExpense
	}
	return bucketNone
}

// Score computes metrics and the score from scratch for txs. Records with a
// non-positive or missing amount are ignored.
func Score(txs []models.Transaction) Result {
	var income, expense, emi, investment decimal.Decimal
	hasDebit := false

	for _, tx := range txs {
		if tx.Type == models.Debit {
			hasDebit = true
		}
		if tx.Value() <= 0 {
			continue
		}
		amount := decimal.NewFromFloat(tx.Value())
		switch bucketOf(tx) {
		case bucketIncome:
			income = income.Add(amount)
		case bucketExpense:
			expense = expense.Add(amount)
		case bucketEMI:
			emi = emi.Add(amount)
		case bucketInvestment:
			investment = investment.Add(amount)
		}
	}

	outgo := expense.Add(emi).Add(investment)
	savings := income.Sub(outgo)
	metrics := Metrics{
		Income:     money(income),
		Expense:    money(expense),
		EMI:        money(emi),
		Investment: money(investment),
		TotalOutgo: money(outgo),
		Savings:    money(savings),
	}

	if !income.IsPositive() {
		return Result{Score: noIncomeScore, Metrics: metrics}
	}

	dti := emi.Div(income)
	savingsRate := decimal.Max(decimal.Zero, savings).Div(income)
	outgoRatio := outgo.Div(income)
	metrics.DTI = ratio(dti)
	metrics.SavingsRate = ratio(savingsRate)
	metrics.OutgoRatio = ratio(outgoRatio)

	score := baseScore +
		dtiPoints(dti.InexactFloat64()) +
		savingsPoints(savings.IsPositive(), savingsRate.InexactFloat64()) +
		outgoPoints(outgoRatio.InexactFloat64())

	if !hasDebit && score < inflowFloor {
		score = inflowFloor
	}
	return Result{Score: clamp(score), Metrics: metrics}
}

func dtiPoints(dti float64) int {
	switch {
	case dti == 0:
		return 20
	case dti < 0.2:
		return 15
	case dti < 0.36:
		return 10
	case dti < 0.5:
		return 0
	default:
		return -10
	}
}

func savingsPoints(positive bool, rate float64) int {
	if !positive {
		return -10
	}
	switch {
	case rate >= 0.5:
		return 20
	case rate > 0.3:
		return 15
	case rate > 0.15:
		return 10
	case rate > 0.05:
		return 5
	default:
		return 0
	}
}

func outgoPoints(ratio float64) int {
	switch {
	case ratio <= 0.5:
		return 10
	case ratio <= 0.7:
		return 5
	default:
		return -5
	}
}

func clamp(score int) int {
	return max(0, min(100, score))
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func ratio(d decimal.Decimal) *float64 {
	return models.Float(d.Round(3).InexactFloat64())
}
