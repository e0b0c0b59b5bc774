package advice

import "github.com/yurifrl/finscore/pkg/scoring"

// Tips returns up to four tips: EMI burden, savings, expense ratio and
// emergency fund. A tip is omitted when its input is unavailable.
func Tips(m scoring.Metrics) []string {
	tips := make([]string, 0, 4)

	if m.DTI != nil {
		switch dti := *m.DTI; {
		case dti > 0.5:
			tips = append(tips, "Your EMI burden is very high (>50% of income). Avoid new loans and try to prepay high-interest debt.")
		case dti > 0.36:
			tips = append(tips, "Your EMIs are on the higher side. Be careful before taking new loans.")
		default:
			tips = append(tips, "Your EMI to income ratio looks healthy. Try to maintain this level when taking new credit.")
		}
	}

	switch {
	case m.Savings <= 0:
		tips = append(tips, "You are not generating positive savings. Review discretionary expenses for possible cuts.")
	case m.SavingsRate != nil && *m.SavingsRate < 0.1:
		tips = append(tips, "Your savings rate is low. Aim to save at least 10-15% of your income.")
	case m.SavingsRate != nil && *m.SavingsRate < 0.2:
		tips = append(tips, "Your savings rate is decent. Target 20% for stronger financial stability.")
	default:
		tips = append(tips, "Your savings rate looks good. Continue this habit and channel it into SIPs / long-term investments.")
	}

	if m.Income > 0 {
		switch ratio := m.Expense / m.Income; {
		case ratio > 0.7:
			tips = append(tips, "More than 70% of your income is going into expenses. Try to optimise lifestyle & fixed costs.")
		case ratio > 0.5:
			tips = append(tips, "Expenses are slightly high. Track your monthly spends and cut down non-essential items.")
		default:
			tips = append(tips, "Your expenses are within a healthy range relative to income.")
		}
	}

	if m.Expense > 0 {
		switch months := m.Savings / m.Expense; {
		case months < 1:
			tips = append(tips, "You have less than 1 month of expenses as buffer. Build an emergency fund first.")
		case months < 3:
			tips = append(tips, "Try to build at least 3 months of expenses as an emergency fund before aggressive investing.")
		default:
			tips = append(tips, "Your emergency buffer looks reasonable. You can focus more on long-term investments.")
		}
	}

	return tips
}
