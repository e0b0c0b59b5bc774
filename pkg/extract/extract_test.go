package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		found    bool
	}{
		{"Rs. 12,000.50 credited on 01/11/2025", 12000.50, true},
		{"Rs.245.70 debited", 245.70, true},
		{"INR 12000 on 01-Nov-2025.", 12000, true},
		{"Paid ₹1,250 to Swiggy", 1250, true},
		{"₹ 99", 99, true},
		{"Rs500 sent", 500, true},
		{"inr 1,25,000.00 received", 125000, true},
		{"balance is Rs.1500.00. Thanks", 1500, true},
		{"Rs 12, 000 credited", 12000, true},
		{"Rs.500, ok", 500, true},
		{"Rs.500 12/11/2025", 500, true},
		{"Debit of 500 from account", 0, false},
		{"worked 5 hours 30 mins", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Amount(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestAmountFirstMatchWins(t *testing.T) {
	got, ok := Amount("SBIN: Rs.500.00 debited at ATM. Your balance is Rs.1500.00")
	assert.True(t, ok)
	assert.Equal(t, 500.0, got)
}

func TestNumber(t *testing.T) {
	got, ok := Number("1,25,000.00")
	assert.True(t, ok)
	assert.Equal(t, 125000.0, got)

	_, ok = Number(",")
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	e := DateExtractor{Now: func() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) }}

	tests := []struct {
		input    string
		expected string
		found    bool
	}{
		{"Rs.500.00 debited on 21/11/2025 at ATM", "2025-11-21", true},
		{"credited on 05-11-2025", "2025-11-05", true},
		{"on 03/04/25", "2025-04-03", true},
		{"dated 11/21/2025", "2025-11-21", true},
		{"INR 12000 on 01-Nov-2025. Salary received.", "2025-11-01", true},
		{"1 Nov 2025 UPI", "2025-11-01", true},
		{"Nov 05, 2025", "2025-11-05", true},
		{"on 2nd December 2025", "2025-12-02", true},
		{"value date 2025-11-05", "2025-11-05", true},
		{"paid on 5 Nov", "2026-11-05", true},
		{"paid on 12.11.2025", "2025-11-12", true},
		{"31/02/2025 then 01/03/2025", "2025-03-01", true},
		{"Nov 5 2025", "2025-11-05", true},
		{"Rs 500 debited on 05 Nov 10:30", "2026-11-05", true},
		{"Rs.250 spent on 05-Nov 14:22 at Swiggy", "2026-11-05", true},
		{"Nov 10:30 reminder", "", false},
		{"Nov 2025 statement", "", false},
		{"Rs 500 debited at ATM", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := e.Extract(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPivotYear(t *testing.T) {
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, pivotYear(25, ref))
	assert.Equal(t, 1999, pivotYear(99, ref))
	assert.Equal(t, 2075, pivotYear(75, ref))
}
