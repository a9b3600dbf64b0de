package metrics

import (
	"testing"
	"time"

	"finance-advisor/api/models"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func TestCalculateTaxes(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		want    models.TaxResult
	}{
		{
			name: "current month only",
			profile: models.UserProfile{
				TaxRate: 12,
				SalaryHistory: []models.SalaryEntry{
					{Amount: 8000000, Date: "2026-08-01"},
					{Amount: 2000000, Date: "2026-08-20"},
					{Amount: 9999999, Date: "2026-07-01"},
				},
			},
			want: models.TaxResult{TotalIncomeThisMonth: 10000000, EstimatedTax: 1200000, NetIncomeThisMonth: 8800000},
		},
		{
			name:    "no income",
			profile: models.UserProfile{TaxRate: 12},
			want:    models.TaxResult{},
		},
		{
			name: "zero tax rate",
			profile: models.UserProfile{
				TaxRate:       0,
				SalaryHistory: []models.SalaryEntry{{Amount: 500000, Date: "2026-08-05"}},
			},
			want: models.TaxResult{TotalIncomeThisMonth: 500000, EstimatedTax: 0, NetIncomeThisMonth: 500000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTaxes(tt.profile, testNow)
			if got != tt.want {
				t.Errorf("CalculateTaxes = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBudgetSplit(t *testing.T) {
	buckets := BucketMap{
		models.CategoryFood:          BucketNeeds,
		models.CategoryEntertainment: BucketWants,
		models.CategoryCharity:       BucketSavings,
	}
	expenses := []models.Expense{
		{Amount: 300000, Category: models.CategoryFood, Date: "2026-08-01"},
		{Amount: 100000, Category: models.CategoryEntertainment, Date: "2026-08-02"},
		{Amount: 50000, Category: models.CategoryCharity, Date: "2026-08-03"},
		{Amount: 70000, Category: "Mystery", Date: "2026-08-04"},
		{Amount: 999999, Category: models.CategoryFood, Date: "2026-07-31"},
	}

	got := BudgetSplit(expenses, buckets, testNow)
	if got.Needs != 300000 {
		t.Errorf("Needs = %v, want 300000", got.Needs)
	}
	if got.Wants != 170000 {
		t.Errorf("Wants = %v, want 170000 (unknown category lands in Wants)", got.Wants)
	}
	if got.Savings != 50000 {
		t.Errorf("Savings = %v, want 50000", got.Savings)
	}

	wantNeedsPct := 300000.0 / 470000.0 * 100
	if got.NeedsPct != wantNeedsPct {
		t.Errorf("NeedsPct = %v, want %v", got.NeedsPct, wantNeedsPct)
	}
}

func TestBudgetSplitEmptyMonth(t *testing.T) {
	got := BudgetSplit(nil, DefaultBucketMap(), testNow)
	if got.NeedsPct != 0 || got.WantsPct != 0 {
		t.Errorf("empty month should yield zero percentages, got %+v", got)
	}
}

func TestPayoffHorizon(t *testing.T) {
	tests := []struct {
		name      string
		debt      float64
		surplus   float64
		want      int
		wantNever bool
	}{
		{"exact division", 1000000, 250000, 4, false},
		{"rounds up", 1000000, 300000, 4, false},
		{"zero surplus", 1000000, 0, 0, true},
		{"negative surplus", 1000000, -50000, 0, true},
		{"no debt", 0, 250000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PayoffHorizon(tt.debt, tt.surplus)
			if got.Never != tt.wantNever {
				t.Fatalf("Never = %v, want %v", got.Never, tt.wantNever)
			}
			if !tt.wantNever && got.Months != tt.want {
				t.Errorf("Months = %d, want %d", got.Months, tt.want)
			}
		})
	}
}

func TestTotalDebtOverpaid(t *testing.T) {
	loans := []models.Loan{
		{OriginalAmount: 1000000, PaidAmount: 400000},
		{OriginalAmount: 500000, PaidAmount: 600000},
	}
	if got := TotalDebt(loans); got != 500000 {
		t.Errorf("TotalDebt = %v, want 500000 (overpaid loan subtracts)", got)
	}
}

func TestNetWorth(t *testing.T) {
	lendings := []models.Lending{{OriginalAmount: 250000, RepaidAmount: 50000}}
	loans := []models.Loan{{OriginalAmount: 400000, PaidAmount: 100000}}
	if got := NetWorth(500000, lendings, loans); got != 400000 {
		t.Errorf("NetWorth = %v, want 400000", got)
	}
}

func TestEmergencyFundFor(t *testing.T) {
	tests := []struct {
		name         string
		needs        float64
		savings      float64
		wantTarget   float64
		wantProgress float64
	}{
		{"halfway", 1000000, 1500000, 3000000, 50},
		{"capped at 100", 100000, 5000000, 300000, 100},
		{"no needs no zero division", 0, 0, 0, 0},
		{"no needs with savings caps", 0, 10, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmergencyFundFor(tt.needs, tt.savings)
			if got.Target != tt.wantTarget {
				t.Errorf("Target = %v, want %v", got.Target, tt.wantTarget)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", got.Progress, tt.wantProgress)
			}
		})
	}
}

func TestGoalProjection(t *testing.T) {
	if got := GoalProjection(1000000); got != 1100000 {
		t.Errorf("GoalProjection = %v, want 1100000", got)
	}
}

func TestMonthCategoryTotals(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 100, Category: models.CategoryFood, Date: "2026-08-01"},
		{Amount: 200, Category: models.CategoryFood, Date: "2026-08-15"},
		{Amount: 300, Category: models.CategoryTransport, Date: "2026-08-20"},
		{Amount: 400, Category: models.CategoryFood, Date: "2026-07-01"},
	}

	got := MonthCategoryTotals(expenses, testNow)
	if got["Food"] != 300 {
		t.Errorf("Food = %v, want 300", got["Food"])
	}
	if got["Transport"] != 300 {
		t.Errorf("Transport = %v, want 300", got["Transport"])
	}
	if _, ok := got["Housing"]; ok {
		t.Error("Housing should be absent, not zero")
	}
}

func TestCompute(t *testing.T) {
	state := models.PersistedState{
		Profile: models.UserProfile{
			TaxRate:        10,
			CurrentSavings: 500000,
			SalaryHistory:  []models.SalaryEntry{{Amount: 2000000, Date: "2026-08-01"}},
		},
		Expenses: []models.Expense{{Amount: 800000, Category: models.CategoryFood, Date: "2026-08-02"}},
		Loans:    []models.Loan{{OriginalAmount: 3000000}},
		Lendings: []models.Lending{{OriginalAmount: 200000}},
	}

	got := Compute(state, DefaultBucketMap(), testNow)

	if got.Tax.NetIncomeThisMonth != 1800000 {
		t.Errorf("NetIncomeThisMonth = %v, want 1800000", got.Tax.NetIncomeThisMonth)
	}
	if got.TotalMonthExpenses != 800000 {
		t.Errorf("TotalMonthExpenses = %v, want 800000", got.TotalMonthExpenses)
	}
	// surplus = 1800000 - 800000 = 1000000; debt 3000000 → 3 months
	if got.Payoff.Never || got.Payoff.Months != 3 {
		t.Errorf("Payoff = %+v, want 3 months", got.Payoff)
	}
	if got.NetWorth != 500000+200000-3000000 {
		t.Errorf("NetWorth = %v, want %v", got.NetWorth, 500000+200000-3000000)
	}
	if got.Emergency.Target != 2400000 {
		t.Errorf("Emergency.Target = %v, want 2400000", got.Emergency.Target)
	}
}
