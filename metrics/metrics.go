// Package metrics derives the financial summaries shown on every screen from
// the reconciled state. All functions are pure: they take a snapshot and a
// clock value and never touch persisted state.
package metrics

import (
	"math"
	"strings"
	"time"

	"finance-advisor/api/models"
)

// Bucket is one of the three 50/30/20 budgeting buckets.
type Bucket string

const (
	BucketNeeds   Bucket = "Needs"
	BucketWants   Bucket = "Wants"
	BucketSavings Bucket = "Savings"
)

// BucketMap assigns every expense category to exactly one bucket. It is
// passed in explicitly so tests can substitute fixtures; unknown categories
// fall into Wants.
type BucketMap map[models.ExpenseCategory]Bucket

// DefaultBucketMap is the production category assignment.
func DefaultBucketMap() BucketMap {
	return BucketMap{
		models.CategoryFood:          BucketNeeds,
		models.CategoryTransport:     BucketNeeds,
		models.CategoryHousing:       BucketNeeds,
		models.CategoryHealth:        BucketNeeds,
		models.CategoryEducation:     BucketNeeds,
		models.CategoryEntertainment: BucketWants,
		models.CategoryShopping:      BucketWants,
		models.CategoryOther:         BucketWants,
		models.CategoryCharity:       BucketSavings,
	}
}

// GoalInflationBuffer is the fixed projection multiplier displayed alongside
// each goal. Informational only; never persisted or used in payoff math.
const GoalInflationBuffer = 1.10

// monthPrefix gives the ISO year-month ("2025-08") used to bucket entries
// into the current calendar month by date-string prefix.
func monthPrefix(now time.Time) string {
	return now.Format("2006-01")
}

// CalculateTaxes sums the current month's salary entries and applies the
// profile tax rate.
func CalculateTaxes(p models.UserProfile, now time.Time) models.TaxResult {
	prefix := monthPrefix(now)
	var total float64
	for _, entry := range p.SalaryHistory {
		if strings.HasPrefix(entry.Date, prefix) {
			total += entry.Amount
		}
	}
	tax := total * (p.TaxRate / 100)
	return models.TaxResult{
		TotalIncomeThisMonth: total,
		EstimatedTax:         tax,
		NetIncomeThisMonth:   total - tax,
	}
}

// BudgetSummary is the Needs/Wants split of the current month's expenses.
type BudgetSummary struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
	// Percentages are of Needs+Wants, denominator floored at 1.
	NeedsPct float64 `json:"needsPct"`
	WantsPct float64 `json:"wantsPct"`
}

// BudgetSplit buckets the current month's expenses via the supplied map.
func BudgetSplit(expenses []models.Expense, buckets BucketMap, now time.Time) BudgetSummary {
	prefix := monthPrefix(now)
	var out BudgetSummary
	for _, e := range expenses {
		if !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		bucket, ok := buckets[e.Category]
		if !ok {
			bucket = BucketWants
		}
		switch bucket {
		case BucketNeeds:
			out.Needs += e.Amount
		case BucketSavings:
			out.Savings += e.Amount
		default:
			out.Wants += e.Amount
		}
	}
	tracked := out.Needs + out.Wants
	if tracked < 1 {
		tracked = 1
	}
	out.NeedsPct = out.Needs / tracked * 100
	out.WantsPct = out.Wants / tracked * 100
	return out
}

// MonthCategoryTotals rebuilds the profile's derived category→amount cache
// for the current month.
func MonthCategoryTotals(expenses []models.Expense, now time.Time) map[string]float64 {
	prefix := monthPrefix(now)
	totals := map[string]float64{}
	for _, e := range expenses {
		if strings.HasPrefix(e.Date, prefix) {
			totals[string(e.Category)] += e.Amount
		}
	}
	return totals
}

// TotalMonthExpenses is the sum across all categories for the current month.
func TotalMonthExpenses(expenses []models.Expense, now time.Time) float64 {
	prefix := monthPrefix(now)
	var total float64
	for _, e := range expenses {
		if strings.HasPrefix(e.Date, prefix) {
			total += e.Amount
		}
	}
	return total
}

// TotalDebt sums remaining loan balances. Overpaid loans subtract.
func TotalDebt(loans []models.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.Remaining()
	}
	return total
}

// TotalLent sums outstanding lending balances.
func TotalLent(lendings []models.Lending) float64 {
	var total float64
	for _, l := range lendings {
		total += l.Outstanding()
	}
	return total
}

// DebtPayoff is the payoff horizon. Never is set when there is no monthly
// surplus to direct at debt; Months is meaningless in that case.
type DebtPayoff struct {
	TotalDebt      float64 `json:"totalDebt"`
	MonthlySurplus float64 `json:"monthlySurplus"`
	Months         int     `json:"months"`
	Never          bool    `json:"never"`
}

// PayoffHorizon computes ceil(totalDebt / monthlySurplus) months, or the
// Never sentinel when the surplus is zero or negative.
func PayoffHorizon(totalDebt, monthlySurplus float64) DebtPayoff {
	out := DebtPayoff{TotalDebt: totalDebt, MonthlySurplus: monthlySurplus}
	if monthlySurplus <= 0 {
		out.Never = true
		return out
	}
	out.Months = int(math.Ceil(totalDebt / monthlySurplus))
	return out
}

// EmergencyFund is the 3-months-of-needs target and progress toward it.
type EmergencyFund struct {
	Target float64 `json:"target"`
	// Progress is a percentage capped at 100.
	Progress float64 `json:"progress"`
}

// EmergencyFundFor targets three months of Needs spending. The denominator is
// floored at 1 so a month with no tracked needs never divides by zero.
func EmergencyFundFor(monthlyNeeds, currentSavings float64) EmergencyFund {
	target := monthlyNeeds * 3
	denom := target
	if denom < 1 {
		denom = 1
	}
	progress := currentSavings / denom * 100
	if progress > 100 {
		progress = 100
	}
	return EmergencyFund{Target: target, Progress: progress}
}

// NetWorth is savings plus money owed to the user minus money the user owes.
func NetWorth(currentSavings float64, lendings []models.Lending, loans []models.Loan) float64 {
	return currentSavings + TotalLent(lendings) - TotalDebt(loans)
}

// GoalProjection applies the fixed 10% inflation buffer to a goal target.
func GoalProjection(targetAmount float64) float64 {
	return targetAmount * GoalInflationBuffer
}

// Summary bundles every derived figure recomputed after a mutation.
type Summary struct {
	Tax                models.TaxResult `json:"tax"`
	Budget             BudgetSummary    `json:"budget"`
	Payoff             DebtPayoff       `json:"payoff"`
	Emergency          EmergencyFund    `json:"emergency"`
	NetWorth           float64          `json:"netWorth"`
	TotalMonthExpenses float64          `json:"totalMonthExpenses"`
}

// Compute derives the full summary from a state snapshot.
func Compute(state models.PersistedState, buckets BucketMap, now time.Time) Summary {
	tax := CalculateTaxes(state.Profile, now)
	budget := BudgetSplit(state.Expenses, buckets, now)
	spent := TotalMonthExpenses(state.Expenses, now)
	surplus := tax.NetIncomeThisMonth - spent
	return Summary{
		Tax:                tax,
		Budget:             budget,
		Payoff:             PayoffHorizon(TotalDebt(state.Loans), surplus),
		Emergency:          EmergencyFundFor(budget.Needs, state.Profile.CurrentSavings),
		NetWorth:           NetWorth(state.Profile.CurrentSavings, state.Lendings, state.Loans),
		TotalMonthExpenses: spent,
	}
}
