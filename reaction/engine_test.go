package reaction

import (
	"strings"
	"testing"

	"finance-advisor/api/models"
)

func TestReactExpenseRuleOrder(t *testing.T) {
	e := NewEngine()
	profile := models.UserProfile{Name: "Aziz"}

	tests := []struct {
		name     string
		expense  models.Expense
		wantOK   bool
		contains string
	}{
		{
			name:     "education keyword",
			expense:  models.Expense{Description: "Go programming course", Amount: 500000, Category: models.CategoryEducation},
			wantOK:   true,
			contains: "human capital",
		},
		{
			name:     "education beats coffee when both match",
			expense:  models.Expense{Description: "coffee tasting course", Amount: 50000},
			wantOK:   true,
			contains: "human capital",
		},
		{
			name:     "expensive coffee",
			expense:  models.Expense{Description: "Starbucks latte", Amount: 45000},
			wantOK:   true,
			contains: "45,000 UZS",
		},
		{
			name:    "cheap coffee passes the threshold check and nothing else fires",
			expense: models.Expense{Description: "coffee", Amount: 15000},
			wantOK:  false,
		},
		{
			name:    "coffee at exactly the threshold does not fire",
			expense: models.Expense{Description: "latte", Amount: CoffeeAmountThreshold},
			wantOK:  false,
		},
		{
			name:     "taxi",
			expense:  models.Expense{Description: "Yandex ride home", Amount: 30000},
			wantOK:   true,
			contains: "Taxi again",
		},
		{
			name:     "high spend",
			expense:  models.Expense{Description: "new phone", Amount: 1500000, Category: models.CategoryShopping},
			wantOK:   true,
			contains: "Huge spend",
		},
		{
			name:    "high housing spend is exempt",
			expense: models.Expense{Description: "rent", Amount: 5000000, Category: models.CategoryHousing},
			wantOK:  false,
		},
		{
			name:    "ordinary expense",
			expense: models.Expense{Description: "groceries", Amount: 100000, Category: models.CategoryFood},
			wantOK:  false,
		},
		{
			name:     "keyword match is case insensitive",
			expense:  models.Expense{Description: "COFFEE BEANS", Amount: 25000},
			wantOK:   true,
			contains: "coffee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := e.React(ExpenseAdded(tt.expense), profile, models.LanguageEN)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (msg=%q)", ok, tt.wantOK, msg)
			}
			if ok && !strings.Contains(msg, tt.contains) {
				t.Errorf("message %q does not contain %q", msg, tt.contains)
			}
		})
	}
}

func TestReactDeterministic(t *testing.T) {
	e := NewEngine()
	ev := ExpenseAdded(models.Expense{Description: "Starbucks", Amount: 30000})
	profile := models.UserProfile{Name: "Aziz"}

	first, ok := e.React(ev, profile, models.LanguageEN)
	if !ok {
		t.Fatal("expected a reaction")
	}
	for i := 0; i < 5; i++ {
		again, ok := e.React(ev, profile, models.LanguageEN)
		if !ok || again != first {
			t.Fatalf("run %d produced %q, want %q", i, again, first)
		}
	}
}

func TestReactLoan(t *testing.T) {
	e := NewEngine()
	profile := models.UserProfile{}

	msg, ok := e.React(LoanAdded(models.Loan{InterestRate: 5}), profile, models.LanguageEN)
	if !ok || !strings.Contains(msg, "HARAM") {
		t.Errorf("interest-bearing loan: got (%q, %v), want riba warning", msg, ok)
	}
	if !strings.Contains(msg, "5%") {
		t.Errorf("message %q should carry the rate", msg)
	}

	msg, ok = e.React(LoanAdded(models.Loan{InterestRate: 0}), profile, models.LanguageEN)
	if !ok || !strings.Contains(msg, "repayment plan") {
		t.Errorf("zero-interest loan: got (%q, %v), want generic caution", msg, ok)
	}
}

func TestReactLending(t *testing.T) {
	e := NewEngine()
	profile := models.UserProfile{}

	msg, ok := e.React(LendingAdded(models.Lending{ExpectedInterest: 10}), profile, models.LanguageEN)
	if !ok || !strings.Contains(msg, "Riba") {
		t.Errorf("interest-expecting lending: got (%q, %v), want riba warning", msg, ok)
	}

	msg, ok = e.React(LendingAdded(models.Lending{}), profile, models.LanguageEN)
	if !ok || !strings.Contains(msg, "Qard Hasan") {
		t.Errorf("plain lending: got (%q, %v), want encouragement", msg, ok)
	}
}

func TestReactGoalInflation(t *testing.T) {
	e := NewEngine()
	goal := models.Goal{Name: "Umrah", TargetAmount: 1000000}

	msg, ok := e.React(GoalAdded(goal), models.UserProfile{}, models.LanguageEN)
	if !ok {
		t.Fatal("expected a goal reaction")
	}
	if !strings.Contains(msg, "Umrah") || !strings.Contains(msg, "1,100,000 UZS") {
		t.Errorf("message %q should quote the goal and the inflated target", msg)
	}
}

func TestReactIncomeNeverComments(t *testing.T) {
	e := NewEngine()
	if msg, ok := e.React(IncomeAdded(), models.UserProfile{}, models.LanguageEN); ok {
		t.Errorf("income event produced %q, want silence", msg)
	}
}

func TestReactLanguageVariants(t *testing.T) {
	e := NewEngine()
	ev := LendingAdded(models.Lending{})

	tests := []struct {
		lang     models.Language
		contains string
	}{
		{models.LanguageEN, "great deed"},
		{models.LanguageUZ, "savobli ish"},
		{models.LanguageRU, "благое дело"},
	}

	for _, tt := range tests {
		msg, ok := e.React(ev, models.UserProfile{}, tt.lang)
		if !ok || !strings.Contains(msg, tt.contains) {
			t.Errorf("lang %s: got (%q, %v), want substring %q", tt.lang, msg, ok, tt.contains)
		}
	}
}

func TestZeroEngineNeverReacts(t *testing.T) {
	var e Engine
	if msg, ok := e.React(ExpenseAdded(models.Expense{Description: "taxi", Amount: 100000}), models.UserProfile{}, models.LanguageEN); ok {
		t.Errorf("zero engine produced %q", msg)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 UZS"},
		{999, "999 UZS"},
		{1000, "1,000 UZS"},
		{1250000, "1,250,000 UZS"},
		{-45000, "-45,000 UZS"},
		{1234567.8, "1,234,568 UZS"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
