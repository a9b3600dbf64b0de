// Package reaction produces at most one short, canned advisory message in
// response to a newly recorded financial entry. Matching is an explicit
// ordered list of predicate→producer pairs per event kind; the first match
// wins and rules never stack. The engine is stateless: it only ever reads the
// snapshot passed to it.
package reaction

import (
	"math"
	"strings"

	"finance-advisor/api/metrics"
	"finance-advisor/api/models"
)

// EventKind names the mutation that triggered the reaction check.
type EventKind string

const (
	EventExpense EventKind = "EXPENSE"
	EventIncome  EventKind = "INCOME"
	EventLoan    EventKind = "LOAN"
	EventLending EventKind = "LENDING"
	EventGoal    EventKind = "GOAL"
)

// Event is the newly recorded entry. Exactly one payload field is set,
// matching Kind.
type Event struct {
	Kind    EventKind
	Expense *models.Expense
	Loan    *models.Loan
	Lending *models.Lending
	Goal    *models.Goal
}

func ExpenseAdded(e models.Expense) Event { return Event{Kind: EventExpense, Expense: &e} }
func IncomeAdded() Event                  { return Event{Kind: EventIncome} }
func LoanAdded(l models.Loan) Event       { return Event{Kind: EventLoan, Loan: &l} }
func LendingAdded(l models.Lending) Event { return Event{Kind: EventLending, Lending: &l} }
func GoalAdded(g models.Goal) Event       { return Event{Kind: EventGoal, Goal: &g} }

// Fixed matching thresholds, in currency units.
const (
	CoffeeAmountThreshold = 20000
	HighSpendThreshold    = 1000000
)

var (
	educationKeywords = []string{"cline", "course", "book", "programming", "code", "skill", "university", "lesson"}
	coffeeKeywords    = []string{"coffee", "starbucks", "latte"}
	taxiKeywords      = []string{"taxi", "yandex"}
)

type rule struct {
	match   func(Event) bool
	produce func(Event, models.UserProfile, models.Language) string
}

// Engine evaluates the rule tables. Construct with NewEngine; the zero value
// has no rules and never reacts.
type Engine struct {
	rules map[EventKind][]rule
}

// NewEngine builds the production rule tables.
func NewEngine() *Engine {
	e := &Engine{rules: map[EventKind][]rule{}}

	e.rules[EventExpense] = []rule{
		{
			match: func(ev Event) bool {
				return containsAny(ev.Expense.Description, educationKeywords)
			},
			produce: func(ev Event, _ models.UserProfile, lang models.Language) string {
				return msgEducationSpend.render(lang, ev.Expense.Description)
			},
		},
		{
			match: func(ev Event) bool {
				return containsAny(ev.Expense.Description, coffeeKeywords) &&
					ev.Expense.Amount > CoffeeAmountThreshold
			},
			produce: func(ev Event, _ models.UserProfile, lang models.Language) string {
				return msgCoffeeHabit.render(lang, FormatAmount(ev.Expense.Amount))
			},
		},
		{
			match: func(ev Event) bool {
				return containsAny(ev.Expense.Description, taxiKeywords)
			},
			produce: func(_ Event, _ models.UserProfile, lang models.Language) string {
				return msgTaxiHabit.render(lang)
			},
		},
		{
			match: func(ev Event) bool {
				return ev.Expense.Amount > HighSpendThreshold &&
					ev.Expense.Category != models.CategoryHousing
			},
			produce: func(ev Event, profile models.UserProfile, lang models.Language) string {
				return msgHighSpend.render(lang, FormatAmount(ev.Expense.Amount), profile.Name)
			},
		},
	}

	e.rules[EventLoan] = []rule{
		{
			match: func(ev Event) bool { return ev.Loan.InterestRate > 0 },
			produce: func(ev Event, _ models.UserProfile, lang models.Language) string {
				return msgLoanInterest.render(lang, ev.Loan.InterestRate)
			},
		},
		{
			match: func(Event) bool { return true },
			produce: func(_ Event, _ models.UserProfile, lang models.Language) string {
				return msgLoanGeneric.render(lang)
			},
		},
	}

	e.rules[EventLending] = []rule{
		{
			match: func(ev Event) bool { return ev.Lending.ExpectedInterest > 0 },
			produce: func(_ Event, _ models.UserProfile, lang models.Language) string {
				return msgLendingInterest.render(lang)
			},
		},
		{
			match: func(Event) bool { return true },
			produce: func(_ Event, _ models.UserProfile, lang models.Language) string {
				return msgLendingGeneric.render(lang)
			},
		},
	}

	e.rules[EventGoal] = []rule{
		{
			match: func(Event) bool { return true },
			produce: func(ev Event, _ models.UserProfile, lang models.Language) string {
				inflated := math.Round(metrics.GoalProjection(ev.Goal.TargetAmount))
				return msgGoalSet.render(lang, ev.Goal.Name, FormatAmount(inflated))
			},
		},
	}

	// INCOME events carry no rules: recording income never draws a comment.

	return e
}

// React returns the single localized message for the event, or ok=false when
// no rule matches.
func (e *Engine) React(ev Event, profile models.UserProfile, lang models.Language) (string, bool) {
	for _, r := range e.rules[ev.Kind] {
		if r.match(ev) {
			return r.produce(ev, profile, lang), true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
