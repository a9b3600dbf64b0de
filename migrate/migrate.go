// Package migrate upgrades persisted records of unknown vintage into the
// current PersistedState shape. Older clients wrote loans and lendings with a
// single `amount` field and profiles without goals; those records must load
// without data loss.
package migrate

import (
	"encoding/json"
	"fmt"

	"finance-advisor/api/models"
)

// LendingFallbackDescription fills lendings persisted before descriptions existed.
const LendingFallbackDescription = "Qard Hasan"

type legacyLoan struct {
	ID             string          `json:"id"`
	Lender         string          `json:"lender"`
	OriginalAmount *float64        `json:"originalAmount"`
	Amount         *float64        `json:"amount"`
	InterestRate   *float64        `json:"interestRate"`
	MonthlyPayment *float64        `json:"monthlyPayment"`
	PaidAmount     *float64        `json:"paidAmount"`
	StartDate      string          `json:"startDate"`
	Type           models.LoanType `json:"type"`
	Description    *string         `json:"description"`
}

type legacyLending struct {
	ID                 string   `json:"id"`
	Borrower           string   `json:"borrower"`
	OriginalAmount     *float64 `json:"originalAmount"`
	Amount             *float64 `json:"amount"`
	RepaidAmount       *float64 `json:"repaidAmount"`
	ExpectedInterest   *float64 `json:"expectedInterest"`
	ExpectedReturnDate string   `json:"expectedReturnDate"`
	DateLent           string   `json:"dateLent"`
	Description        *string  `json:"description"`
}

type legacyProfile struct {
	Name           *string             `json:"name"`
	Age            *int                `json:"age"`
	City           *string             `json:"city"`
	Status         *string             `json:"status"`
	TaxRate        *float64            `json:"taxRate"`
	SalaryHistory  []models.SalaryEntry `json:"salaryHistory"`
	Expenses       map[string]float64  `json:"expenses"`
	CurrentSavings *float64            `json:"currentSavings"`
	Goals          []models.Goal       `json:"goals"`
}

type legacyEnvelope struct {
	Profile     *legacyProfile     `json:"profile"`
	Expenses    []models.Expense   `json:"expenses"`
	Loans       []legacyLoan       `json:"loans"`
	Lendings    []legacyLending    `json:"lendings"`
	ChatHistory []models.AiMessage `json:"chatHistory"`
	Lang        models.Language    `json:"lang"`
}

// State upgrades a raw persisted envelope into the current shape. It is a
// pure transform and idempotent: an already-current record passes through
// unchanged. Malformed JSON is returned as an error for the caller to handle;
// the caller decides whether to fall back to defaults.
func State(raw []byte) (models.PersistedState, error) {
	var env legacyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.PersistedState{}, fmt.Errorf("decode persisted state: %w", err)
	}

	out := models.PersistedState{
		Profile:     upgradeProfile(env.Profile),
		Expenses:    env.Expenses,
		ChatHistory: env.ChatHistory,
		Lang:        env.Lang,
	}
	if out.Expenses == nil {
		out.Expenses = []models.Expense{}
	}
	if out.ChatHistory == nil {
		out.ChatHistory = []models.AiMessage{}
	}
	if !models.IsSupportedLanguage(out.Lang) {
		out.Lang = models.DefaultLanguage
	}

	out.Loans = make([]models.Loan, 0, len(env.Loans))
	for _, l := range env.Loans {
		out.Loans = append(out.Loans, upgradeLoan(l))
	}
	out.Lendings = make([]models.Lending, 0, len(env.Lendings))
	for _, l := range env.Lendings {
		out.Lendings = append(out.Lendings, upgradeLending(l))
	}
	return out, nil
}

// Records from before the paidAmount rework carried the outstanding balance
// in `amount`.
func upgradeLoan(l legacyLoan) models.Loan {
	out := models.Loan{
		ID:        l.ID,
		Lender:    l.Lender,
		StartDate: l.StartDate,
		Type:      l.Type,
	}
	switch {
	case l.OriginalAmount != nil:
		out.OriginalAmount = *l.OriginalAmount
	case l.Amount != nil:
		out.OriginalAmount = *l.Amount
	}
	if l.PaidAmount != nil {
		out.PaidAmount = *l.PaidAmount
	}
	if l.MonthlyPayment != nil {
		out.MonthlyPayment = *l.MonthlyPayment
	}
	if l.InterestRate != nil {
		out.InterestRate = *l.InterestRate
	}
	switch {
	case l.Description != nil:
		out.Description = *l.Description
	case l.Type != "":
		out.Description = string(l.Type)
	}
	return out
}

func upgradeLending(l legacyLending) models.Lending {
	out := models.Lending{
		ID:                 l.ID,
		Borrower:           l.Borrower,
		ExpectedReturnDate: l.ExpectedReturnDate,
		DateLent:           l.DateLent,
		Description:        LendingFallbackDescription,
	}
	switch {
	case l.OriginalAmount != nil:
		out.OriginalAmount = *l.OriginalAmount
	case l.Amount != nil:
		out.OriginalAmount = *l.Amount
	}
	if l.RepaidAmount != nil {
		out.RepaidAmount = *l.RepaidAmount
	}
	if l.ExpectedInterest != nil {
		out.ExpectedInterest = *l.ExpectedInterest
	}
	if l.Description != nil {
		out.Description = *l.Description
	}
	return out
}

// A nil profile yields the current defaults outright.
func upgradeProfile(p *legacyProfile) models.UserProfile {
	out := models.DefaultProfile()
	if p == nil {
		return out
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Age != nil {
		out.Age = *p.Age
	}
	if p.City != nil {
		out.City = *p.City
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.TaxRate != nil {
		out.TaxRate = *p.TaxRate
	}
	if p.SalaryHistory != nil {
		out.SalaryHistory = p.SalaryHistory
	}
	if p.Expenses != nil {
		out.Expenses = p.Expenses
	}
	if p.CurrentSavings != nil {
		out.CurrentSavings = *p.CurrentSavings
	}
	if p.Goals != nil {
		out.Goals = p.Goals
	}
	return out
}

// NeedsOnboarding reports whether the migrated profile still has to go
// through first-run onboarding. A non-empty name is the sole signal.
func NeedsOnboarding(p models.UserProfile) bool {
	return p.Name == ""
}
