package llm

import (
	"strings"
	"testing"

	"finance-advisor/api/metrics"
	"finance-advisor/api/models"
)

func TestSystemInstructionPinsLanguage(t *testing.T) {
	profile := models.UserProfile{Name: "Aziz", Age: 25, City: "Tashkent", Status: "single"}

	tests := []struct {
		lang models.Language
		want string
	}{
		{models.LanguageEN, "English"},
		{models.LanguageUZ, "Uzbek"},
		{models.LanguageRU, "Russian"},
		{"XX", "English"},
	}

	for _, tt := range tests {
		got := SystemInstruction(profile, tt.lang)
		if !strings.Contains(got, "reply ONLY in "+tt.want) {
			t.Errorf("lang %s: instruction does not pin %s", tt.lang, tt.want)
		}
		if !strings.Contains(got, "Aziz") || !strings.Contains(got, "Tashkent") {
			t.Errorf("lang %s: instruction dropped profile facts", tt.lang)
		}
	}
}

func TestSystemInstructionDefaults(t *testing.T) {
	got := SystemInstruction(models.UserProfile{}, models.LanguageEN)
	if !strings.Contains(got, "the user") || !strings.Contains(got, "Uzbekistan") {
		t.Error("empty profile should fall back to generic placeholders")
	}
}

func TestContextPrompt(t *testing.T) {
	summary := metrics.Summary{
		Tax:                models.TaxResult{NetIncomeThisMonth: 8800000},
		TotalMonthExpenses: 1200000,
		NetWorth:           400000,
	}

	got := ContextPrompt(summary, 2, 1)
	for _, want := range []string{"8,800,000 UZS", "1,200,000 UZS", "400,000 UZS", "Active Loans: 2", "Active Lendings: 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}
