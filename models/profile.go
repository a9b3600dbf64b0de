package models

// Language is one of the three interface/response languages.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageUZ Language = "UZ"
	LanguageRU Language = "RU"

	DefaultLanguage = LanguageEN
)

// SupportedLanguages lists every language the app can respond in.
var SupportedLanguages = []Language{LanguageEN, LanguageUZ, LanguageRU}

func IsSupportedLanguage(l Language) bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// DefaultTaxRate is the percentage applied when the user never set one.
const DefaultTaxRate = 12.0

type SalaryEntry struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Source string  `json:"source"`
}

type Goal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	SavedAmount  float64 `json:"savedAmount"`
	Deadline     string  `json:"deadline"`
}

// UserProfile is the profile portion of the persisted envelope. The Expenses
// map is a derived cache of category totals for the current month; the
// authoritative expense list lives on the envelope.
type UserProfile struct {
	Name           string             `json:"name"`
	Age            int                `json:"age"`
	City           string             `json:"city"`
	Status         string             `json:"status"`
	TaxRate        float64            `json:"taxRate"`
	SalaryHistory  []SalaryEntry      `json:"salaryHistory"`
	Expenses       map[string]float64 `json:"expenses"`
	CurrentSavings float64            `json:"currentSavings"`
	Goals          []Goal             `json:"goals"`
}

// DefaultProfile returns the empty profile a brand-new account starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		TaxRate:       DefaultTaxRate,
		SalaryHistory: []SalaryEntry{},
		Expenses:      map[string]float64{},
		Goals:         []Goal{},
	}
}
