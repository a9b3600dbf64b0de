package models

// ChatRole distinguishes who produced a chat line.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// AiMessage is one line of the advice chat, persisted inside the envelope.
type AiMessage struct {
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
}

// PersistedState is the exact envelope written to the local cache and stored
// verbatim by the remote state service. Field names are part of the wire
// contract and must not change.
type PersistedState struct {
	Profile     UserProfile `json:"profile"`
	Expenses    []Expense   `json:"expenses"`
	Loans       []Loan      `json:"loans"`
	Lendings    []Lending   `json:"lendings"`
	ChatHistory []AiMessage `json:"chatHistory"`
	Lang        Language    `json:"lang"`
}

// EmptyState is the envelope a brand-new account starts from.
func EmptyState(lang Language) PersistedState {
	return PersistedState{
		Profile:     DefaultProfile(),
		Expenses:    []Expense{},
		Loans:       []Loan{},
		Lendings:    []Lending{},
		ChatHistory: []AiMessage{},
		Lang:        lang,
	}
}

// TaxResult is derived from the current month's salary entries. Never persisted.
type TaxResult struct {
	TotalIncomeThisMonth float64 `json:"totalIncomeThisMonth"`
	EstimatedTax         float64 `json:"estimatedTax"`
	NetIncomeThisMonth   float64 `json:"netIncomeThisMonth"`
}

// AuthUser is the account record returned by the state service.
type AuthUser struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	PreferredLang Language `json:"preferred_lang"`
}

// MeResponse is the GET /me payload. State is nil for a brand-new account,
// which signals that onboarding must run.
type MeResponse struct {
	User  AuthUser        `json:"user"`
	State *PersistedState `json:"state"`
}

// AuthResponse is the signup/login payload.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
