package models

// ExpenseCategory is the closed set of spend categories.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food"
	CategoryTransport     ExpenseCategory = "Transport"
	CategoryEntertainment ExpenseCategory = "Entertainment"
	CategoryHousing       ExpenseCategory = "Housing"
	CategoryShopping      ExpenseCategory = "Shopping"
	CategoryHealth        ExpenseCategory = "Health"
	CategoryEducation     ExpenseCategory = "Education"
	CategoryCharity       ExpenseCategory = "Charity"
	CategoryOther         ExpenseCategory = "Other"
)

var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHousing,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryCharity,
	CategoryOther,
}

type Expense struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// LoanType is the closed set of debt origins.
type LoanType string

const (
	LoanTypeBank         LoanType = "Bank Loan"
	LoanTypeInstallment  LoanType = "Installment"
	LoanTypeMortgage     LoanType = "Mortgage"
	LoanTypeFriendFamily LoanType = "Friend/Family"
	LoanTypeOther        LoanType = "Other"
)

// Loan is money the user owes. PaidAmount is not clamped to OriginalAmount;
// an overpaid loan has a negative remaining balance.
type Loan struct {
	ID             string   `json:"id"`
	Lender         string   `json:"lender"`
	OriginalAmount float64  `json:"originalAmount"`
	InterestRate   float64  `json:"interestRate"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	PaidAmount     float64  `json:"paidAmount"`
	StartDate      string   `json:"startDate"`
	Type           LoanType `json:"type"`
	Description    string   `json:"description"`
}

// Remaining is the unpaid balance. May be negative when overpaid.
func (l Loan) Remaining() float64 {
	return l.OriginalAmount - l.PaidAmount
}

// Lending is money owed to the user.
type Lending struct {
	ID                 string  `json:"id"`
	Borrower           string  `json:"borrower"`
	OriginalAmount     float64 `json:"originalAmount"`
	RepaidAmount       float64 `json:"repaidAmount"`
	ExpectedInterest   float64 `json:"expectedInterest"`
	ExpectedReturnDate string  `json:"expectedReturnDate"`
	DateLent           string  `json:"dateLent"`
	Description        string  `json:"description"`
}

func (l Lending) Outstanding() float64 {
	return l.OriginalAmount - l.RepaidAmount
}
