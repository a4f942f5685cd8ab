package model

// FinancialProfile is the baseline household snapshot a projection starts
// from. Created at onboarding and edited by the user; the engine treats it
// as read-only input for one projection run.
type FinancialProfile struct {
	UserID             int64   `json:"user_id"`
	HouseholdIncome    float64 `json:"household_income"`
	SavingsAmount      float64 `json:"savings_amount"`
	StudentLoanBalance float64 `json:"student_loan_balance"`
	OtherDebt          float64 `json:"other_debt"`
	HouseholdSize      int     `json:"household_size"`
	AnnualExpenses     float64 `json:"annual_expenses"`
}
