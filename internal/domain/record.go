package domain

import (
	"github.com/shopspring/decimal"
)

// LoanState is the loan side of the simulation. It is a value type and is
// threaded through the step function by value; the driver owns the current
// copy.
type LoanState struct {
	Balance            decimal.Decimal `json:"balance"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
}

// PaidOff reports whether the loan balance has reached zero.
func (ls LoanState) PaidOff() bool {
	return ls.Balance.LessThanOrEqual(decimal.Zero)
}

// SavingsState is the investment side of the simulation.
type SavingsState struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalReturns     decimal.Decimal `json:"total_returns"`
	TotalTaxesPaid   decimal.Decimal `json:"total_taxes_paid"`
	TotalPocketMoney decimal.Decimal `json:"total_pocket_money"`
}

// Phase names the driver's state machine states. The transition is one-way:
// a loan is never re-borrowed.
type Phase string

const (
	PhaseRepaying  Phase = "repaying"
	PhaseInvesting Phase = "investing"
)

// MonthlyRecord captures one simulated month: the resulting states plus the
// money that moved during the month. The ordered slice of these records is
// the sole output the presentation layer consumes.
type MonthlyRecord struct {
	Month   int          `json:"month"`
	Phase   Phase        `json:"phase"`
	Loan    LoanState    `json:"loan"`
	Savings SavingsState `json:"savings"`

	InterestPaid        decimal.Decimal `json:"interest_paid"`
	PrincipalPaid       decimal.Decimal `json:"principal_paid"`
	InvestmentReturn    decimal.Decimal `json:"investment_return"`
	TaxPaid             decimal.Decimal `json:"tax_paid"`
	SavingsContribution decimal.Decimal `json:"savings_contribution"`
	SavingsWithdrawal   decimal.Decimal `json:"savings_withdrawal"`
	PocketMoney         decimal.Decimal `json:"pocket_money"`

	// LumpSumApplied is extra principal the driver applied at this month's
	// boundary, before interest accrued.
	LumpSumApplied decimal.Decimal `json:"lump_sum_applied"`
}

// LoanPayment returns the total amount applied toward the loan this month,
// including any savings-funded extra and driver-applied lump sum.
func (mr *MonthlyRecord) LoanPayment() decimal.Decimal {
	return mr.InterestPaid.Add(mr.PrincipalPaid).Add(mr.LumpSumApplied)
}

// NetWorth is savings minus remaining debt at the end of the month.
func (mr *MonthlyRecord) NetWorth() decimal.Decimal {
	return mr.Savings.Balance.Sub(mr.Loan.Balance)
}

// PlanResult is the complete outcome of one simulated plan.
type PlanResult struct {
	Plan    PlanConfig      `json:"plan"`
	Derived Derived         `json:"derived"`
	Records []MonthlyRecord `json:"records"`

	// PayoffMonth is the month index in which the loan balance first hit
	// zero. Zero means the loan was extinguished before month 1 (lump sum
	// at month 0 or a zero principal).
	PayoffMonth int `json:"payoff_month"`

	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	TotalReturns       decimal.Decimal `json:"total_returns"`
	TotalTaxesPaid     decimal.Decimal `json:"total_taxes_paid"`
	TotalPocketMoney   decimal.Decimal `json:"total_pocket_money"`
	FinalSavings       decimal.Decimal `json:"final_savings"`
	FinalNetWorth      decimal.Decimal `json:"final_net_worth"`
}

// FinalRecord returns the last monthly record, or nil for an empty series.
func (pr *PlanResult) FinalRecord() *MonthlyRecord {
	if len(pr.Records) == 0 {
		return nil
	}
	return &pr.Records[len(pr.Records)-1]
}
