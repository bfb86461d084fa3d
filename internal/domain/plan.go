package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvestmentType identifies how savings returns are taxed.
type InvestmentType string

const (
	// InvestmentCD is taxed on returns every month as they accrue.
	InvestmentCD InvestmentType = "cd"
	// InvestmentStock defers taxes until funds are withdrawn.
	InvestmentStock InvestmentType = "stock"
)

// Valid reports whether the investment type is one of the known kinds.
func (it InvestmentType) Valid() bool {
	return it == InvestmentCD || it == InvestmentStock
}

// MaxSimulationMonths is the hard iteration ceiling for any single plan.
// It guarantees termination even for pathological payment configurations.
const MaxSimulationMonths = 1200

// PlanConfig is the immutable input for a single payoff-vs-invest plan.
// All rates are annual decimals (0.05 for 5%); the tax rate is a fraction
// in [0, 1]. A zero ProjectionMonths means the projection runs for the
// loan term.
type PlanConfig struct {
	Principal      decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualLoanRate decimal.Decimal `yaml:"annual_loan_rate" json:"annual_loan_rate"`
	TermMonths     int             `yaml:"term_months" json:"term_months"`
	TargetPayment  decimal.Decimal `yaml:"target_payment" json:"target_payment"`

	InitialSavings   decimal.Decimal `yaml:"initial_savings" json:"initial_savings"`
	AnnualReturnRate decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"`
	TaxRate          decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	InvestmentType   InvestmentType  `yaml:"investment_type" json:"investment_type"`

	// UseSavingsForDebt directs part of the savings balance toward extra
	// principal every month while the loan is open. MonthlySavingsPayment
	// caps the withdrawal; zero means "as much as the savings can fund".
	UseSavingsForDebt     bool            `yaml:"use_savings_for_debt" json:"use_savings_for_debt"`
	MonthlySavingsPayment decimal.Decimal `yaml:"monthly_savings_payment" json:"monthly_savings_payment"`

	// ExcessToSavings routes the slice of the target payment above the
	// minimum payment into savings instead of extra principal.
	ExcessToSavings bool `yaml:"excess_to_savings" json:"excess_to_savings"`

	// LumpSum is a one-time extra principal payment funded from savings.
	// LumpSumMonth 0 applies it before the first simulated month.
	LumpSum      decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
	LumpSumMonth int             `yaml:"lump_sum_month" json:"lump_sum_month"`

	ProjectionMonths int `yaml:"projection_months" json:"projection_months"`
}

// Horizon returns the total number of months the projection covers.
func (p *PlanConfig) Horizon() int {
	if p.ProjectionMonths > 0 {
		return p.ProjectionMonths
	}
	return p.TermMonths
}

// Validate checks the domain constraints on the plan. It returns the first
// violation found; callers are expected to fail fast before simulating.
func (p *PlanConfig) Validate() error {
	if p.Principal.IsNegative() {
		return fmt.Errorf("principal cannot be negative, got %s", p.Principal)
	}
	if p.TermMonths < 1 {
		return fmt.Errorf("loan term must be at least 1 month, got %d", p.TermMonths)
	}
	if p.AnnualLoanRate.IsNegative() {
		return fmt.Errorf("loan rate cannot be negative, got %s", p.AnnualLoanRate)
	}
	if p.AnnualReturnRate.IsNegative() {
		return fmt.Errorf("investment return rate cannot be negative, got %s", p.AnnualReturnRate)
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be between 0 and 1, got %s", p.TaxRate)
	}
	if !p.InvestmentType.Valid() {
		return fmt.Errorf("unknown investment type %q", p.InvestmentType)
	}
	if p.TargetPayment.IsNegative() {
		return fmt.Errorf("target payment cannot be negative, got %s", p.TargetPayment)
	}
	if p.InitialSavings.IsNegative() {
		return fmt.Errorf("initial savings cannot be negative, got %s", p.InitialSavings)
	}
	if p.MonthlySavingsPayment.IsNegative() {
		return fmt.Errorf("monthly savings payment cannot be negative, got %s", p.MonthlySavingsPayment)
	}
	if p.LumpSum.IsNegative() {
		return fmt.Errorf("lump sum cannot be negative, got %s", p.LumpSum)
	}
	if p.LumpSumMonth < 0 {
		return fmt.Errorf("lump sum month cannot be negative, got %d", p.LumpSumMonth)
	}
	if p.LumpSumMonth > p.Horizon() {
		return fmt.Errorf("lump sum month %d is beyond the projection horizon of %d months", p.LumpSumMonth, p.Horizon())
	}
	if p.ProjectionMonths < 0 {
		return fmt.Errorf("projection months cannot be negative, got %d", p.ProjectionMonths)
	}
	if p.Horizon() > MaxSimulationMonths {
		return fmt.Errorf("projection horizon of %d months exceeds the maximum of %d", p.Horizon(), MaxSimulationMonths)
	}
	return nil
}

// Derived holds the constants computed once from a PlanConfig.
type Derived struct {
	MonthlyLoanRate   decimal.Decimal `json:"monthly_loan_rate"`
	MonthlyReturnRate decimal.Decimal `json:"monthly_return_rate"`
	MinimumPayment    decimal.Decimal `json:"minimum_payment"`
}

var twelve = decimal.NewFromInt(12)

// NewDerived computes the derived constants for a plan.
func NewDerived(p *PlanConfig) Derived {
	return Derived{
		MonthlyLoanRate:   p.AnnualLoanRate.Div(twelve),
		MonthlyReturnRate: p.AnnualReturnRate.Div(twelve),
		MinimumPayment:    MinimumPayment(p.Principal, p.AnnualLoanRate, p.TermMonths),
	}
}

// MinimumPayment calculates the fixed monthly payment that amortizes the
// principal exactly over the term using the standard annuity formula.
// A zero rate degenerates to straight-line principal / term.
func MinimumPayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths < 1 || !principal.IsPositive() {
		return decimal.Zero
	}
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	monthlyRate := annualRate.Div(twelve)
	// principal * r * (1+r)^n / ((1+r)^n - 1)
	compound := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
	denominator := compound.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return principal.Mul(decimal.NewFromInt(1).Add(monthlyRate))
	}
	return principal.Mul(monthlyRate).Mul(compound).Div(denominator)
}
