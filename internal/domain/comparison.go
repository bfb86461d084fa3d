package domain

import (
	"github.com/shopspring/decimal"
)

// Strategy is a named variation of a base plan. Only the set fields
// override the base; everything else carries over unchanged.
type Strategy struct {
	Name string `yaml:"name" json:"name"`

	TargetPayment         *decimal.Decimal `yaml:"target_payment" json:"target_payment,omitempty"`
	UseSavingsForDebt     *bool            `yaml:"use_savings_for_debt" json:"use_savings_for_debt,omitempty"`
	MonthlySavingsPayment *decimal.Decimal `yaml:"monthly_savings_payment" json:"monthly_savings_payment,omitempty"`
	ExcessToSavings       *bool            `yaml:"excess_to_savings" json:"excess_to_savings,omitempty"`
	LumpSum               *decimal.Decimal `yaml:"lump_sum" json:"lump_sum,omitempty"`
	LumpSumMonth          *int             `yaml:"lump_sum_month" json:"lump_sum_month,omitempty"`
	AnnualReturnRate      *decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate,omitempty"`
	TaxRate               *decimal.Decimal `yaml:"tax_rate" json:"tax_rate,omitempty"`
	InvestmentType        *InvestmentType  `yaml:"investment_type" json:"investment_type,omitempty"`
}

// Apply produces the full plan for this strategy by overlaying the set
// fields onto the base plan.
func (s *Strategy) Apply(base PlanConfig) PlanConfig {
	plan := base
	if s.TargetPayment != nil {
		plan.TargetPayment = *s.TargetPayment
	}
	if s.UseSavingsForDebt != nil {
		plan.UseSavingsForDebt = *s.UseSavingsForDebt
	}
	if s.MonthlySavingsPayment != nil {
		plan.MonthlySavingsPayment = *s.MonthlySavingsPayment
	}
	if s.ExcessToSavings != nil {
		plan.ExcessToSavings = *s.ExcessToSavings
	}
	if s.LumpSum != nil {
		plan.LumpSum = *s.LumpSum
	}
	if s.LumpSumMonth != nil {
		plan.LumpSumMonth = *s.LumpSumMonth
	}
	if s.AnnualReturnRate != nil {
		plan.AnnualReturnRate = *s.AnnualReturnRate
	}
	if s.TaxRate != nil {
		plan.TaxRate = *s.TaxRate
	}
	if s.InvestmentType != nil {
		plan.InvestmentType = *s.InvestmentType
	}
	return plan
}

// StrategySummary condenses one strategy's simulation into the figures the
// comparison cares about.
type StrategySummary struct {
	Name              string          `json:"name"`
	PayoffMonth       int             `json:"payoff_month"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	TotalTaxesPaid    decimal.Decimal `json:"total_taxes_paid"`
	FinalSavings      decimal.Decimal `json:"final_savings"`
	FinalNetWorth     decimal.Decimal `json:"final_net_worth"`
	Result            *PlanResult     `json:"result,omitempty"`
}

// Crossover marks the month at which one strategy's cumulative net worth
// overtakes another's. Fraction interpolates within the crossing month.
type Crossover struct {
	Month    int             `json:"month"`
	NetWorth decimal.Decimal `json:"net_worth"`
	Fraction decimal.Decimal `json:"fraction"`
}

// StrategyComparison is the outcome of running several strategies over the
// same base plan. Crossovers maps strategy name to the month its net worth
// first overtakes the baseline (first strategy); absent entries never cross.
type StrategyComparison struct {
	Baseline   string                `json:"baseline"`
	Strategies []StrategySummary     `json:"strategies"`
	Crossovers map[string]*Crossover `json:"crossovers,omitempty"`
}

// Best returns the strategy with the highest final net worth.
func (sc *StrategyComparison) Best() *StrategySummary {
	var best *StrategySummary
	for i := range sc.Strategies {
		s := &sc.Strategies[i]
		if best == nil || s.FinalNetWorth.GreaterThan(best.FinalNetWorth) {
			best = s
		}
	}
	return best
}

// RunOutcome is a single Monte Carlo simulation outcome.
type RunOutcome struct {
	PaidOff       bool            `json:"paid_off"`
	PayoffMonth   int             `json:"payoff_month"`
	FinalSavings  decimal.Decimal `json:"final_savings"`
	FinalNetWorth decimal.Decimal `json:"final_net_worth"`
}

// PercentileRanges summarizes the distribution of final net worth across
// Monte Carlo runs.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// MonteCarloResult aggregates randomized-return simulations of one plan.
type MonteCarloResult struct {
	NumSimulations   int              `json:"num_simulations"`
	Seed             int64            `json:"seed"`
	AnnualVolatility decimal.Decimal  `json:"annual_volatility"`
	PayoffRate       decimal.Decimal  `json:"payoff_rate"`
	MedianNetWorth   decimal.Decimal  `json:"median_net_worth"`
	Percentiles      PercentileRanges `json:"percentiles"`
	Outcomes         []RunOutcome     `json:"outcomes,omitempty"`
}
