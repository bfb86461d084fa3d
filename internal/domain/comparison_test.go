package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStrategy_Apply(t *testing.T) {
	base := validPlan()

	payment := dec(2000)
	useSavings := true
	stock := InvestmentStock
	s := Strategy{
		Name:              "aggressive",
		TargetPayment:     &payment,
		UseSavingsForDebt: &useSavings,
		InvestmentType:    &stock,
	}

	applied := s.Apply(base)
	assert.True(t, applied.TargetPayment.Equal(payment))
	assert.True(t, applied.UseSavingsForDebt)
	assert.Equal(t, InvestmentStock, applied.InvestmentType)

	// Untouched fields carry over from the base.
	assert.True(t, applied.Principal.Equal(base.Principal))
	assert.Equal(t, base.TermMonths, applied.TermMonths)
	assert.True(t, applied.TaxRate.Equal(base.TaxRate))

	// The base itself is never mutated.
	assert.True(t, base.TargetPayment.Equal(dec(1100)))
	assert.False(t, base.UseSavingsForDebt)
}

func TestStrategy_Apply_Empty(t *testing.T) {
	base := validPlan()
	s := Strategy{Name: "baseline"}
	applied := s.Apply(base)
	assert.Equal(t, base, applied)
}

func TestMonthlyRecord_NetWorth(t *testing.T) {
	rec := MonthlyRecord{
		Loan:    LoanState{Balance: dec(8000)},
		Savings: SavingsState{Balance: dec(3000)},
	}
	assert.True(t, rec.NetWorth().Equal(dec(-5000)), "got %s", rec.NetWorth())
}

func TestMonthlyRecord_LoanPayment(t *testing.T) {
	rec := MonthlyRecord{
		InterestPaid:   dec(100),
		PrincipalPaid:  dec(900),
		LumpSumApplied: dec(500),
	}
	assert.True(t, rec.LoanPayment().Equal(dec(1500)))
}

func TestStrategyComparison_Best(t *testing.T) {
	comparison := StrategyComparison{
		Strategies: []StrategySummary{
			{Name: "a", FinalNetWorth: dec(100)},
			{Name: "b", FinalNetWorth: dec(300)},
			{Name: "c", FinalNetWorth: dec(200)},
		},
	}
	best := comparison.Best()
	assert.Equal(t, "b", best.Name)

	empty := StrategyComparison{}
	assert.Nil(t, empty.Best())
}

func TestLoanState_PaidOff(t *testing.T) {
	assert.True(t, LoanState{Balance: decimal.Zero}.PaidOff())
	assert.False(t, LoanState{Balance: dec(0.01)}.PaidOff())
}
