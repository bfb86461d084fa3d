package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func validPlan() PlanConfig {
	return PlanConfig{
		Principal:        dec(12000),
		AnnualLoanRate:   dec(0.12),
		TermMonths:       12,
		TargetPayment:    dec(1100),
		AnnualReturnRate: dec(0.06),
		TaxRate:          dec(0.25),
		InvestmentType:   InvestmentCD,
	}
}

func TestMinimumPayment(t *testing.T) {
	// 12000 at 12% annual over 12 months: the classic amortization case.
	payment := MinimumPayment(dec(12000), dec(0.12), 12)
	assert.InDelta(t, 1066.19, payment.InexactFloat64(), 0.01)
}

func TestMinimumPayment_ZeroRate(t *testing.T) {
	payment := MinimumPayment(dec(12000), decimal.Zero, 12)
	assert.True(t, payment.Equal(dec(1000)), "zero rate should be straight-line, got %s", payment)
}

func TestMinimumPayment_Degenerate(t *testing.T) {
	assert.True(t, MinimumPayment(decimal.Zero, dec(0.05), 12).IsZero())
	assert.True(t, MinimumPayment(dec(1000), dec(0.05), 0).IsZero())
}

func TestNewDerived(t *testing.T) {
	plan := validPlan()
	derived := NewDerived(&plan)
	assert.True(t, derived.MonthlyLoanRate.Equal(dec(0.01)), "got %s", derived.MonthlyLoanRate)
	assert.True(t, derived.MonthlyReturnRate.Equal(dec(0.005)), "got %s", derived.MonthlyReturnRate)
	assert.InDelta(t, 1066.19, derived.MinimumPayment.InexactFloat64(), 0.01)
}

func TestPlanConfig_Horizon(t *testing.T) {
	plan := validPlan()
	assert.Equal(t, 12, plan.Horizon())
	plan.ProjectionMonths = 120
	assert.Equal(t, 120, plan.Horizon())
}

func TestPlanConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanConfig)
		wantErr string
	}{
		{"valid", func(p *PlanConfig) {}, ""},
		{"negative principal", func(p *PlanConfig) { p.Principal = dec(-1) }, "principal"},
		{"zero term", func(p *PlanConfig) { p.TermMonths = 0 }, "term"},
		{"negative loan rate", func(p *PlanConfig) { p.AnnualLoanRate = dec(-0.01) }, "loan rate"},
		{"negative return rate", func(p *PlanConfig) { p.AnnualReturnRate = dec(-0.01) }, "return rate"},
		{"tax rate above 1", func(p *PlanConfig) { p.TaxRate = dec(1.5) }, "tax rate"},
		{"negative tax rate", func(p *PlanConfig) { p.TaxRate = dec(-0.1) }, "tax rate"},
		{"unknown investment type", func(p *PlanConfig) { p.InvestmentType = "bond" }, "investment type"},
		{"negative target payment", func(p *PlanConfig) { p.TargetPayment = dec(-5) }, "target payment"},
		{"negative savings", func(p *PlanConfig) { p.InitialSavings = dec(-5) }, "savings"},
		{"negative lump sum", func(p *PlanConfig) { p.LumpSum = dec(-5) }, "lump sum"},
		{"lump sum beyond horizon", func(p *PlanConfig) { p.LumpSum = dec(100); p.LumpSumMonth = 13 }, "beyond the projection horizon"},
		{"negative projection", func(p *PlanConfig) { p.ProjectionMonths = -1 }, "projection months"},
		{"horizon beyond ceiling", func(p *PlanConfig) { p.ProjectionMonths = 2000 }, "exceeds the maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)
			err := plan.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInvestmentType_Valid(t *testing.T) {
	assert.True(t, InvestmentCD.Valid())
	assert.True(t, InvestmentStock.Valid())
	assert.False(t, InvestmentType("bond").Valid())
	assert.False(t, InvestmentType("").Valid())
}
