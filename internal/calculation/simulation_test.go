package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

func TestRunPlan_TerminalScenario(t *testing.T) {
	// 12000 at 12% over 12 months, paying exactly the minimum: the loan
	// must be gone at month 12 with total interest matching the standard
	// amortization schedule.
	plan := domain.PlanConfig{
		Principal:      dec(12000),
		AnnualLoanRate: dec(0.12),
		TermMonths:     12,
		InvestmentType: domain.InvestmentCD,
	}
	plan.TargetPayment = domain.MinimumPayment(plan.Principal, plan.AnnualLoanRate, plan.TermMonths)

	engine := NewEngine()
	result, err := engine.RunPlan(&plan)
	require.NoError(t, err)

	assert.Equal(t, 12, result.PayoffMonth)
	assert.Len(t, result.Records, 12)
	assert.InDelta(t, 794.23, result.TotalInterestPaid.InexactFloat64(), 0.01)
	assert.InDelta(t, 12000, result.TotalPrincipalPaid.InexactFloat64(), 0.01)
	assert.True(t, result.FinalRecord().Loan.Balance.IsZero())
}

func TestRunPlan_NonConverging(t *testing.T) {
	// 10000 at 24%: monthly interest is 200, a 150 payment never
	// amortizes. The driver must refuse, not truncate.
	plan := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.24),
		TermMonths:     60,
		TargetPayment:  dec(150),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConverging), "got %v", err)
	assert.Nil(t, result)
}

func TestRunPlan_NonConvergingAtCeiling(t *testing.T) {
	// A pending lump sum too small to rescue the plan defers the
	// up-front check; the iteration ceiling must still catch it.
	plan := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.24),
		TermMonths:     60,
		TargetPayment:  dec(150),
		InitialSavings: dec(10),
		LumpSum:        dec(1),
		LumpSumMonth:   2,
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConverging), "got %v", err)
	assert.Nil(t, result)
}

func TestRunPlan_InvalidConfig(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.05),
		TermMonths:     12,
		TargetPayment:  dec(900),
		TaxRate:        dec(2),
		InvestmentType: domain.InvestmentCD,
	}
	_, err := NewEngine().RunPlan(&plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
}

func TestRunPlan_Invariants(t *testing.T) {
	// A busy plan: savings-funded extra payments, a mid-horizon lump sum,
	// CD returns taxed monthly, and a post-payoff accumulation tail.
	plan := domain.PlanConfig{
		Principal:             dec(50000),
		AnnualLoanRate:        dec(0.06),
		TermMonths:            60,
		TargetPayment:         dec(1100),
		InitialSavings:        dec(20000),
		AnnualReturnRate:      dec(0.048),
		TaxRate:               dec(0.25),
		InvestmentType:        domain.InvestmentCD,
		UseSavingsForDebt:     true,
		MonthlySavingsPayment: dec(300),
		LumpSum:               dec(5000),
		LumpSumMonth:          6,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	require.NotEmpty(t, result.Records)

	prev := domain.MonthlyRecord{
		Loan:    domain.LoanState{Balance: plan.Principal},
		Savings: domain.SavingsState{Balance: plan.InitialSavings},
	}
	sawInvesting := false
	for i := range result.Records {
		rec := &result.Records[i]

		// Balances never go negative.
		assert.False(t, rec.Loan.Balance.IsNegative(), "month %d loan balance %s", rec.Month, rec.Loan.Balance)
		assert.False(t, rec.Savings.Balance.IsNegative(), "month %d savings balance %s", rec.Month, rec.Savings.Balance)

		// Cumulative totals are non-decreasing and account for exactly
		// this month's flows (plus any driver-applied lump sum).
		wantInterest := prev.Loan.TotalInterestPaid.Add(rec.InterestPaid)
		wantPrincipal := prev.Loan.TotalPrincipalPaid.Add(rec.PrincipalPaid).Add(rec.LumpSumApplied)
		assert.True(t, rec.Loan.TotalInterestPaid.Equal(wantInterest), "month %d interest ledger", rec.Month)
		assert.True(t, rec.Loan.TotalPrincipalPaid.Equal(wantPrincipal), "month %d principal ledger", rec.Month)

		// One-way phase transition.
		if rec.Phase == domain.PhaseInvesting {
			sawInvesting = true
		} else {
			assert.False(t, sawInvesting, "month %d regressed to repaying", rec.Month)
		}

		prev = *rec
	}

	assert.True(t, sawInvesting, "plan should reach the investing phase")
	assert.Greater(t, result.PayoffMonth, 0)
	assert.Less(t, result.PayoffMonth, 60)

	// The mid-horizon lump sum landed where configured.
	var lumpMonth *domain.MonthlyRecord
	for i := range result.Records {
		if result.Records[i].LumpSumApplied.IsPositive() {
			lumpMonth = &result.Records[i]
			break
		}
	}
	require.NotNil(t, lumpMonth, "expected a lump sum record")
	assert.Equal(t, 6, lumpMonth.Month)
	assert.True(t, lumpMonth.LumpSumApplied.Equal(dec(5000)))
}

func TestRunPlan_MonthZeroLumpSum(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.06),
		TermMonths:     12,
		TargetPayment:  dec(900),
		InitialSavings: dec(5000),
		LumpSum:        dec(3000),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	require.NotEmpty(t, result.Records)

	first := result.Records[0]
	assert.Equal(t, 0, first.Month)
	assert.True(t, first.LumpSumApplied.Equal(dec(3000)))
	assert.True(t, first.Loan.Balance.Equal(dec(7000)))
	assert.True(t, first.Savings.Balance.Equal(dec(2000)))
}

func TestRunPlan_LumpSumClampedToSavings(t *testing.T) {
	// A lump sum larger than the savings on hand only applies what the
	// savings can fund.
	plan := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.06),
		TermMonths:     12,
		TargetPayment:  dec(900),
		InitialSavings: dec(1000),
		LumpSum:        dec(8000),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	first := result.Records[0]
	assert.True(t, first.LumpSumApplied.Equal(dec(1000)))
	assert.True(t, first.Loan.Balance.Equal(dec(9000)))
	assert.True(t, first.Savings.Balance.IsZero())
}

func TestRunPlan_LumpSumPaysOffImmediately(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:      dec(1000),
		AnnualLoanRate: dec(0.06),
		TermMonths:     12,
		TargetPayment:  dec(200),
		InitialSavings: dec(5000),
		LumpSum:        dec(2000),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)

	assert.Equal(t, 0, result.PayoffMonth)
	for i := range result.Records {
		rec := &result.Records[i]
		if rec.Month == 0 {
			assert.True(t, rec.LumpSumApplied.Equal(dec(1000)), "only the balance is applied")
			continue
		}
		assert.Equal(t, domain.PhaseInvesting, rec.Phase, "month %d", rec.Month)
		assert.True(t, rec.SavingsContribution.Equal(plan.TargetPayment))
	}
}

func TestRunPlan_ExtendsPastHorizonUntilPayoff(t *testing.T) {
	// Paying 500 against a 12-month 12000 zero-rate loan needs 24 months;
	// the driver keeps going past the nominal horizon until payoff.
	plan := domain.PlanConfig{
		Principal:      dec(12000),
		TermMonths:     12,
		TargetPayment:  dec(500),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	assert.Equal(t, 24, result.PayoffMonth)
	assert.Len(t, result.Records, 24)
}

func TestRunPlan_ZeroRateStraightLine(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:      dec(12000),
		TermMonths:     12,
		TargetPayment:  dec(1000),
		InvestmentType: domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	require.Len(t, result.Records, 12)

	for i := range result.Records {
		rec := &result.Records[i]
		assert.True(t, rec.InterestPaid.IsZero(), "month %d", rec.Month)
		if rec.Phase == domain.PhaseRepaying {
			assert.True(t, rec.PrincipalPaid.Equal(dec(1000)), "month %d principal %s", rec.Month, rec.PrincipalPaid)
		}
	}
	assert.True(t, result.TotalInterestPaid.IsZero())
	assert.Equal(t, 12, result.PayoffMonth)
}

func TestRunPlan_ZeroPrincipalAccumulatesOnly(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:        decimal.Zero,
		TermMonths:       12,
		TargetPayment:    dec(500),
		AnnualReturnRate: dec(0.06),
		TaxRate:          dec(0.25),
		InvestmentType:   domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PayoffMonth)
	assert.Len(t, result.Records, 12)
	for i := range result.Records {
		assert.Equal(t, domain.PhaseInvesting, result.Records[i].Phase)
	}
	assert.True(t, result.FinalSavings.GreaterThan(dec(6000)), "contributions plus returns, got %s", result.FinalSavings)
}

func TestRunPlan_ProjectionHorizonExtendsAccumulation(t *testing.T) {
	plan := domain.PlanConfig{
		Principal:        dec(12000),
		TermMonths:       12,
		TargetPayment:    dec(1000),
		ProjectionMonths: 24,
		InvestmentType:   domain.InvestmentCD,
	}

	result, err := NewEngine().RunPlan(&plan)
	require.NoError(t, err)
	assert.Len(t, result.Records, 24)
	assert.Equal(t, 12, result.PayoffMonth)
	assert.Equal(t, domain.PhaseInvesting, result.Records[23].Phase)
	// Twelve months of redirected payments.
	assert.True(t, result.FinalSavings.Equal(dec(12000)), "got %s", result.FinalSavings)
}

func TestRunStrategies(t *testing.T) {
	base := domain.PlanConfig{
		Principal:        dec(12000),
		TermMonths:       12,
		TargetPayment:    dec(1000),
		AnnualReturnRate: dec(0.06),
		TaxRate:          dec(0.25),
		InvestmentType:   domain.InvestmentCD,
		ProjectionMonths: 24,
	}
	aggressive := dec(2000)
	strategies := []domain.Strategy{
		{Name: "minimum"},
		{Name: "aggressive", TargetPayment: &aggressive},
	}

	comparison, err := NewEngine().RunStrategies(base, strategies)
	require.NoError(t, err)
	require.Len(t, comparison.Strategies, 2)
	assert.Equal(t, "minimum", comparison.Baseline)
	assert.Equal(t, 12, comparison.Strategies[0].PayoffMonth)
	assert.Equal(t, 6, comparison.Strategies[1].PayoffMonth)

	best := comparison.Best()
	require.NotNil(t, best)
	assert.Equal(t, "aggressive", best.Name)
}

func TestRunStrategies_DefaultsToBaseline(t *testing.T) {
	base := domain.PlanConfig{
		Principal:      dec(1200),
		TermMonths:     12,
		TargetPayment:  dec(100),
		InvestmentType: domain.InvestmentCD,
	}
	comparison, err := NewEngine().RunStrategies(base, nil)
	require.NoError(t, err)
	require.Len(t, comparison.Strategies, 1)
	assert.Equal(t, "baseline", comparison.Strategies[0].Name)
}

func TestRunStrategies_PropagatesErrors(t *testing.T) {
	base := domain.PlanConfig{
		Principal:      dec(10000),
		AnnualLoanRate: dec(0.24),
		TermMonths:     60,
		TargetPayment:  dec(900),
		InvestmentType: domain.InvestmentCD,
	}
	tooSmall := dec(150)
	strategies := []domain.Strategy{
		{Name: "ok"},
		{Name: "starves", TargetPayment: &tooSmall},
	}
	_, err := NewEngine().RunStrategies(base, strategies)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConverging))
	assert.Contains(t, err.Error(), "starves")
}
