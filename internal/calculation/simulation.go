package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// Engine drives complete plan simulations. It is stateless between runs;
// every run threads its own loan and savings state through successive pure
// step calls, so concurrent runs of independent plans are safe.
type Engine struct {
	Logger Logger
}

// NewEngine creates a new simulation engine.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunPlan simulates a single plan month by month and returns the complete
// time series of monthly records. The loop runs through loan payoff and
// then the investment-accumulation phase until the projection horizon; a
// hard ceiling of domain.MaxSimulationMonths guarantees termination.
func (e *Engine) RunPlan(plan *domain.PlanConfig) (*domain.PlanResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	derived := domain.NewDerived(plan)
	loan := domain.LoanState{
		Balance:            plan.Principal,
		TotalInterestPaid:  decimal.Zero,
		TotalPrincipalPaid: decimal.Zero,
	}
	savings := domain.SavingsState{
		Balance:          plan.InitialSavings,
		TotalReturns:     decimal.Zero,
		TotalTaxesPaid:   decimal.Zero,
		TotalPocketMoney: decimal.Zero,
	}

	horizon := plan.Horizon()
	records := make([]domain.MonthlyRecord, 0, horizon+1)

	// A month-0 lump sum reduces principal before any interest accrues.
	if plan.LumpSumMonth == 0 {
		if applied := applyLumpSum(&loan, &savings, plan.LumpSum); applied.IsPositive() {
			records = append(records, domain.MonthlyRecord{
				Month:          0,
				Phase:          phaseOf(loan.PaidOff()),
				Loan:           loan,
				Savings:        savings,
				LumpSumApplied: applied,
			})
			e.Logger.Debugf("applied lump sum of %s at month 0, balance now %s",
				applied.StringFixed(2), loan.Balance.StringFixed(2))
		}
	}

	paidOff := loan.PaidOff()
	payoffMonth := 0

	if !paidOff {
		if err := checkConvergence(plan, derived, loan, savings); err != nil {
			return nil, err
		}
	}

	for month := 1; month <= horizon || !paidOff; month++ {
		if month > domain.MaxSimulationMonths {
			return nil, fmt.Errorf("%w: balance of %s remains after %d months",
				ErrNonConverging, loan.Balance.StringFixed(2), domain.MaxSimulationMonths)
		}

		// A mid-horizon lump sum lands at the month boundary, before this
		// month's interest is computed.
		lumpApplied := decimal.Zero
		if month == plan.LumpSumMonth && !paidOff {
			lumpApplied = applyLumpSum(&loan, &savings, plan.LumpSum)
		}

		phase := phaseOf(paidOff)
		step := ProcessMonth(plan, derived, loan, savings, paidOff)
		loan, savings = step.Loan, step.Savings

		if !paidOff && loan.PaidOff() {
			paidOff = true
			payoffMonth = month
			e.Logger.Infof("loan paid off at month %d, switching to accumulation", month)
		}

		records = append(records, domain.MonthlyRecord{
			Month:               month,
			Phase:               phase,
			Loan:                loan,
			Savings:             savings,
			InterestPaid:        step.InterestPaid,
			PrincipalPaid:       step.PrincipalPaid,
			InvestmentReturn:    step.InvestmentReturn,
			TaxPaid:             step.TaxPaid,
			SavingsContribution: step.SavingsContribution,
			SavingsWithdrawal:   step.SavingsWithdrawal,
			PocketMoney:         step.PocketMoney,
			LumpSumApplied:      lumpApplied,
		})
	}

	result := &domain.PlanResult{
		Plan:               *plan,
		Derived:            derived,
		Records:            records,
		PayoffMonth:        payoffMonth,
		TotalInterestPaid:  loan.TotalInterestPaid,
		TotalPrincipalPaid: loan.TotalPrincipalPaid,
		TotalReturns:       savings.TotalReturns,
		TotalTaxesPaid:     savings.TotalTaxesPaid,
		TotalPocketMoney:   savings.TotalPocketMoney,
		FinalSavings:       savings.Balance,
		FinalNetWorth:      savings.Balance.Sub(loan.Balance),
	}
	return result, nil
}

// RunStrategies runs each strategy as an independent simulation over the
// same base plan and compares the outcomes. The first strategy is the
// baseline for break-even analysis; with no strategies the base plan runs
// alone.
func (e *Engine) RunStrategies(base domain.PlanConfig, strategies []domain.Strategy) (*domain.StrategyComparison, error) {
	if len(strategies) == 0 {
		strategies = []domain.Strategy{{Name: "baseline"}}
	}

	summaries := make([]domain.StrategySummary, len(strategies))
	for i := range strategies {
		s := &strategies[i]
		plan := s.Apply(base)
		result, err := e.RunPlan(&plan)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", s.Name, err)
		}
		summaries[i] = domain.StrategySummary{
			Name:              s.Name,
			PayoffMonth:       result.PayoffMonth,
			TotalInterestPaid: result.TotalInterestPaid,
			TotalTaxesPaid:    result.TotalTaxesPaid,
			FinalSavings:      result.FinalSavings,
			FinalNetWorth:     result.FinalNetWorth,
			Result:            result,
		}
	}

	comparison := &domain.StrategyComparison{
		Baseline:   summaries[0].Name,
		Strategies: summaries,
		Crossovers: make(map[string]*domain.Crossover),
	}
	baseline := summaries[0].Result
	for i := 1; i < len(summaries); i++ {
		cross, err := FindNetWorthCrossover(baseline.Records, summaries[i].Result.Records)
		if err != nil {
			return nil, fmt.Errorf("break-even for %q: %w", summaries[i].Name, err)
		}
		if cross != nil {
			comparison.Crossovers[summaries[i].Name] = cross
		}
	}
	return comparison, nil
}

// checkConvergence rejects plans whose principal can never decrease: the
// amount the loan sees each month does not cover the first month's interest
// and no savings-funded payment is available. A pending mid-horizon lump
// sum defers the decision to the iteration ceiling, since it may tip the
// balance below the point where the payment amortizes.
func checkConvergence(plan *domain.PlanConfig, derived domain.Derived, loan domain.LoanState, savings domain.SavingsState) error {
	paymentTowardLoan := plan.TargetPayment
	if plan.ExcessToSavings {
		paymentTowardLoan = decimal.Min(plan.TargetPayment, derived.MinimumPayment)
	}
	firstInterest := loan.Balance.Mul(derived.MonthlyLoanRate)
	if paymentTowardLoan.GreaterThan(firstInterest) {
		return nil
	}
	if plan.UseSavingsForDebt && !plan.ExcessToSavings && savings.Balance.IsPositive() {
		return nil
	}
	if plan.LumpSum.IsPositive() && plan.LumpSumMonth >= 1 && savings.Balance.IsPositive() {
		return nil
	}
	return fmt.Errorf("%w: monthly payment of %s does not cover first month's interest of %s",
		ErrNonConverging, paymentTowardLoan.StringFixed(2), firstInterest.StringFixed(2))
}

// applyLumpSum moves a one-time principal payment from savings to the loan,
// clamped so neither balance goes negative. Returns the amount applied.
func applyLumpSum(loan *domain.LoanState, savings *domain.SavingsState, amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(amount, savings.Balance, loan.Balance)
	if !applied.IsPositive() {
		return decimal.Zero
	}
	loan.Balance = loan.Balance.Sub(applied)
	loan.TotalPrincipalPaid = loan.TotalPrincipalPaid.Add(applied)
	savings.Balance = savings.Balance.Sub(applied)
	return applied
}

func phaseOf(paidOff bool) domain.Phase {
	if paidOff {
		return domain.PhaseInvesting
	}
	return domain.PhaseRepaying
}
