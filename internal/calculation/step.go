package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// StepResult is everything one simulated month produces: the two successor
// states plus the money flows of the month.
type StepResult struct {
	Loan    domain.LoanState
	Savings domain.SavingsState

	InterestPaid        decimal.Decimal
	PrincipalPaid       decimal.Decimal
	InvestmentReturn    decimal.Decimal
	TaxPaid             decimal.Decimal
	SavingsContribution decimal.Decimal
	SavingsWithdrawal   decimal.Decimal
	PocketMoney         decimal.Decimal
}

var one = decimal.NewFromInt(1)

// payoffEpsilon treats sub-cent residue left by payment rounding as paid
// off, so an exact-payoff schedule terminates in its final month instead of
// dragging a vanishing balance into an extra month.
var payoffEpsilon = decimal.NewFromFloat(0.005)

// ProcessMonth advances the simulation by one month. It is a pure function
// of its inputs: no hidden state, no I/O, identical inputs always produce
// identical outputs. States are passed and returned by value.
//
// While the loan is open, the target payment covers interest first and
// principal second; savings may fund extra principal on top. Once paidOff
// is set the entire target payment is redirected into savings.
func ProcessMonth(plan *domain.PlanConfig, derived domain.Derived, loan domain.LoanState, savings domain.SavingsState, paidOff bool) StepResult {
	if paidOff || loan.PaidOff() {
		return investMonth(plan, derived, loan, savings)
	}
	return repayMonth(plan, derived, loan, savings)
}

// repayMonth handles the REPAYING phase.
func repayMonth(plan *domain.PlanConfig, derived domain.Derived, loan domain.LoanState, savings domain.SavingsState) StepResult {
	interest := loan.Balance.Mul(derived.MonthlyLoanRate)

	// Never pay more out of pocket than settles the loan this month.
	totalOwed := loan.Balance.Add(interest)
	paymentFromIncome := decimal.Min(plan.TargetPayment, totalOwed)

	contribution := decimal.Zero
	excess := plan.TargetPayment.Sub(derived.MinimumPayment)
	if plan.ExcessToSavings && excess.IsPositive() {
		// Only the minimum services the loan; the excess is invested.
		paymentFromIncome = decimal.Min(derived.MinimumPayment, paymentFromIncome)
		contribution = excess
	}

	// Interest is settled before any principal reduction. If the payment
	// does not even cover interest, principal stays put; the shortfall is
	// the caller's non-convergence signal, not something to clamp away.
	interestPaid := decimal.Min(interest, paymentFromIncome)
	principalPaid := paymentFromIncome.Sub(interestPaid)

	withdrawal := decimal.Zero
	investmentReturn := decimal.Zero
	tax := decimal.Zero

	if savings.Balance.IsPositive() {
		switch plan.InvestmentType {
		case domain.InvestmentCD:
			// CD interest accrues on the opening balance and is taxed
			// the month it is earned, so later withdrawals are tax-free.
			investmentReturn = savings.Balance.Mul(derived.MonthlyReturnRate)
			tax = investmentReturn.Mul(plan.TaxRate)
			if plan.UseSavingsForDebt && !plan.ExcessToSavings {
				withdrawal = savingsWithdrawal(plan, savings.Balance, loan.Balance.Sub(principalPaid))
				principalPaid = principalPaid.Add(withdrawal)
			}
		case domain.InvestmentStock:
			// Stock withdrawals are taxed on the full amount withdrawn,
			// a deliberate simplification that avoids tracking cost
			// basis. The withdrawal plus its tax must both fit in the
			// available balance.
			if plan.UseSavingsForDebt && !plan.ExcessToSavings {
				netAvailable := savings.Balance.Div(one.Add(plan.TaxRate))
				withdrawal = savingsWithdrawal(plan, netAvailable, loan.Balance.Sub(principalPaid))
				tax = withdrawal.Mul(plan.TaxRate)
				principalPaid = principalPaid.Add(withdrawal)
			}
			investmentReturn = savings.Balance.Sub(withdrawal).Sub(tax).Mul(derived.MonthlyReturnRate)
		}
	}

	// Clamp so the balance never goes negative.
	newBalance := loan.Balance.Sub(principalPaid)
	if newBalance.IsNegative() || (newBalance.LessThanOrEqual(payoffEpsilon) && principalPaid.IsPositive()) {
		principalPaid = loan.Balance
		newBalance = decimal.Zero
	}

	// In the month the loan is extinguished, the unused slice of the
	// target payment becomes a savings contribution.
	if newBalance.IsZero() && paymentFromIncome.LessThan(plan.TargetPayment) {
		contribution = plan.TargetPayment.Sub(paymentFromIncome)
	}

	pocketMoney := decimal.Max(decimal.Zero, derived.MinimumPayment.Sub(plan.TargetPayment))

	newLoan := domain.LoanState{
		Balance:            newBalance,
		TotalInterestPaid:  loan.TotalInterestPaid.Add(interestPaid),
		TotalPrincipalPaid: loan.TotalPrincipalPaid.Add(principalPaid),
	}
	newSavings := domain.SavingsState{
		Balance:          savings.Balance.Add(investmentReturn).Sub(tax).Sub(withdrawal).Add(contribution),
		TotalReturns:     savings.TotalReturns.Add(investmentReturn),
		TotalTaxesPaid:   savings.TotalTaxesPaid.Add(tax),
		TotalPocketMoney: savings.TotalPocketMoney.Add(pocketMoney),
	}

	return StepResult{
		Loan:                newLoan,
		Savings:             newSavings,
		InterestPaid:        interestPaid,
		PrincipalPaid:       principalPaid,
		InvestmentReturn:    investmentReturn,
		TaxPaid:             tax,
		SavingsContribution: contribution,
		SavingsWithdrawal:   withdrawal,
		PocketMoney:         pocketMoney,
	}
}

// investMonth handles the INVESTING phase after payoff: the entire former
// debt payment is contributed to savings, returns accrue on the balance
// after the contribution, and only CD returns are taxed as they accrue.
func investMonth(plan *domain.PlanConfig, derived domain.Derived, loan domain.LoanState, savings domain.SavingsState) StepResult {
	contribution := plan.TargetPayment

	base := savings.Balance.Add(contribution)
	investmentReturn := base.Mul(derived.MonthlyReturnRate)
	tax := decimal.Zero
	if plan.InvestmentType == domain.InvestmentCD {
		tax = investmentReturn.Mul(plan.TaxRate)
	}

	pocketMoney := decimal.Max(decimal.Zero, derived.MinimumPayment.Sub(plan.TargetPayment))

	newSavings := domain.SavingsState{
		Balance:          base.Add(investmentReturn).Sub(tax),
		TotalReturns:     savings.TotalReturns.Add(investmentReturn),
		TotalTaxesPaid:   savings.TotalTaxesPaid.Add(tax),
		TotalPocketMoney: savings.TotalPocketMoney.Add(pocketMoney),
	}

	return StepResult{
		Loan:                loan,
		Savings:             newSavings,
		InvestmentReturn:    investmentReturn,
		TaxPaid:             tax,
		SavingsContribution: contribution,
		PocketMoney:         pocketMoney,
	}
}

// savingsWithdrawal caps a savings-funded extra principal payment at the
// configured monthly amount (zero cap means unlimited), the funds actually
// available, and the principal still outstanding.
func savingsWithdrawal(plan *domain.PlanConfig, available, remainingPrincipal decimal.Decimal) decimal.Decimal {
	w := decimal.Min(available, remainingPrincipal)
	if plan.MonthlySavingsPayment.IsPositive() {
		w = decimal.Min(w, plan.MonthlySavingsPayment)
	}
	return decimal.Max(w, decimal.Zero)
}
