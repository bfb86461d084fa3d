package calculation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// MonteCarloConfig holds configuration for randomized-return simulations.
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64
	// AnnualVolatility is the standard deviation of the annual investment
	// return; monthly returns are sampled around the plan's configured
	// mean. The loan rate stays fixed.
	AnnualVolatility decimal.Decimal
}

// MonteCarloSimulator runs a plan repeatedly with randomly sampled monthly
// investment returns to show the spread of outcomes around the
// deterministic projection.
type MonteCarloSimulator struct {
	NumSimulations int
	Seed           int64
	Volatility     decimal.Decimal
	Logger         Logger
}

var seedFunc = func() int64 { return time.Now().UnixNano() }

// NewMonteCarloSimulator creates a simulator. A zero seed picks one from
// the clock; a fixed seed makes the whole run reproducible.
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.NumSimulations <= 0 {
		config.NumSimulations = 1000
	}
	return &MonteCarloSimulator{
		NumSimulations: config.NumSimulations,
		Seed:           config.Seed,
		Volatility:     config.AnnualVolatility,
		Logger:         NopLogger{},
	}
}

// Run executes the randomized simulations for one plan. Each run covers the
// plan's full horizon with fresh sampled returns; a run that has not paid
// the loan off by the horizon is counted as a failed payoff rather than
// extended, so every run spans the same number of months.
func (mc *MonteCarloSimulator) Run(plan *domain.PlanConfig) (*domain.MonteCarloResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if mc.Volatility.IsNegative() {
		return nil, fmt.Errorf("%w: volatility cannot be negative, got %s", ErrInvalidConfig, mc.Volatility)
	}

	derived := domain.NewDerived(plan)
	meanMonthly := derived.MonthlyReturnRate.InexactFloat64()
	monthlyVol := mc.Volatility.InexactFloat64() / math.Sqrt(12)

	rng := rand.New(rand.NewSource(mc.Seed))
	horizon := plan.Horizon()

	outcomes := make([]domain.RunOutcome, mc.NumSimulations)
	paidOffRuns := 0

	for run := 0; run < mc.NumSimulations; run++ {
		loan := domain.LoanState{Balance: plan.Principal, TotalInterestPaid: decimal.Zero, TotalPrincipalPaid: decimal.Zero}
		savings := domain.SavingsState{Balance: plan.InitialSavings, TotalReturns: decimal.Zero, TotalTaxesPaid: decimal.Zero, TotalPocketMoney: decimal.Zero}
		if plan.LumpSumMonth == 0 {
			applyLumpSum(&loan, &savings, plan.LumpSum)
		}
		paidOff := loan.PaidOff()
		payoffMonth := 0

		for month := 1; month <= horizon; month++ {
			if month == plan.LumpSumMonth && !paidOff {
				applyLumpSum(&loan, &savings, plan.LumpSum)
			}
			monthDerived := derived
			monthDerived.MonthlyReturnRate = sampleMonthlyReturn(rng, meanMonthly, monthlyVol)

			step := ProcessMonth(plan, monthDerived, loan, savings, paidOff)
			loan, savings = step.Loan, step.Savings
			if !paidOff && loan.PaidOff() {
				paidOff = true
				payoffMonth = month
			}
		}

		if paidOff {
			paidOffRuns++
		}
		outcomes[run] = domain.RunOutcome{
			PaidOff:       paidOff,
			PayoffMonth:   payoffMonth,
			FinalSavings:  savings.Balance,
			FinalNetWorth: savings.Balance.Sub(loan.Balance),
		}
	}

	worths := make([]decimal.Decimal, len(outcomes))
	for i, o := range outcomes {
		worths[i] = o.FinalNetWorth
	}
	sort.Slice(worths, func(i, j int) bool { return worths[i].LessThan(worths[j]) })

	result := &domain.MonteCarloResult{
		NumSimulations:   mc.NumSimulations,
		Seed:             mc.Seed,
		AnnualVolatility: mc.Volatility,
		PayoffRate: decimal.NewFromInt(int64(paidOffRuns)).
			Div(decimal.NewFromInt(int64(mc.NumSimulations))),
		MedianNetWorth: percentile(worths, 0.50),
		Percentiles: domain.PercentileRanges{
			P10: percentile(worths, 0.10),
			P25: percentile(worths, 0.25),
			P50: percentile(worths, 0.50),
			P75: percentile(worths, 0.75),
			P90: percentile(worths, 0.90),
		},
		Outcomes: outcomes,
	}
	mc.Logger.Infof("monte carlo: %d runs, payoff rate %s, median net worth %s",
		mc.NumSimulations, result.PayoffRate.StringFixed(4), result.MedianNetWorth.StringFixed(2))
	return result, nil
}

// sampleMonthlyReturn draws a normally distributed monthly return rate. The
// draw is floored at -100%; a balance cannot lose more than itself.
func sampleMonthlyReturn(rng *rand.Rand, mean, stddev float64) decimal.Decimal {
	sample := mean + rng.NormFloat64()*stddev
	if sample < -1 {
		sample = -1
	}
	return decimal.NewFromFloat(sample)
}

// percentile returns the value at the given fraction of a sorted slice
// using nearest-rank with linear interpolation.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := decimal.NewFromFloat(pos - float64(lower))
	return sorted[lower].Add(sorted[upper].Sub(sorted[lower]).Mul(frac))
}
