package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// FindNetWorthCrossover finds the first month (if any) where series B's net
// worth overtakes series A's. Series must be aligned by index (same start
// month). The fraction interpolates linearly within the crossing month. If
// B never overtakes A, returns nil, nil.
func FindNetWorthCrossover(seriesA, seriesB []domain.MonthlyRecord) (*domain.Crossover, error) {
	if len(seriesA) == 0 || len(seriesB) == 0 {
		return nil, fmt.Errorf("one or both record series are empty")
	}

	n := len(seriesA)
	if len(seriesB) < n {
		n = len(seriesB)
	}

	cent := decimal.NewFromFloat(0.01)
	var prevDiff decimal.Decimal

	for i := 0; i < n; i++ {
		recA := &seriesA[i]
		recB := &seriesB[i]
		currDiff := recB.NetWorth().Sub(recA.NetWorth())

		// An exact tie at the very first index is trivial; keep looking.
		if currDiff.Abs().LessThan(cent) && i > 0 {
			return &domain.Crossover{
				Month:    recA.Month,
				NetWorth: recB.NetWorth(),
				Fraction: decimal.NewFromInt(1),
			}, nil
		}

		if i > 0 && prevDiff.IsNegative() && currDiff.GreaterThanOrEqual(decimal.Zero) {
			// diff(t) = prevDiff + t*(currDiff - prevDiff); solve diff(t) = 0.
			denom := currDiff.Sub(prevDiff)
			t := decimal.NewFromFloat(0.5)
			if !denom.IsZero() {
				t = prevDiff.Neg().Div(denom)
			}
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(decimal.NewFromInt(1)) {
				t = decimal.NewFromInt(1)
			}

			prevWorth := seriesB[i-1].NetWorth()
			worthAt := prevWorth.Add(recB.NetWorth().Sub(prevWorth).Mul(t))
			return &domain.Crossover{
				Month:    recA.Month,
				NetWorth: worthAt,
				Fraction: t,
			}, nil
		}

		prevDiff = currDiff
	}

	return nil, nil
}
