package output

import (
	"bytes"
	"fmt"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// ConsoleFormatter renders a concise text summary of a plan run, with
// optional strategy comparison and Monte Carlo sections.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("console formatter: no plan result to format")
	}
	var buf bytes.Buffer
	res := report.Result

	fmt.Fprintln(&buf, "DEBT PAYOFF VS INVESTMENT PLAN")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "Principal:        %s at %s over %s\n",
		FormatCurrency(res.Plan.Principal),
		FormatPercentage(res.Plan.AnnualLoanRate),
		FormatMonths(res.Plan.TermMonths))
	fmt.Fprintf(&buf, "Minimum Payment:  %s\n", FormatCurrency(res.Derived.MinimumPayment))
	fmt.Fprintf(&buf, "Target Payment:   %s\n", FormatCurrency(res.Plan.TargetPayment))
	fmt.Fprintf(&buf, "Investment:       %s at %s, tax rate %s\n",
		res.Plan.InvestmentType,
		FormatPercentage(res.Plan.AnnualReturnRate),
		FormatPercentage(res.Plan.TaxRate))
	fmt.Fprintln(&buf)

	if res.PayoffMonth > 0 {
		fmt.Fprintf(&buf, "Loan paid off at month %d (%s)\n", res.PayoffMonth, FormatMonths(res.PayoffMonth))
	} else {
		fmt.Fprintln(&buf, "Loan paid off before month 1")
	}
	fmt.Fprintf(&buf, "Total Interest Paid:   %s\n", FormatCurrency(res.TotalInterestPaid))
	fmt.Fprintf(&buf, "Total Principal Paid:  %s\n", FormatCurrency(res.TotalPrincipalPaid))
	fmt.Fprintf(&buf, "Total Returns Earned:  %s\n", FormatCurrency(res.TotalReturns))
	fmt.Fprintf(&buf, "Total Taxes Paid:      %s\n", FormatCurrency(res.TotalTaxesPaid))
	fmt.Fprintf(&buf, "Total Pocket Money:    %s\n", FormatCurrency(res.TotalPocketMoney))
	fmt.Fprintf(&buf, "Final Savings:         %s\n", FormatCurrency(res.FinalSavings))
	fmt.Fprintf(&buf, "Final Net Worth:       %s\n", FormatCurrency(res.FinalNetWorth))

	c.writeYearlyTable(&buf, res)

	if report.Comparison != nil {
		c.writeComparison(&buf, report.Comparison)
	}
	if report.MonteCarlo != nil {
		c.writeMonteCarlo(&buf, report.MonteCarlo)
	}

	return buf.Bytes(), nil
}

// writeYearlyTable prints one row per simulated year (every 12th record)
// plus the final month.
func (c ConsoleFormatter) writeYearlyTable(buf *bytes.Buffer, res *domain.PlanResult) {
	if len(res.Records) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-8s %-10s %16s %16s %14s\n", "Month", "Phase", "Loan Balance", "Savings", "Net Worth")
	for i := range res.Records {
		rec := &res.Records[i]
		if rec.Month%12 != 0 && i != len(res.Records)-1 {
			continue
		}
		fmt.Fprintf(buf, "%-8d %-10s %16s %16s %14s\n",
			rec.Month,
			rec.Phase,
			FormatCurrency(rec.Loan.Balance),
			FormatCurrency(rec.Savings.Balance),
			FormatCurrency(rec.NetWorth()))
	}
}

func (c ConsoleFormatter) writeComparison(buf *bytes.Buffer, comparison *domain.StrategyComparison) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "STRATEGY COMPARISON")
	fmt.Fprintf(buf, "%-20s %10s %16s %16s %16s\n", "Strategy", "Payoff", "Interest Paid", "Final Savings", "Net Worth")
	for i := range comparison.Strategies {
		s := &comparison.Strategies[i]
		fmt.Fprintf(buf, "%-20s %10s %16s %16s %16s\n",
			s.Name,
			FormatMonths(s.PayoffMonth),
			FormatCurrency(s.TotalInterestPaid),
			FormatCurrency(s.FinalSavings),
			FormatCurrency(s.FinalNetWorth))
	}
	for i := range comparison.Strategies {
		name := comparison.Strategies[i].Name
		if cross, ok := comparison.Crossovers[name]; ok {
			fmt.Fprintf(buf, "%q overtakes %q around month %d (net worth %s)\n",
				name, comparison.Baseline, cross.Month, FormatCurrency(cross.NetWorth))
		}
	}
	if best := comparison.Best(); best != nil {
		fmt.Fprintf(buf, "Best final net worth: %s (%s)\n", best.Name, FormatCurrency(best.FinalNetWorth))
	}
}

func (c ConsoleFormatter) writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResult) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "MONTE CARLO (randomized investment returns)")
	fmt.Fprintf(buf, "Simulations: %d   Volatility: %s   Seed: %d\n",
		mc.NumSimulations, FormatPercentage(mc.AnnualVolatility), mc.Seed)
	fmt.Fprintf(buf, "Payoff rate within horizon: %s\n", FormatPercentage(mc.PayoffRate))
	fmt.Fprintf(buf, "Final net worth percentiles: P10=%s P25=%s P50=%s P75=%s P90=%s\n",
		FormatCurrency(mc.Percentiles.P10),
		FormatCurrency(mc.Percentiles.P25),
		FormatCurrency(mc.Percentiles.P50),
		FormatCurrency(mc.Percentiles.P75),
		FormatCurrency(mc.Percentiles.P90))
}
