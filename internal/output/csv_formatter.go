package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter exports the full monthly time series, one row per record.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("csv formatter: no plan result to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Month", "Phase", "LoanBalance", "InterestPaid", "PrincipalPaid",
		"LumpSumApplied", "SavingsBalance", "InvestmentReturn", "TaxPaid",
		"SavingsContribution", "SavingsWithdrawal", "PocketMoney",
		"CumInterestPaid", "CumPrincipalPaid", "CumReturns", "CumTaxesPaid",
		"NetWorth",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range report.Result.Records {
		rec := &report.Result.Records[i]
		row := []string{
			strconv.Itoa(rec.Month),
			string(rec.Phase),
			rec.Loan.Balance.StringFixed(2),
			rec.InterestPaid.StringFixed(2),
			rec.PrincipalPaid.StringFixed(2),
			rec.LumpSumApplied.StringFixed(2),
			rec.Savings.Balance.StringFixed(2),
			rec.InvestmentReturn.StringFixed(2),
			rec.TaxPaid.StringFixed(2),
			rec.SavingsContribution.StringFixed(2),
			rec.SavingsWithdrawal.StringFixed(2),
			rec.PocketMoney.StringFixed(2),
			rec.Loan.TotalInterestPaid.StringFixed(2),
			rec.Loan.TotalPrincipalPaid.StringFixed(2),
			rec.Savings.TotalReturns.StringFixed(2),
			rec.Savings.TotalTaxesPaid.StringFixed(2),
			rec.NetWorth().StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
