package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders the report as a printable A4 document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("pdf formatter: no plan result to format")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	res := report.Result

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(pdfContentWidth, 12, "Debt Payoff vs Investment Plan", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pdfContentWidth, 8, "Plan Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	p.summaryLine(pdf, "Principal", FormatCurrency(res.Plan.Principal))
	p.summaryLine(pdf, "Loan Rate", FormatPercentage(res.Plan.AnnualLoanRate))
	p.summaryLine(pdf, "Term", FormatMonths(res.Plan.TermMonths))
	p.summaryLine(pdf, "Minimum Payment", FormatCurrency(res.Derived.MinimumPayment))
	p.summaryLine(pdf, "Target Payment", FormatCurrency(res.Plan.TargetPayment))
	p.summaryLine(pdf, "Investment", fmt.Sprintf("%s at %s, tax rate %s",
		res.Plan.InvestmentType, FormatPercentage(res.Plan.AnnualReturnRate), FormatPercentage(res.Plan.TaxRate)))
	p.summaryLine(pdf, "Payoff Month", strconv.Itoa(res.PayoffMonth))
	p.summaryLine(pdf, "Total Interest Paid", FormatCurrency(res.TotalInterestPaid))
	p.summaryLine(pdf, "Total Returns Earned", FormatCurrency(res.TotalReturns))
	p.summaryLine(pdf, "Total Taxes Paid", FormatCurrency(res.TotalTaxesPaid))
	p.summaryLine(pdf, "Final Savings", FormatCurrency(res.FinalSavings))
	p.summaryLine(pdf, "Final Net Worth", FormatCurrency(res.FinalNetWorth))
	pdf.Ln(6)

	p.yearlyTable(pdf, res)

	if report.Comparison != nil {
		p.comparisonTable(pdf, report.Comparison)
	}
	if report.MonteCarlo != nil {
		p.monteCarloSection(pdf, report.MonteCarlo)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p PDFFormatter) summaryLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(pdfContentWidth-60, 6, value, "", 1, "L", false, 0, "")
}

func (p PDFFormatter) yearlyTable(pdf *fpdf.Fpdf, res *domain.PlanResult) {
	if len(res.Records) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pdfContentWidth, 8, "Balances by Year", "B", 1, "L", false, 0, "")

	widths := []float64{20, 30, 45, 45, 40}
	headers := []string{"Month", "Phase", "Loan Balance", "Savings", "Net Worth"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range res.Records {
		rec := &res.Records[i]
		if rec.Month%12 != 0 && i != len(res.Records)-1 {
			continue
		}
		cells := []string{
			strconv.Itoa(rec.Month),
			string(rec.Phase),
			FormatCurrency(rec.Loan.Balance),
			FormatCurrency(rec.Savings.Balance),
			FormatCurrency(rec.NetWorth()),
		}
		for j, cell := range cells {
			align := "R"
			if j < 2 {
				align = "C"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (p PDFFormatter) comparisonTable(pdf *fpdf.Fpdf, comparison *domain.StrategyComparison) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pdfContentWidth, 8, "Strategy Comparison", "B", 1, "L", false, 0, "")

	widths := []float64{45, 25, 40, 40, 30}
	headers := []string{"Strategy", "Payoff", "Interest Paid", "Net Worth", "Overtakes"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range comparison.Strategies {
		s := &comparison.Strategies[i]
		overtakes := "-"
		if cross, ok := comparison.Crossovers[s.Name]; ok {
			overtakes = "month " + strconv.Itoa(cross.Month)
		}
		cells := []string{
			s.Name,
			FormatMonths(s.PayoffMonth),
			FormatCurrency(s.TotalInterestPaid),
			FormatCurrency(s.FinalNetWorth),
			overtakes,
		}
		for j, cell := range cells {
			align := "R"
			if j == 0 || j == 4 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (p PDFFormatter) monteCarloSection(pdf *fpdf.Fpdf, mc *domain.MonteCarloResult) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pdfContentWidth, 8, "Monte Carlo Outcomes", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	p.summaryLine(pdf, "Simulations", strconv.Itoa(mc.NumSimulations))
	p.summaryLine(pdf, "Annual Volatility", FormatPercentage(mc.AnnualVolatility))
	p.summaryLine(pdf, "Payoff Rate", FormatPercentage(mc.PayoffRate))
	p.summaryLine(pdf, "Median Net Worth", FormatCurrency(mc.MedianNetWorth))
	p.summaryLine(pdf, "P10 / P90 Net Worth", fmt.Sprintf("%s / %s",
		FormatCurrency(mc.Percentiles.P10), FormatCurrency(mc.Percentiles.P90)))
}
