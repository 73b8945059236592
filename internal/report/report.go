package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"heartrisk/domain/encoding"
	"heartrisk/domain/risk"
	"heartrisk/internal/errors"
)

// Download file names and MIME types for the generated report.
const (
	CSVFileName  = "heart_risk_report.csv"
	XLSXFileName = "heart_risk_report.xlsx"
	CSVMimeType  = "text/csv"
	XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Report is one submission flattened into a single tabular row: the
// encoded feature columns followed by prediction and risk_percent.
type Report struct {
	Vector      encoding.FeatureVector
	Prediction  int
	RiskPercent float64
}

// Header returns the fixed column order of the report.
func Header() []string {
	header := make([]string, 0, encoding.FeatureCount+2)
	header = append(header, encoding.ColumnNames[:]...)
	return append(header, "prediction", "risk_percent")
}

// Build assembles the report row. The risk percentage is the positive-class
// probability expressed as a percentage, rounded to two decimal places.
func Build(vector encoding.FeatureVector, result risk.Result) (Report, error) {
	pct, err := stats.Round(result.Probability*100, 2)
	if err != nil {
		return Report{}, errors.ReportError("failed to round risk percentage", err)
	}
	return Report{
		Vector:      vector,
		Prediction:  result.Label,
		RiskPercent: pct,
	}, nil
}

// Row returns the report values formatted as strings in header order.
func (r Report) Row() []string {
	row := make([]string, 0, encoding.FeatureCount+2)
	for _, v := range r.Vector {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row, strconv.Itoa(r.Prediction))
	return append(row, strconv.FormatFloat(r.RiskPercent, 'g', -1, 64))
}

// WriteCSV serializes the report as a header row plus one data row. The
// write is all-or-nothing: on error the download must not be offered.
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return errors.ReportError("failed to write report header", err)
	}
	if err := cw.Write(r.Row()); err != nil {
		return errors.ReportError("failed to write report row", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ReportError("failed to flush report", err)
	}
	return nil
}

// WriteXLSX serializes the report as a single-sheet workbook with the same
// header and row as the CSV.
func (r Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := Header()
	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.ReportError("failed to address header cell", err)
		}
		if err := f.SetCellValue("Sheet1", cell, name); err != nil {
			return errors.ReportError("failed to write header cell", err)
		}
	}

	values := make([]interface{}, 0, len(header))
	for _, v := range r.Vector {
		values = append(values, v)
	}
	values = append(values, r.Prediction, r.RiskPercent)
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return errors.ReportError("failed to address data cell", err)
		}
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			return errors.ReportError("failed to write data cell", err)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ReportError("failed to write workbook", err)
	}
	return nil
}
