package ui

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"heartrisk/domain/patient"
	"heartrisk/domain/risk"
	"heartrisk/internal/predictor"
	"heartrisk/internal/report"
)

// formPage carries everything the form template needs: defaults or the
// previous submission, the label sets for the selects, and an optional
// error banner.
type formPage struct {
	Input     patient.PatientInput
	SexLabels []string
	CPLabels  []string
	FBSLabels []string
	ECGLabels []string
	ExLabels  []string
	SlLabels  []string
	CaLabels  []string
	ThLabels  []string
	Error     string
}

func newFormPage(input patient.PatientInput) formPage {
	return formPage{
		Input:     input,
		SexLabels: patient.SexLabels,
		CPLabels:  patient.ChestPainLabels,
		FBSLabels: patient.FastingBSLabels,
		ECGLabels: patient.RestECGLabels,
		ExLabels:  patient.ExerciseLabels,
		SlLabels:  patient.SlopeLabels,
		CaLabels:  patient.VesselsLabels,
		ThLabels:  patient.ThalLabels,
	}
}

// resultPage carries the verdict, charts, and download links.
type resultPage struct {
	Verdict  risk.Verdict
	Gauge    risk.GaugeSpec
	CholBar  risk.CholBarSpec
	ReportID string
	CSVName  string
	XLSXName string
}

// handleIndex renders the patient form with default values.
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", newFormPage(patient.Defaults))
}

// handlePredict runs one submission end to end: validate, encode, invoke
// the classifier, assemble the report, render the result page. Every
// submission is an independent request/response cycle.
func (s *Server) handlePredict(c *gin.Context) {
	input, err := parsePatientForm(c)
	if err != nil {
		log.Printf("[Predict] Rejected submission: %v", err)
		page := newFormPage(patient.Defaults)
		page.Error = err.Error()
		c.Status(http.StatusBadRequest)
		s.renderTemplate(c, "index.html", page)
		return
	}

	result, vector, err := predictor.Predict(s.classifier, input, s.delays.Analysis)
	if err != nil {
		log.Printf("[Predict] Prediction failed: %v", err)
		page := newFormPage(input)
		page.Error = err.Error()
		c.Status(http.StatusInternalServerError)
		s.renderTemplate(c, "index.html", page)
		return
	}

	// Presentational delay around report assembly, mirroring the one
	// around model invocation.
	if s.delays.Report > 0 {
		time.Sleep(s.delays.Report)
	}
	rep, err := report.Build(vector, result)
	if err != nil {
		log.Printf("[Predict] Report assembly failed: %v", err)
		page := newFormPage(input)
		page.Error = "Report could not be generated."
		c.Status(http.StatusInternalServerError)
		s.renderTemplate(c, "index.html", page)
		return
	}
	reportID := s.reports.Put(rep)

	s.renderTemplate(c, "result.html", resultPage{
		Verdict:  risk.BuildVerdict(result),
		Gauge:    risk.BuildGauge(result),
		CholBar:  risk.BuildCholBar(input.Chol),
		ReportID: reportID,
		CSVName:  report.CSVFileName,
		XLSXName: report.XLSXFileName,
	})
}

// handleReportCSV streams the generated report as the fixed-name CSV
// download.
func (s *Server) handleReportCSV(c *gin.Context) {
	rep, ok := s.reports.Get(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "Report not found or expired")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.CSVFileName+`"`)
	c.Header("Content-Type", report.CSVMimeType)
	if err := rep.WriteCSV(c.Writer); err != nil {
		log.Printf("[Report] CSV write failed: %v", err)
		c.String(http.StatusInternalServerError, "Report serialization failed")
	}
}

// handleReportXLSX streams the workbook variant of the same report.
func (s *Server) handleReportXLSX(c *gin.Context) {
	rep, ok := s.reports.Get(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "Report not found or expired")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.XLSXFileName+`"`)
	c.Header("Content-Type", report.XLSXMimeType)
	if err := rep.WriteXLSX(c.Writer); err != nil {
		log.Printf("[Report] XLSX write failed: %v", err)
		c.String(http.StatusInternalServerError, "Report serialization failed")
	}
}

// handleAbout renders the embedded interpretation notes from markdown.
func (s *Server) handleAbout(c *gin.Context) {
	source, err := fs.ReadFile(s.embeddedFiles, "ui/templates/about.md")
	if err != nil {
		log.Printf("[About] Notes not found: %v", err)
		c.String(http.StatusInternalServerError, "About page unavailable")
		return
	}

	body := markdown.ToHTML(source, nil, nil)
	s.renderTemplate(c, "about.html", gin.H{
		"Body": template.HTML(body),
	})
}
