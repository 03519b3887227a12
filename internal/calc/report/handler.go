// Package report renders a PDF summary of a settlement analysis, with
// optional consolidation timing, for handing to a client or an archive.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/consolidation"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
	"github.com/fuyu-hub/EduSolo-app/internal/log"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`

	Settlement    *settlement.Input    `json:"settlement,omitempty"`
	Consolidation *consolidation.Input `json:"consolidation,omitempty"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Settlement Analysis Report"
	}

	var settRes *settlement.Result
	if input.Settlement != nil {
		res, err := settlement.Calculate(*input.Settlement)
		if err != nil {
			log.Warnw("report settlement section rejected", "error", err)
			http.Error(w, err.Error(), calcerr.Status(err))
			return
		}
		settRes = &res
	}

	var consRes *consolidation.Result
	if input.Consolidation != nil {
		res, err := consolidation.Calculate(*input.Consolidation)
		if err != nil {
			log.Warnw("report consolidation section rejected", "error", err)
			http.Error(w, err.Error(), calcerr.Status(err))
			return
		}
		consRes = &res
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	if settRes != nil {
		writeSettlementSection(pdf, *input.Settlement, *settRes)
	}
	if consRes != nil {
		writeConsolidationSection(pdf, *consRes)
	}

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		log.Errorw("report generation failed", "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeSettlementSection(pdf *gofpdf.Fpdf, in settlement.Input, res settlement.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Primary Consolidation Settlement")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)

	lines := []string{
		fmt.Sprintf("Layer thickness: %.2f m, initial void ratio: %.3f", in.ThicknessM, in.VoidRatio),
		fmt.Sprintf("In-situ effective stress: %.2f kPa, preconsolidation: %.2f kPa", in.SigmaV0KPa, in.SigmaPKPa),
		fmt.Sprintf("Stress increment: %.2f kPa, final stress: %.2f kPa", in.DeltaSigmaKPa, res.SigmaVfKPa),
		fmt.Sprintf("Stress history: %s (OCR = %.2f)", res.State, res.OCR),
		fmt.Sprintf("Vertical strain: %.4f", res.Strain),
		fmt.Sprintf("Primary settlement: %.4f m", res.SettlementM),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeConsolidationSection(pdf *gofpdf.Fpdf, res consolidation.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Consolidation Timing")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)

	timeLine := fmt.Sprintf("Elapsed time: %.3f years (Tv = %.4f)", res.TimeYears, res.Tv)
	if res.UPercent == 100 {
		timeLine = "Full primary consolidation is only reached asymptotically"
	}
	lines := []string{
		timeLine,
		fmt.Sprintf("Average degree of consolidation: %.1f %%", res.UPercent),
		fmt.Sprintf("Settlement reached: %.4f m", res.SettlementM),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}
