// Package importer ingests settlement layer data from an uploaded XLSX
// sheet and runs the calculation per row. Malformed rows are skipped so one
// bad line does not sink a whole worksheet.
package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
	"github.com/fuyu-hub/EduSolo-app/internal/log"
)

type Handler struct{}

type SettlementImportResult struct {
	Count            int                 `json:"count"`
	Skipped          int                 `json:"skipped"`
	Results          []settlement.Result `json:"results"`
	TotalSettlementM float64             `json:"total_settlement_m"`
}

func (h *Handler) Settlement(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := SettlementImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := parseSettlementRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := settlement.Calculate(input)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
		out.TotalSettlementM += res.SettlementM
	}
	out.Count = len(out.Results)
	log.Infow("settlement import processed", "rows", len(rows)-1, "accepted", out.Count, "skipped", out.Skipped)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// parseSettlementRow expects: thickness_m, void_ratio, cc, cr, sigma_v0_kpa,
// sigma_p_kpa, delta_sigma_kpa.
func parseSettlementRow(row []string) (settlement.Input, error) {
	if len(row) < 7 {
		return settlement.Input{}, fmt.Errorf("bad row")
	}
	vals := make([]float64, 7)
	for i := 0; i < 7; i++ {
		v, err := toFloat(row[i])
		if err != nil {
			return settlement.Input{}, err
		}
		vals[i] = v
	}
	return settlement.Input{
		ThicknessM:    vals[0],
		VoidRatio:     vals[1],
		Cc:            vals[2],
		Cr:            vals[3],
		SigmaV0KPa:    vals[4],
		SigmaPKPa:     vals[5],
		DeltaSigmaKPa: vals[6],
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
