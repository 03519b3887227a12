package importer_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/importer"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"thickness_m", "void_ratio", "cc", "cr", "sigma_v0_kpa", "sigma_p_kpa", "delta_sigma_kpa"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func postSheet(t *testing.T, sheet *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "layers.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&importer.Handler{}).Settlement(rec, req)
	return rec
}

// TestSettlement_ImportsRowsAndSkipsMalformed: valid rows are calculated,
// rows with bad numbers or failing validation are counted as skipped.
func TestSettlement_ImportsRowsAndSkipsMalformed(t *testing.T) {
	sheet := buildSheet(t, [][]interface{}{
		{2.0, 0.8, 0.25, 0.05, 100.0, 100.0, 50.0},
		{3.0, 1.1, 0.30, 0.06, 80.0, 160.0, 40.0},
		{"not-a-number", 0.8, 0.25, 0.05, 100.0, 100.0, 50.0},
		{-2.0, 0.8, 0.25, 0.05, 100.0, 100.0, 50.0},
	})

	rec := postSheet(t, sheet)
	require.Equal(t, http.StatusOK, rec.Code)

	var out importer.SettlementImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))

	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 2, out.Skipped)
	require.Len(t, out.Results, 2)
	assert.InDelta(t, out.Results[0].SettlementM+out.Results[1].SettlementM, out.TotalSettlementM, 1e-12)
}

func TestSettlement_RejectsMissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/import", nil)
	rec := httptest.NewRecorder()
	(&importer.Handler{}).Settlement(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettlement_RejectsEmptySheet(t *testing.T) {
	rec := postSheet(t, buildSheet(t, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
