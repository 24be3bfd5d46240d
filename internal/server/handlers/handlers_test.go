package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"planhotel/internal/model"
	"planhotel/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.SessionStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	sessionStore := store.NewSessionStore()

	router := gin.New()
	NewHandlers(sessionStore, 30).RegisterRoutes(router.Group("/api"))
	return router, sessionStore
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (Response, json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: http %d", method, path, rec.Code)
	}

	var resp struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode: %v (%s)", method, path, err, rec.Body.String())
	}
	return Response{Code: resp.Code, Message: resp.Message}, resp.Data
}

// planningWorkbook construit un petit planning valide en mémoire
func planningWorkbook(t *testing.T) []byte {
	t.Helper()

	rows := [][]string{
		{"HOTEL DU LAC", "", "", "6/1/2024", "6/2/2024", "6/3/2024"},
		{"Chambre Deluxe", "", "Left for sale", "3", "2", "0"},
		{"Chambre Deluxe", "OTA-RO-FLEX - Flexible", "Price (EUR)", "100", "80", "90"},
	}

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell ref: %v", err)
			}
			if err := f.SetCellStr(sheet, ref, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func importPlanning(t *testing.T, router *gin.Engine, fileName string, content []byte) (Response, json.RawMessage) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("import: http %d", rec.Code)
	}
	var resp struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("import: decode: %v", err)
	}
	return Response{Code: resp.Code, Message: resp.Message}, resp.Data
}

func TestGetStatus_EmptySession(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	resp, data := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if resp.Code != 0 {
		t.Fatalf("code = %d: %s", resp.Code, resp.Message)
	}

	var status StatusResponse
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Loaded {
		t.Fatalf("session must start empty")
	}
	if status.PartnersCount != 3 {
		t.Fatalf("partnersCount = %d, want 3", status.PartnersCount)
	}
}

func TestImportThenSimulate(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	resp, data := importPlanning(t, router, "planning.xlsx", planningWorkbook(t))
	if resp.Code != 0 {
		t.Fatalf("import code = %d: %s", resp.Code, resp.Message)
	}
	var summary struct {
		HotelName string `json:"hotelName"`
		Dates     int    `json:"dates"`
		Pricing   int    `json:"pricing"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.HotelName != "HOTEL DU LAC" || summary.Dates != 3 || summary.Pricing != 3 {
		t.Fatalf("summary = %+v", summary)
	}

	resp, data = doJSON(t, router, http.MethodPost, "/api/simulate", map[string]interface{}{
		"partnerName": "Booking.com",
		"roomType":    "Chambre Deluxe",
		"ratePlan":    "OTA-RO-FLEX",
		"startDate":   "2024-06-01",
		"endDate":     "2024-06-03",
	})
	if resp.Code != 0 {
		t.Fatalf("simulate code = %d: %s", resp.Code, resp.Message)
	}

	var result model.SimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	// Moyenne 90, commission Booking.com 15%
	if result.GrossPrice != 90 || result.NetPrice != 76.5 {
		t.Fatalf("result = %+v, want gross 90 / net 76.5", result)
	}
	if result.Nights != 3 || !result.Available {
		t.Fatalf("result = %+v", result)
	}
}

func TestSimulate_WithoutDataset(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	resp, _ := doJSON(t, router, http.MethodPost, "/api/simulate", map[string]interface{}{
		"partnerName": "Booking.com",
	})
	if resp.Code != 2001 {
		t.Fatalf("code = %d, want 2001", resp.Code)
	}
}

func TestSimulate_UnauthorizedPlan(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	if resp, _ := importPlanning(t, router, "planning.xlsx", planningWorkbook(t)); resp.Code != 0 {
		t.Fatalf("import failed: %s", resp.Message)
	}

	resp, _ := doJSON(t, router, http.MethodPost, "/api/simulate", map[string]interface{}{
		"partnerName": "Expedia",
		"roomType":    "Chambre Deluxe",
		"ratePlan":    "VIP-SUITE",
		"startDate":   "2024-06-01",
		"endDate":     "2024-06-03",
	})
	if resp.Code != 3001 {
		t.Fatalf("code = %d, want 3001 (%s)", resp.Code, resp.Message)
	}
}

func TestImport_RejectsWrongExtension(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	resp, _ := importPlanning(t, router, "planning.txt", []byte("pas un classeur"))
	if resp.Code != 1002 {
		t.Fatalf("code = %d, want 1002", resp.Code)
	}
}

func TestResetDropsDataset(t *testing.T) {
	t.Parallel()

	router, sessionStore := newTestRouter(t)
	if resp, _ := importPlanning(t, router, "planning.xlsx", planningWorkbook(t)); resp.Code != 0 {
		t.Fatalf("import failed: %s", resp.Message)
	}

	resp, _ := doJSON(t, router, http.MethodPost, "/api/reset", nil)
	if resp.Code != 0 {
		t.Fatalf("reset code = %d", resp.Code)
	}
	if sessionStore.Dataset() != nil {
		t.Fatalf("dataset must be gone after reset")
	}
	// Les partenaires survivent au reset
	if len(sessionStore.Partners()) != 3 {
		t.Fatalf("partners must survive reset")
	}
}

func TestPartnersCRUDOverHTTP(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	resp, _ := doJSON(t, router, http.MethodPost, "/api/partners", map[string]interface{}{
		"name":       "Hotelbeds",
		"commission": 18,
		"codesRaw":   "HB-RO, HB-BB",
	})
	if resp.Code != 0 {
		t.Fatalf("add code = %d: %s", resp.Code, resp.Message)
	}

	// Doublon refusé
	resp, _ = doJSON(t, router, http.MethodPost, "/api/partners", map[string]interface{}{
		"name":       "Hotelbeds",
		"commission": 10,
	})
	if resp.Code != 4001 {
		t.Fatalf("duplicate code = %d, want 4001", resp.Code)
	}

	resp, data := doJSON(t, router, http.MethodGet, "/api/partners", nil)
	if resp.Code != 0 {
		t.Fatalf("list code = %d", resp.Code)
	}
	var partners []model.Partner
	if err := json.Unmarshal(data, &partners); err != nil {
		t.Fatalf("decode partners: %v", err)
	}
	if len(partners) != 4 {
		t.Fatalf("got %d partners, want 4", len(partners))
	}
	for _, p := range partners {
		if p.Name == "Hotelbeds" && len(p.Codes) != 2 {
			t.Fatalf("codesRaw must split on commas: %+v", p)
		}
	}

	resp, _ = doJSON(t, router, http.MethodDelete, "/api/partners/Hotelbeds", nil)
	if resp.Code != 0 {
		t.Fatalf("delete code = %d: %s", resp.Code, resp.Message)
	}
}

func TestExportDownloadRoundTrip(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	resp, data := doJSON(t, router, http.MethodPost, "/api/export/simulations", map[string]interface{}{
		"results": []model.SimulationResult{
			{
				RoomType:          "Chambre Deluxe",
				RatePlan:          "OTA-RO-FLEX",
				Partner:           "Booking.com",
				StartDate:         "2024-06-01",
				EndDate:           "2024-06-03",
				GrossPrice:        90,
				CommissionPercent: 15,
				NetPrice:          76.5,
			},
		},
	})
	if resp.Code != 0 {
		t.Fatalf("export code = %d: %s", resp.Code, resp.Message)
	}

	var export struct {
		Token    string `json:"token"`
		FileName string `json:"fileName"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if export.Token == "" || !strings.HasSuffix(export.FileName, ".csv") {
		t.Fatalf("export = %+v", export)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export/download/"+export.Token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("download: http %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Type Chambre") || !strings.Contains(body, "76.50") {
		t.Fatalf("unexpected csv body: %q", body)
	}
}

func TestDownload_UnknownToken(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	resp, _ := doJSON(t, router, http.MethodGet, "/api/export/download/inconnu", nil)
	if resp.Code != 2002 {
		t.Fatalf("code = %d, want 2002", resp.Code)
	}
}

func TestForecast_SeedQueryIsReproducible(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	if resp, _ := importPlanning(t, router, "planning.xlsx", planningWorkbook(t)); resp.Code != 0 {
		t.Fatalf("import failed: %s", resp.Message)
	}

	_, first := doJSON(t, router, http.MethodGet, "/api/analytics/forecast?days=10&seed=42", nil)
	_, second := doJSON(t, router, http.MethodGet, "/api/analytics/forecast?days=10&seed=42", nil)
	if !bytes.Equal(first, second) {
		t.Fatalf("same seed must give identical forecasts")
	}

	var points []model.ForecastPoint
	if err := json.Unmarshal(first, &points); err != nil {
		t.Fatalf("decode forecast: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
}
