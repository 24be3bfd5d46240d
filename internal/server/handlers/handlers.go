package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"planhotel/internal/analytics"
	"planhotel/internal/exporter"
	"planhotel/internal/importer"
	"planhotel/internal/model"
	"planhotel/internal/parser"
	"planhotel/internal/store"
)

// Handlers API du planning hôtelier
type Handlers struct {
	store           *store.SessionStore
	parser          *parser.PlanningParser
	forecastHorizon int
	downloads       *downloadStore
}

// NewHandlers crée les handlers
func NewHandlers(sessionStore *store.SessionStore, forecastHorizon int) *Handlers {
	if forecastHorizon <= 0 {
		forecastHorizon = analytics.DefaultForecastHorizonDays
	}
	return &Handlers{
		store:           sessionStore,
		parser:          parser.NewPlanningParser(),
		forecastHorizon: forecastHorizon,
		downloads:       newDownloadStore(),
	}
}

// RegisterRoutes enregistre les routes de l'API
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	// État de session
	router.GET("/status", h.GetStatus)

	// Planning
	router.POST("/import", h.ImportPlanning)
	router.POST("/reset", h.ResetPlanning)
	router.GET("/planning", h.GetPlanning)

	// Disponibilités et simulation
	router.GET("/availability", h.GetAvailability)
	router.POST("/simulate", h.Simulate)

	// Partenaires OTA
	router.GET("/partners", h.ListPartners)
	router.POST("/partners", h.AddPartner)
	router.PUT("/partners", h.ReplacePartners)
	router.PUT("/partners/:name", h.UpdatePartner)
	router.DELETE("/partners/:name", h.DeletePartner)

	// Analytics
	router.POST("/analytics/disparities", h.AnalyzeDisparities)
	router.GET("/analytics/monthly", h.GetMonthlyTrends)
	router.POST("/analytics/compare", h.CompareStrategies)
	router.GET("/analytics/forecast", h.GetForecast)

	// Export CSV
	router.POST("/export/simulations", h.ExportSimulations)
	router.GET("/export/download/:token", h.DownloadExport)
}

// Response enveloppe commune des réponses
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// domainError traduit les erreurs métier en codes de réponse
func domainError(c *gin.Context, err error) {
	var invalidInput *model.InvalidInputError
	var incomplete *model.IncompleteRequestError
	var unauthorized *model.UnauthorizedRatePlanError
	var noPricing *model.NoPricingDataError

	switch {
	case errors.As(err, &incomplete):
		errorResponse(c, 1001, err.Error())
	case errors.As(err, &invalidInput):
		errorResponse(c, 1002, err.Error())
	case errors.As(err, &unauthorized):
		errorResponse(c, 3001, err.Error())
	case errors.As(err, &noPricing):
		errorResponse(c, 3002, err.Error())
	default:
		errorResponse(c, 5000, err.Error())
	}
}

// dataset jeu de données courant, répond 2001 si aucun planning importé
func (h *Handlers) dataset(c *gin.Context) (*model.PlanningDataset, bool) {
	dataset := h.store.Dataset()
	if dataset == nil {
		errorResponse(c, 2001, "aucun planning importé")
		return nil, false
	}
	return dataset, true
}

// StatusResponse état de la session
type StatusResponse struct {
	Loaded        bool   `json:"loaded"`
	HotelName     string `json:"hotelName,omitempty"`
	FileName      string `json:"fileName,omitempty"`
	ImportedAt    string `json:"importedAt,omitempty"`
	FirstDate     string `json:"firstDate,omitempty"`
	LastDate      string `json:"lastDate,omitempty"`
	RoomTypes     int    `json:"roomTypes"`
	RatePlans     int    `json:"ratePlans"`
	Availability  int    `json:"availability"`
	Pricing       int    `json:"pricing"`
	PartnersCount int    `json:"partnersCount"`
}

// GetStatus état de la session
// GET /api/status
func (h *Handlers) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		PartnersCount: len(h.store.Partners()),
	}

	dataset := h.store.Dataset()
	if dataset != nil {
		fileName, importedAt := h.store.ImportInfo()
		resp.Loaded = true
		resp.HotelName = dataset.HotelName
		resp.FileName = fileName
		resp.ImportedAt = importedAt.Format(time.RFC3339)
		if len(dataset.Dates) > 0 {
			resp.FirstDate = dataset.Dates[0]
			resp.LastDate = dataset.Dates[len(dataset.Dates)-1]
		}
		resp.RoomTypes = len(dataset.RoomTypes)
		resp.RatePlans = len(dataset.RatePlans)
		resp.Availability = len(dataset.Availability)
		resp.Pricing = len(dataset.Pricing)
	}

	success(c, resp)
}

// ImportPlanning charge un planning Excel et remplace le jeu de données
// POST /api/import (multipart, champ "file")
func (h *Handlers) ImportPlanning(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "veuillez fournir un fichier")
		return
	}
	defer file.Close()

	// 10 Mo suffisent largement pour un planning annuel
	if header.Size > 10*1024*1024 {
		errorResponse(c, 1003, "fichier trop volumineux, maximum 10 Mo")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1002, "seuls les formats .xlsx et .xls sont acceptés")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "lecture du fichier impossible")
		return
	}

	reader := importer.NewExcelReader()
	if err := reader.Load(bytes.NewReader(content)); err != nil {
		errorResponse(c, 1002, "analyse du classeur impossible: "+err.Error())
		return
	}
	defer reader.Close()

	grid, err := reader.Grid()
	if err != nil {
		errorResponse(c, 1002, "lecture de la feuille impossible: "+err.Error())
		return
	}

	dataset, err := h.parser.Parse(grid)
	if err != nil {
		domainError(c, err)
		return
	}

	h.store.SetDataset(dataset, header.Filename)

	success(c, gin.H{
		"fileId":       reader.FileID(),
		"fileName":     header.Filename,
		"hotelName":    dataset.HotelName,
		"dates":        len(dataset.Dates),
		"roomTypes":    len(dataset.RoomTypes),
		"ratePlans":    len(dataset.RatePlans),
		"availability": len(dataset.Availability),
		"pricing":      len(dataset.Pricing),
	})
}

// ResetPlanning abandonne le planning courant
// POST /api/reset
func (h *Handlers) ResetPlanning(c *gin.Context) {
	h.store.Reset()
	success(c, gin.H{"reset": true})
}

// GetPlanning jeu de données complet
// GET /api/planning
func (h *Handlers) GetPlanning(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}
	success(c, dataset)
}

// GetAvailability disponibilités jour par jour sur une plage
// GET /api/availability?start=...&end=...&roomTypes=a,b
func (h *Handlers) GetAvailability(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		errorResponse(c, 1001, "paramètres start et end requis")
		return
	}

	var roomTypes []string
	if raw := c.Query("roomTypes"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				roomTypes = append(roomTypes, name)
			}
		}
	}

	days, err := analytics.QueryAvailability(dataset, start, end, roomTypes)
	if err != nil {
		domainError(c, err)
		return
	}
	success(c, days)
}

// simulateBody corps d'une demande de simulation
type simulateBody struct {
	analytics.SimulationRequest
	ApplyCommission            *bool   `json:"applyCommission"`
	PromotionalDiscountPercent float64 `json:"promotionalDiscountPercent"`
}

// Simulate simulation de réservation
// POST /api/simulate
func (h *Handlers) Simulate(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	var body simulateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}

	// La commission s'applique sauf refus explicite
	applyCommission := true
	if body.ApplyCommission != nil {
		applyCommission = *body.ApplyCommission
	}

	result, err := analytics.Simulate(dataset, h.store.Partners(), body.SimulationRequest, analytics.SimulationOptions{
		ApplyCommission:            applyCommission,
		PromotionalDiscountPercent: body.PromotionalDiscountPercent,
	})
	if err != nil {
		domainError(c, err)
		return
	}
	success(c, result)
}

// ListPartners liste des partenaires
// GET /api/partners
func (h *Handlers) ListPartners(c *gin.Context) {
	success(c, h.store.Partners())
}

// partnerBody corps d'ajout/modification d'un partenaire
// Les codes acceptent une liste ou une chaîne "A, B, C" comme le formulaire
type partnerBody struct {
	Name       string   `json:"name"`
	Commission float64  `json:"commission"`
	Codes      []string `json:"codes"`
	CodesRaw   string   `json:"codesRaw"`
}

func (b *partnerBody) partner() model.Partner {
	codes := b.Codes
	if len(codes) == 0 && b.CodesRaw != "" {
		for _, code := range strings.Split(b.CodesRaw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}
	return model.Partner{
		Name:       strings.TrimSpace(b.Name),
		Commission: b.Commission,
		Codes:      codes,
	}
}

// AddPartner ajoute un partenaire
// POST /api/partners
func (h *Handlers) AddPartner(c *gin.Context) {
	var body partnerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}

	p := body.partner()
	if p.Name == "" {
		errorResponse(c, 1001, "nom du partenaire requis")
		return
	}
	if err := h.store.AddPartner(p); err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, p)
}

// UpdatePartner remplace un partenaire existant
// PUT /api/partners/:name
func (h *Handlers) UpdatePartner(c *gin.Context) {
	var body partnerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}

	p := body.partner()
	if p.Name == "" {
		errorResponse(c, 1001, "nom du partenaire requis")
		return
	}
	if err := h.store.UpdatePartner(c.Param("name"), p); err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, p)
}

// DeletePartner supprime un partenaire
// DELETE /api/partners/:name
func (h *Handlers) DeletePartner(c *gin.Context) {
	if err := h.store.DeletePartner(c.Param("name")); err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, gin.H{"deleted": true})
}

// ReplacePartners remplace toute la liste depuis une configuration JSON
// PUT /api/partners
func (h *Handlers) ReplacePartners(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}
	if err := h.store.LoadPartnerConfig(data); err != nil {
		domainError(c, err)
		return
	}
	success(c, h.store.Partners())
}

// AnalyzeDisparities analyse des disparités tarifaires
// POST /api/analytics/disparities
func (h *Handlers) AnalyzeDisparities(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	var filter analytics.DisparityFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}
	if filter.StartDate == "" || filter.EndDate == "" {
		errorResponse(c, 1001, "champs startDate et endDate requis")
		return
	}

	disparities := analytics.AnalyzeDisparities(dataset, filter)
	success(c, gin.H{
		"disparities": disparities,
		"chart":       analytics.ChartPoints(disparities),
	})
}

// GetMonthlyTrends agrégats mensuels des prix
// GET /api/analytics/monthly?start=...&end=...
func (h *Handlers) GetMonthlyTrends(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		errorResponse(c, 1001, "paramètres start et end requis")
		return
	}

	success(c, analytics.AggregateMonthly(dataset, start, end))
}

// compareBody corps d'une comparaison de stratégies
type compareBody struct {
	Combos    []model.StrategyCombo `json:"combos"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
}

// CompareStrategies comparaison multi-plans
// POST /api/analytics/compare
func (h *Handlers) CompareStrategies(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	var body compareBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}
	if len(body.Combos) == 0 || body.StartDate == "" || body.EndDate == "" {
		errorResponse(c, 1001, "champs combos, startDate et endDate requis")
		return
	}

	success(c, analytics.CompareStrategies(dataset, body.Combos, body.StartDate, body.EndDate))
}

// GetForecast prévision naïve des prix
// GET /api/analytics/forecast?days=30&seed=42
func (h *Handlers) GetForecast(c *gin.Context) {
	dataset, ok := h.dataset(c)
	if !ok {
		return
	}

	days := h.forecastHorizon
	if raw := c.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}

	// Graine injectable pour des prévisions reproductibles
	seed := time.Now().UnixNano()
	if raw := c.Query("seed"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			seed = v
		}
	}

	success(c, analytics.NewForecaster(seed).Forecast(dataset, days))
}

// exportBody corps d'une demande d'export
type exportBody struct {
	Results []model.SimulationResult `json:"results"`
}

// ExportSimulations prépare un CSV téléchargeable des simulations
// POST /api/export/simulations
func (h *Handlers) ExportSimulations(c *gin.Context) {
	var body exportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorResponse(c, 1001, "corps de requête illisible")
		return
	}
	if len(body.Results) == 0 {
		errorResponse(c, 1001, "aucune simulation à exporter")
		return
	}

	data, err := exporter.SimulationCSV(body.Results)
	if err != nil {
		errorResponse(c, 5001, "génération du CSV impossible: "+err.Error())
		return
	}

	fileName := fmt.Sprintf("simulations-%s.csv", time.Now().Format("20060102-150405"))
	token := h.downloads.put(fileName, data, 10*time.Minute)

	success(c, gin.H{
		"token":    token,
		"fileName": fileName,
	})
}

// DownloadExport télécharge un export préparé
// GET /api/export/download/:token
func (h *Handlers) DownloadExport(c *gin.Context) {
	download, ok := h.downloads.get(c.Param("token"))
	if !ok {
		errorResponse(c, 2002, "export introuvable ou expiré")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+download.fileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", download.data)
}
