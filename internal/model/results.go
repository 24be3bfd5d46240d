package model

// SimulationResult résultat d'une simulation de réservation
type SimulationResult struct {
	RoomType          string  `json:"roomType"`
	RatePlan          string  `json:"ratePlan"`
	Partner           string  `json:"partner"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	GrossPrice        float64 `json:"grossPrice"`        // prix moyen brut sur la période
	CommissionPercent float64 `json:"commissionPercent"` // commission appliquée (%)
	NetPrice          float64 `json:"netPrice"`          // net après commission puis promotion
	Nights            int     `json:"nights"`            // nombre de tarifs retenus
	Available         bool    `json:"available"`         // toujours vrai dans ce modèle
}

// PriceDisparity écart d'un prix par rapport à la moyenne du jeu filtré
type PriceDisparity struct {
	Date             string  `json:"date"`
	RoomType         string  `json:"roomType"`
	RatePlan         string  `json:"ratePlan"`
	Price            float64 `json:"price"`
	MeanPrice        float64 `json:"meanPrice"`
	Deviation        float64 `json:"deviation"`
	DeviationPercent float64 `json:"deviationPercent"`
	Trend            string  `json:"trend"` // up / down / stable
}

// ChartPoint agrégat par date pour le graphique des variations
type ChartPoint struct {
	Date     string  `json:"date"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	AvgPrice float64 `json:"avgPrice"`
	Variance float64 `json:"variance"` // écart max-min du jour
}

// RoomTypeAvailability disponibilité d'un type de chambre pour un jour
type RoomTypeAvailability struct {
	Available int    `json:"available"`
	Status    string `json:"status"`
}

// AvailabilityDay disponibilités de tous les types de chambres pour un jour
type AvailabilityDay struct {
	Date      string                          `json:"date"`
	RoomTypes map[string]RoomTypeAvailability `json:"roomTypes"`
}

// MonthlyTrend agrégat mensuel des prix
type MonthlyTrend struct {
	Month     string  `json:"month"` // YYYY-MM
	AvgPrice  float64 `json:"avgPrice"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	FactCount int     `json:"factCount"`
}

// StrategyCombo couple (chambre, plan) à comparer
type StrategyCombo struct {
	RoomType string `json:"roomType"`
	RatePlan string `json:"ratePlan"`
}

// StrategyPoint prix d'un couple comparé à une date
type StrategyPoint struct {
	Date     string  `json:"date"`
	RoomType string  `json:"roomType"`
	RatePlan string  `json:"ratePlan"`
	Price    float64 `json:"price"`
}

// ForecastPoint prévision de prix pour un jour de l'horizon
// Démonstratif: tendance pseudo-aléatoire, aucune garantie statistique
type ForecastPoint struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predictedPrice"`
	MinPrice       float64 `json:"minPrice"`
	MaxPrice       float64 `json:"maxPrice"`
	Confidence     float64 `json:"confidence"` // décroît de 1.0 vers 0.7
}
