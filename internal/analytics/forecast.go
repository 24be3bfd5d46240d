package analytics

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"planhotel/internal/model"
)

// DefaultForecastHorizonDays horizon de prévision par défaut
const DefaultForecastHorizonDays = 30

// baselineWindow nombre de tarifs récents servant de base de calcul
const baselineWindow = 30

// Forecaster prévision naïve de prix: base moyenne récente, saisonnalité
// sinusoïdale et tendance pseudo-aléatoire. Un démonstrateur, pas un
// modèle statistique.
type Forecaster struct {
	rng *rand.Rand
}

// NewForecaster crée une prévision avec une graine reproductible
func NewForecaster(seed int64) *Forecaster {
	return &Forecaster{rng: rand.New(rand.NewSource(seed))}
}

// Forecast projette les prix sur horizonDays jours après la dernière date connue
func (f *Forecaster) Forecast(dataset *model.PlanningDataset, horizonDays int) []model.ForecastPoint {
	if horizonDays <= 0 {
		horizonDays = DefaultForecastHorizonDays
	}
	if len(dataset.Pricing) == 0 {
		return nil
	}

	// L'ordre d'insertion ne suit pas forcément la chronologie: on trie
	// par date avant de retenir la fenêtre la plus récente
	sorted := make([]model.PricingFact, len(dataset.Pricing))
	copy(sorted, dataset.Pricing)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	window := sorted
	if len(window) > baselineWindow {
		window = window[len(window)-baselineWindow:]
	}
	var sum float64
	for _, fact := range window {
		sum += fact.Price
	}
	baseline := sum / float64(len(window))

	lastDate, err := time.Parse("2006-01-02", sorted[len(sorted)-1].Date)
	if err != nil {
		lastDate = time.Now()
	}

	points := make([]model.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		seasonality := 1 + 0.1*math.Sin(2*math.Pi*float64(i)/float64(horizonDays))
		trend := 0.95 + f.rng.Float64()*0.1
		predicted := baseline * seasonality * trend
		confidence := math.Max(0.7, 1-float64(i)/float64(horizonDays)*0.3)

		points = append(points, model.ForecastPoint{
			Date:           lastDate.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedPrice: predicted,
			MinPrice:       predicted * 0.9,
			MaxPrice:       predicted * 1.1,
			Confidence:     confidence,
		})
	}

	return points
}
