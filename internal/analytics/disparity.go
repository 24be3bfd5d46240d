package analytics

import (
	"math"
	"sort"

	"planhotel/internal/model"
)

// DisparityFilter critères de l'analyse des disparités tarifaires
// RoomType/RatePlan vides ou "all" = pas de filtre sur la dimension
type DisparityFilter struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	RoomType  string `json:"roomType"`
	RatePlan  string `json:"ratePlan"`
}

// StableBandPercent écart relatif (en %) toléré avant de classer up/down
const StableBandPercent = 5

// AnalyzeDisparities mesure l'écart de chaque prix à la moyenne du jeu filtré
// Résultats triés par |écart %| décroissant; jeu vide → résultat vide
func AnalyzeDisparities(dataset *model.PlanningDataset, f DisparityFilter) []model.PriceDisparity {
	var filtered []model.PricingFact
	for _, fact := range dataset.Pricing {
		if fact.Date < f.StartDate || fact.Date > f.EndDate {
			continue
		}
		if f.RoomType != "" && f.RoomType != "all" && fact.RoomType != f.RoomType {
			continue
		}
		if f.RatePlan != "" && f.RatePlan != "all" && fact.RatePlan != f.RatePlan {
			continue
		}
		filtered = append(filtered, fact)
	}

	if len(filtered) == 0 {
		return nil
	}

	var sum float64
	for _, fact := range filtered {
		sum += fact.Price
	}
	meanPrice := sum / float64(len(filtered))

	results := make([]model.PriceDisparity, 0, len(filtered))
	for _, fact := range filtered {
		deviation := fact.Price - meanPrice
		deviationPercent := deviation / meanPrice * 100

		trend := "stable"
		if math.Abs(deviationPercent) > StableBandPercent {
			if deviationPercent > 0 {
				trend = "up"
			} else {
				trend = "down"
			}
		}

		results = append(results, model.PriceDisparity{
			Date:             fact.Date,
			RoomType:         fact.RoomType,
			RatePlan:         fact.RatePlan,
			Price:            fact.Price,
			MeanPrice:        meanPrice,
			Deviation:        deviation,
			DeviationPercent: deviationPercent,
			Trend:            trend,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].DeviationPercent) > math.Abs(results[j].DeviationPercent)
	})

	return results
}

// ChartPoints agrège un résultat de disparités par date pour affichage
// Une entrée par date, dans l'ordre de première apparition
func ChartPoints(disparities []model.PriceDisparity) []model.ChartPoint {
	type group struct {
		prices   []float64
		avgPrice float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, d := range disparities {
		g, ok := groups[d.Date]
		if !ok {
			g = &group{avgPrice: d.MeanPrice}
			groups[d.Date] = g
			order = append(order, d.Date)
		}
		g.prices = append(g.prices, d.Price)
	}

	points := make([]model.ChartPoint, 0, len(order))
	for _, date := range order {
		g := groups[date]
		minPrice, maxPrice := g.prices[0], g.prices[0]
		for _, p := range g.prices[1:] {
			if p < minPrice {
				minPrice = p
			}
			if p > maxPrice {
				maxPrice = p
			}
		}
		points = append(points, model.ChartPoint{
			Date:     date,
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			AvgPrice: g.avgPrice,
			Variance: maxPrice - minPrice,
		})
	}

	return points
}
