package analytics

import (
	"sort"

	"planhotel/internal/model"
)

// AggregateMonthly agrège les tarifs par mois sur la plage demandée
// Une entrée par mois présent, triée par clé YYYY-MM croissante
func AggregateMonthly(dataset *model.PlanningDataset, startDate, endDate string) []model.MonthlyTrend {
	type bucket struct {
		sum      float64
		minPrice float64
		maxPrice float64
		count    int
	}
	buckets := make(map[string]*bucket)

	for _, fact := range dataset.Pricing {
		if fact.Date < startDate || fact.Date > endDate {
			continue
		}
		if len(fact.Date) < 7 {
			continue
		}
		month := fact.Date[:7]

		b, ok := buckets[month]
		if !ok {
			b = &bucket{minPrice: fact.Price, maxPrice: fact.Price}
			buckets[month] = b
		}
		b.sum += fact.Price
		b.count++
		if fact.Price < b.minPrice {
			b.minPrice = fact.Price
		}
		if fact.Price > b.maxPrice {
			b.maxPrice = fact.Price
		}
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	// Tri lexicographique correct pour ce format fixe
	sort.Strings(months)

	trends := make([]model.MonthlyTrend, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		trends = append(trends, model.MonthlyTrend{
			Month:     month,
			AvgPrice:  b.sum / float64(b.count),
			MinPrice:  b.minPrice,
			MaxPrice:  b.maxPrice,
			FactCount: b.count,
		})
	}

	return trends
}

// CompareStrategies réunit les tarifs de plusieurs couples (chambre, plan)
// Union plate triée par date croissante; la vue pivotée relève de l'affichage
func CompareStrategies(dataset *model.PlanningDataset, combos []model.StrategyCombo, startDate, endDate string) []model.StrategyPoint {
	var points []model.StrategyPoint
	for _, fact := range dataset.Pricing {
		if fact.Date < startDate || fact.Date > endDate {
			continue
		}
		for _, combo := range combos {
			if fact.RoomType == combo.RoomType && fact.RatePlan == combo.RatePlan {
				points = append(points, model.StrategyPoint{
					Date:     fact.Date,
					RoomType: fact.RoomType,
					RatePlan: fact.RatePlan,
					Price:    fact.Price,
				})
				break
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}
