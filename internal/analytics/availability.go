package analytics

import (
	"time"

	"planhotel/internal/model"
)

// QueryAvailability répond "qu'est-ce qui est ouvert" sur une plage de dates
// Un résultat par jour calendaire de [startDate, endDate] inclus, en ordre
// croissant. Sans filtre, tous les types de chambres du jeu sont couverts.
func QueryAvailability(dataset *model.PlanningDataset, startDate, endDate string, roomTypeNames []string) ([]model.AvailabilityDay, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, &model.InvalidInputError{Reason: "date de début illisible: " + startDate}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, &model.InvalidInputError{Reason: "date de fin illisible: " + endDate}
	}

	if len(roomTypeNames) == 0 {
		roomTypeNames = dataset.RoomTypeNames()
	}

	// Index (chambre, date) → premier fait rencontré; le parseur ne
	// garantit pas l'unicité, la première occurrence fait foi
	type key struct{ roomType, date string }
	index := make(map[key]model.AvailabilityFact, len(dataset.Availability))
	for _, fact := range dataset.Availability {
		k := key{fact.RoomType, fact.Date}
		if _, ok := index[k]; !ok {
			index[k] = fact
		}
	}

	var days []model.AvailabilityDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		day := model.AvailabilityDay{
			Date:      date,
			RoomTypes: make(map[string]model.RoomTypeAvailability, len(roomTypeNames)),
		}
		for _, name := range roomTypeNames {
			if fact, ok := index[key{name, date}]; ok {
				day.RoomTypes[name] = model.RoomTypeAvailability{
					Available: fact.Available,
					Status:    fact.Status,
				}
			} else {
				// Absence de donnée = fermé, par convention du planning
				day.RoomTypes[name] = model.RoomTypeAvailability{
					Available: 0,
					Status:    model.StatusClosed,
				}
			}
		}
		days = append(days, day)
	}

	return days, nil
}
