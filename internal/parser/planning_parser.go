package parser

import (
	"strings"

	"planhotel/internal/model"
)

// RawSheet grille rectangulaire brute produite par le lecteur de fichier
// Aucune sémantique métier: lignes de cellules texte, éventuellement creuses
type RawSheet [][]string

// Marqueurs de ligne du planning exporté
const (
	markerLeftForSale = "Left for sale"
	markerPriceEUR    = "Price (EUR)"
)

// PlanningParser convertit une grille brute en jeu de données normalisé
// Tolérant par conception: cellules et lignes anormales ignorées en silence,
// seule une grille trop courte est une erreur
type PlanningParser struct{}

// NewPlanningParser crée le parseur
func NewPlanningParser() *PlanningParser {
	return &PlanningParser{}
}

// Parse analyse la grille complète d'un planning
func (p *PlanningParser) Parse(grid RawSheet) (*model.PlanningDataset, error) {
	if len(grid) < 2 {
		return nil, &model.InvalidInputError{Reason: "le planning doit contenir au moins 2 lignes"}
	}

	header := grid[0]
	hotelName := ExtractHotelName(cellAt(header, 0))
	dates := ExtractDates(cellsFrom(header, 3))

	var (
		roomTypes []model.RoomType
		ratePlans []model.RatePlan
		avail     []model.AvailabilityFact
		pricing   []model.PricingFact
	)
	seenRoomTypes := make(map[string]bool)
	seenRatePlans := make(map[string]bool)

	for _, row := range grid[1:] {
		if len(row) < 4 {
			continue
		}

		roomTypeName := strings.TrimSpace(row[0])
		ratePlanLabel := strings.TrimSpace(row[1])
		rowKind := strings.TrimSpace(row[2])

		if roomTypeName == "" {
			continue
		}

		// Le type de chambre est enregistré quel que soit le genre de ligne
		// Dédoublonnage par code dérivé: première occurrence conservée
		code := GenerateCode(roomTypeName)
		if !seenRoomTypes[code] {
			seenRoomTypes[code] = true
			roomTypes = append(roomTypes, model.RoomType{
				Code:        code,
				Name:        roomTypeName,
				Description: roomTypeName,
			})
		}

		// "Left for sale" en colonne plan est un marqueur, pas un plan
		if ratePlanLabel != "" && ratePlanLabel != markerLeftForSale {
			planCode, planName := SplitRatePlanLabel(ratePlanLabel)
			if !seenRatePlans[planCode] {
				seenRatePlans[planCode] = true
				ratePlans = append(ratePlans, model.RatePlan{
					Code:        planCode,
					Name:        planName,
					Description: planName,
					Commission:  DefaultCommission(planCode),
				})
			}
		}

		// Cellules alignées sur l'axe des dates; au-delà de la longueur
		// de la ligne les valeurs sont absentes, pas nulles
		for j, date := range dates {
			col := 3 + j
			if col >= len(row) {
				break
			}
			cell := row[col]

			switch {
			case rowKind == markerLeftForSale:
				available := ParseAvailability(cell)
				avail = append(avail, model.AvailabilityFact{
					RoomType:  roomTypeName,
					Date:      date,
					Available: available,
					Status:    model.AvailabilityStatus(available),
				})
			case rowKind == markerPriceEUR && ratePlanLabel != "":
				price := ParsePrice(cell)
				if price > 0 {
					pricing = append(pricing, model.PricingFact{
						RoomType: roomTypeName,
						RatePlan: strings.Split(ratePlanLabel, " - ")[0],
						Date:     date,
						Price:    price,
						Currency: "EUR",
					})
				}
			}
		}
	}

	return &model.PlanningDataset{
		HotelName:    hotelName,
		Dates:        dates,
		RoomTypes:    roomTypes,
		RatePlans:    ratePlans,
		Availability: avail,
		Pricing:      pricing,
	}, nil
}

// SplitRatePlanLabel sépare "CODE - Nom" en (code, nom)
// Sans séparateur, le libellé entier sert pour les deux
func SplitRatePlanLabel(label string) (code, name string) {
	parts := strings.Split(label, " - ")
	code = parts[0]
	if code == "" {
		code = label
	}
	name = label
	if len(parts) > 1 && parts[1] != "" {
		name = parts[1]
	}
	return code, name
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func cellsFrom(row []string, i int) []string {
	if i >= len(row) {
		return nil
	}
	return row[i:]
}
