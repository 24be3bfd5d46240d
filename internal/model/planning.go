package model

// Statuts de disponibilité d'une chambre pour une date.
const (
	StatusAvailable = "available"
	StatusSoldOut   = "sold-out"
	StatusClosed    = "closed"
)

// AvailabilityStatus dérive le statut depuis le nombre de chambres restantes
// 0 = épuisé, >0 = disponible, tout le reste (dont la sentinelle -1) = fermé
func AvailabilityStatus(available int) string {
	switch {
	case available == 0:
		return StatusSoldOut
	case available > 0:
		return StatusAvailable
	default:
		return StatusClosed
	}
}

// RoomType type de chambre extrait du planning
type RoomType struct {
	Code        string `json:"code"`        // code dérivé du libellé (majuscules, ≤20 caractères)
	Name        string `json:"name"`        // libellé d'origine
	Description string `json:"description"` // description (libellé d'origine)
}

// RatePlan plan tarifaire extrait du planning
type RatePlan struct {
	Code        string  `json:"code"`        // code du plan (clé d'identité)
	Name        string  `json:"name"`        // nom lisible
	Description string  `json:"description"` // description
	Commission  float64 `json:"commission"`  // commission par défaut (%)
}

// AvailabilityFact disponibilité d'un type de chambre à une date
// Clé par nom de chambre (pas par code), comme dans le planning d'origine
type AvailabilityFact struct {
	RoomType  string `json:"roomType"`  // nom du type de chambre
	Date      string `json:"date"`      // date ISO YYYY-MM-DD
	Available int    `json:"available"` // chambres restantes, -1 = fermé
	Status    string `json:"status"`    // available / sold-out / closed
}

// PricingFact prix d'un couple (chambre, plan) à une date
// Clé par code de plan tarifaire, jamais par libellé complet
type PricingFact struct {
	RoomType string  `json:"roomType"` // nom du type de chambre
	RatePlan string  `json:"ratePlan"` // code du plan tarifaire
	Date     string  `json:"date"`     // date ISO YYYY-MM-DD
	Price    float64 `json:"price"`    // prix strictement positif
	Currency string  `json:"currency"` // toujours EUR
}

// PlanningDataset jeu de données normalisé issu d'un import de planning
// Immuable après construction: un nouvel import produit une nouvelle instance
type PlanningDataset struct {
	HotelName    string             `json:"hotelName"`
	Dates        []string           `json:"dates"` // axe des dates, ordre du fichier
	RoomTypes    []RoomType         `json:"roomTypes"`
	RatePlans    []RatePlan         `json:"ratePlans"`
	Availability []AvailabilityFact `json:"availability"`
	Pricing      []PricingFact      `json:"pricing"`
}

// RoomTypeNames liste les noms de chambres dans l'ordre de découverte
func (d *PlanningDataset) RoomTypeNames() []string {
	names := make([]string, 0, len(d.RoomTypes))
	for _, rt := range d.RoomTypes {
		names = append(names, rt.Name)
	}
	return names
}
