package analytics

import (
	"planhotel/internal/model"
	"planhotel/internal/parser"
)

// SimulationRequest paramètres d'une simulation de réservation
type SimulationRequest struct {
	PartnerName string `json:"partnerName"`
	RoomType    string `json:"roomType"`
	RatePlan    string `json:"ratePlan"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// SimulationOptions options de calcul du prix net
type SimulationOptions struct {
	ApplyCommission            bool    `json:"applyCommission"`
	PromotionalDiscountPercent float64 `json:"promotionalDiscountPercent"`
}

// Simulate résout une demande de réservation en prix brut et net
// Validation dans l'ordre: champs requis, autorisation du partenaire,
// présence de tarifs sur la période
func Simulate(dataset *model.PlanningDataset, partners []model.Partner, req SimulationRequest, opts SimulationOptions) (*model.SimulationResult, error) {
	var missing []string
	if req.PartnerName == "" {
		missing = append(missing, "partnerName")
	}
	if req.RoomType == "" {
		missing = append(missing, "roomType")
	}
	if req.RatePlan == "" {
		missing = append(missing, "ratePlan")
	}
	if req.StartDate == "" {
		missing = append(missing, "startDate")
	}
	if req.EndDate == "" {
		missing = append(missing, "endDate")
	}
	if len(missing) > 0 {
		return nil, &model.IncompleteRequestError{Missing: missing}
	}

	var partner *model.Partner
	for i := range partners {
		if partners[i].Name == req.PartnerName {
			partner = &partners[i]
			break
		}
	}
	if partner != nil && !partner.Authorized(req.RatePlan) {
		return nil, &model.UnauthorizedRatePlanError{
			Partner:  req.PartnerName,
			RatePlan: req.RatePlan,
		}
	}

	// Les dates ISO à largeur fixe se comparent lexicographiquement
	var sum float64
	nights := 0
	for _, fact := range dataset.Pricing {
		if fact.RoomType != req.RoomType || fact.RatePlan != req.RatePlan {
			continue
		}
		if fact.Date < req.StartDate || fact.Date > req.EndDate {
			continue
		}
		sum += fact.Price
		nights++
	}
	if nights == 0 {
		return nil, &model.NoPricingDataError{
			RoomType:  req.RoomType,
			RatePlan:  req.RatePlan,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}
	}

	grossPrice := sum / float64(nights)

	var commission float64
	if opts.ApplyCommission {
		commission = parser.DefaultCommissionPercent
		if partner != nil {
			commission = partner.Commission
		}
	}

	netPrice := grossPrice * (1 - commission/100) * (1 - opts.PromotionalDiscountPercent/100)

	return &model.SimulationResult{
		RoomType:          req.RoomType,
		RatePlan:          req.RatePlan,
		Partner:           req.PartnerName,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		GrossPrice:        grossPrice,
		CommissionPercent: commission,
		NetPrice:          netPrice,
		Nights:            nights,
		// Le simulateur ne recoupe pas les disponibilités, choix assumé
		Available: true,
	}, nil
}
