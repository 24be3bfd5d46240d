package model

import (
	"fmt"
	"strings"
)

// InvalidInputError grille ou configuration illisible, non récupérable
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "données invalides: " + e.Reason
}

// IncompleteRequestError champs obligatoires manquants dans une requête
type IncompleteRequestError struct {
	Missing []string
}

func (e *IncompleteRequestError) Error() string {
	return "champs requis manquants: " + strings.Join(e.Missing, ", ")
}

// UnauthorizedRatePlanError le partenaire ne vend pas ce plan tarifaire
type UnauthorizedRatePlanError struct {
	Partner  string
	RatePlan string
}

func (e *UnauthorizedRatePlanError) Error() string {
	return fmt.Sprintf("le partenaire %s n'est pas autorisé à vendre le plan %s", e.Partner, e.RatePlan)
}

// NoPricingDataError requête valide mais aucun tarif sur la période
type NoPricingDataError struct {
	RoomType  string
	RatePlan  string
	StartDate string
	EndDate   string
}

func (e *NoPricingDataError) Error() string {
	return fmt.Sprintf("aucun tarif pour %s / %s entre %s et %s", e.RoomType, e.RatePlan, e.StartDate, e.EndDate)
}
