package parser

import "strings"

// commissionRule commission par défaut pour un préfixe de code tarifaire
type commissionRule struct {
	prefix  string
	percent float64
}

// Table ordonnée: le premier préfixe correspondant gagne, même si un
// préfixe plus long apparaît plus loin. Ne pas réordonner.
var commissionRules = []commissionRule{
	{"OTA", 15},
	{"MOBILE", 12},
	{"VIP", 10},
	{"HB", 18},
	{"TO", 20},
	{"HOTUSA", 16},
	{"FB-CORPO", 8},
	{"CWT", 12},
	{"PKG-EXP", 14},
	{"PROMO", 10},
	{"TRAVCO", 22},
}

// DefaultCommissionPercent commission appliquée quand aucun préfixe ne correspond
const DefaultCommissionPercent = 15

// DefaultCommission commission par défaut d'un code de plan tarifaire
func DefaultCommission(ratePlanCode string) float64 {
	for _, rule := range commissionRules {
		if strings.HasPrefix(ratePlanCode, rule.prefix) {
			return rule.percent
		}
	}
	return DefaultCommissionPercent
}
