package model

// Partner partenaire OTA et ses plans tarifaires autorisés
type Partner struct {
	Name       string   `json:"name"`       // nom du partenaire (clé unique)
	Commission float64  `json:"commission"` // commission en %
	Codes      []string `json:"codes"`      // codes des plans autorisés à la vente
}

// Authorized indique si le partenaire peut vendre ce code de plan
func (p *Partner) Authorized(ratePlanCode string) bool {
	for _, c := range p.Codes {
		if c == ratePlanCode {
			return true
		}
	}
	return false
}

// PartnerConfig configuration JSON remplaçant la liste des partenaires
// Format: { "partners": { "Booking.com": { "commission": 15, "codes": [...] } } }
type PartnerConfig struct {
	Partners map[string]PartnerConfigEntry `json:"partners"`
}

// PartnerConfigEntry entrée de configuration d'un partenaire
type PartnerConfigEntry struct {
	Commission float64  `json:"commission"`
	Codes      []string `json:"codes"`
}

// DefaultPartners les trois partenaires livrés par défaut
// Simple constructeur de confort, jamais un état global implicite
func DefaultPartners() []Partner {
	return []Partner{
		{
			Name:       "Booking.com",
			Commission: 15,
			Codes:      []string{"OTA-RO-FLEX", "OTA-RO-NANR", "OTA-BB-FLEX"},
		},
		{
			Name:       "Agoda",
			Commission: 17,
			Codes:      []string{"OTA-RO-FLEX", "MOBILE-RO-FLEX", "OTA-BB-FLEX"},
		},
		{
			Name:       "Expedia",
			Commission: 18,
			Codes:      []string{"OTA-RO-FLEX", "PKG-EXP-RO-FLEX"},
		},
	}
}
