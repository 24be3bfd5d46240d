package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hotelNameRe = regexp.MustCompile(`[A-Z\s]+`)
	dateCellRe  = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
)

// ExtractHotelName extrait le nom de l'hôtel de la cellule d'entête
// Première suite de majuscules/espaces, sinon libellé par défaut
func ExtractHotelName(cell string) string {
	m := strings.TrimSpace(hotelNameRe.FindString(cell))
	if m == "" {
		return "Hôtel"
	}
	return m
}

// ParseDateCell convertit une cellule M/D/YY ou M/D/YYYY en date ISO
// Années à deux chiffres: <50 → 2000+, sinon 1900+
func ParseDateCell(cell string) (string, bool) {
	if !dateCellRe.MatchString(cell) {
		return "", false
	}
	parts := strings.Split(cell, "/")
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ExtractDates construit l'axe des dates depuis les cellules d'entête
// Les cellules non reconnues sont ignorées sans erreur: l'axe peut être
// plus court que le nombre de colonnes du fichier
func ExtractDates(cells []string) []string {
	var dates []string
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if date, ok := ParseDateCell(cell); ok {
			dates = append(dates, date)
		}
	}
	return dates
}

// ParseAvailability interprète une cellule de disponibilité
// Vide → 0, X/x → -1 (fermé, pas un comptage), nombre → arrondi vers
// le bas, illisible → 0
func ParseAvailability(cell string) int {
	if cell == "" {
		return 0
	}
	if cell == "X" || cell == "x" {
		return -1
	}
	v := strings.TrimSpace(cell)
	if v == "" {
		return 0
	}
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(math.Floor(num))
}

// ParsePrice interprète une cellule de prix, virgule décimale acceptée
// Illisible → 0 (le fait sera écarté car non strictement positif)
func ParsePrice(cell string) float64 {
	v := strings.TrimSpace(strings.Replace(cell, ",", ".", 1))
	if v == "" {
		return 0
	}
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return price
}

// accents pliés vers leur lettre ASCII, comme dans le planning d'origine
var accentFolder = strings.NewReplacer(
	"À", "A", "Á", "A", "Â", "A", "Ã", "A", "Ä", "A", "Å", "A",
	"È", "E", "É", "E", "Ê", "E", "Ë", "E",
	"Ì", "I", "Í", "I", "Î", "I", "Ï", "I",
	"Ò", "O", "Ó", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ù", "U", "Ú", "U", "Û", "U", "Ü", "U",
)

// GenerateCode dérive un code stable depuis un libellé de chambre
// Majuscules, accents pliés, tout le reste remplacé par '_', 20 caractères max
func GenerateCode(name string) string {
	upper := accentFolder.Replace(strings.ToUpper(name))

	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	code := b.String()
	if len(code) > 20 {
		code = code[:20]
	}
	return code
}
