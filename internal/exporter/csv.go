package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"planhotel/internal/model"
)

// En-tête attendu par les outils aval, ne pas traduire ni réordonner
var simulationHeader = []string{
	"Type Chambre",
	"Plan Tarifaire",
	"Partenaire",
	"Date Début",
	"Date Fin",
	"Prix",
	"Commission",
	"Prix Net",
}

// SimulationCSV sérialise des résultats de simulation en CSV
// Montants à deux décimales, commission au format "15%"
func SimulationCSV(results []model.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(simulationHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.RoomType,
			r.RatePlan,
			r.Partner,
			r.StartDate,
			r.EndDate,
			fmt.Sprintf("%.2f", r.GrossPrice),
			strconv.FormatFloat(r.CommissionPercent, 'f', -1, 64) + "%",
			fmt.Sprintf("%.2f", r.NetPrice),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
