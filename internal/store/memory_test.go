package store

import (
	"errors"
	"testing"

	"planhotel/internal/model"
)

func TestSessionStore_Defaults(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	if s.Dataset() != nil {
		t.Fatalf("new session should have no dataset")
	}

	partners := s.Partners()
	if len(partners) != 3 {
		t.Fatalf("got %d default partners, want 3", len(partners))
	}
	names := map[string]bool{}
	for _, p := range partners {
		names[p.Name] = true
	}
	for _, want := range []string{"Booking.com", "Agoda", "Expedia"} {
		if !names[want] {
			t.Fatalf("missing default partner %q", want)
		}
	}
}

func TestSessionStore_DatasetSwapAndReset(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	first := &model.PlanningDataset{HotelName: "HOTEL A"}
	s.SetDataset(first, "a.xlsx")

	if s.Dataset() != first {
		t.Fatalf("dataset not stored")
	}

	second := &model.PlanningDataset{HotelName: "HOTEL B"}
	s.SetDataset(second, "b.xlsx")
	if s.Dataset() != second {
		t.Fatalf("dataset not replaced")
	}
	// L'ancien instantané reste lisible par les requêtes en vol
	if first.HotelName != "HOTEL A" {
		t.Fatalf("previous snapshot mutated")
	}

	s.Reset()
	if s.Dataset() != nil {
		t.Fatalf("reset must drop the dataset")
	}
	if len(s.Partners()) != 3 {
		t.Fatalf("reset must keep partners")
	}
}

func TestSessionStore_AddPartnerRejectsDuplicate(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	if err := s.AddPartner(model.Partner{Name: "Booking.com", Commission: 12}); err == nil {
		t.Fatalf("duplicate name must be rejected")
	}
	if err := s.AddPartner(model.Partner{Name: "Hotelbeds", Commission: 18, Codes: []string{"HB-RO"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(s.Partners()) != 4 {
		t.Fatalf("got %d partners, want 4", len(s.Partners()))
	}
}

func TestSessionStore_UpdateAndDeletePartner(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	if err := s.UpdatePartner("Agoda", model.Partner{Name: "Agoda", Commission: 20, Codes: []string{"OTA-RO-FLEX"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	for _, p := range s.Partners() {
		if p.Name == "Agoda" && p.Commission != 20 {
			t.Fatalf("update not applied: %+v", p)
		}
	}

	if err := s.DeletePartner("Expedia"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeletePartner("Expedia"); err == nil {
		t.Fatalf("second delete must fail")
	}
	if len(s.Partners()) != 2 {
		t.Fatalf("got %d partners, want 2", len(s.Partners()))
	}
}

func TestSessionStore_LoadPartnerConfigReplacesWholesale(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	cfg := []byte(`{"partners": {"Direct": {"commission": 0, "codes": ["WEB-RO"]}, "Booking.com": {"commission": 14, "codes": ["OTA-RO-FLEX"]}}}`)

	if err := s.LoadPartnerConfig(cfg); err != nil {
		t.Fatalf("load: %v", err)
	}

	partners := s.Partners()
	// Remplacement intégral: Agoda et Expedia disparaissent
	if len(partners) != 2 {
		t.Fatalf("got %d partners, want 2: %+v", len(partners), partners)
	}
	// Ordre stable: tri par nom
	if partners[0].Name != "Booking.com" || partners[1].Name != "Direct" {
		t.Fatalf("unexpected order: %+v", partners)
	}
	if partners[0].Commission != 14 {
		t.Fatalf("commission = %v, want 14", partners[0].Commission)
	}
}

func TestSessionStore_LoadPartnerConfigInvalidJSON(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	err := s.LoadPartnerConfig([]byte(`{pas du json`))

	var invalid *model.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidInputError", err)
	}
	// La liste précédente reste intacte en cas d'échec
	if len(s.Partners()) != 3 {
		t.Fatalf("partners must be untouched on error")
	}
}
