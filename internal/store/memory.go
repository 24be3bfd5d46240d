package store

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"planhotel/internal/model"
)

// SessionStore état mémoire d'une session de travail
// Le jeu de données est immuable et remplacé en bloc à chaque import;
// les partenaires survivent aux rechargements du planning
type SessionStore struct {
	mu         sync.RWMutex
	dataset    *model.PlanningDataset
	fileName   string
	importedAt time.Time
	partners   []model.Partner
}

// NewSessionStore crée la session avec les partenaires par défaut
func NewSessionStore() *SessionStore {
	return &SessionStore{
		partners: model.DefaultPartners(),
	}
}

// Dataset jeu de données courant, nil si aucun planning importé
func (s *SessionStore) Dataset() *model.PlanningDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// SetDataset remplace le jeu de données en bloc
func (s *SessionStore) SetDataset(dataset *model.PlanningDataset, fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = dataset
	s.fileName = fileName
	s.importedAt = time.Now()
}

// Reset abandonne le planning courant, les partenaires restent en place
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
	s.fileName = ""
	s.importedAt = time.Time{}
}

// ImportInfo nom de fichier et horodatage du dernier import
func (s *SessionStore) ImportInfo() (fileName string, importedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileName, s.importedAt
}

// Partners copie de la liste des partenaires
func (s *SessionStore) Partners() []model.Partner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Partner, len(s.partners))
	copy(result, s.partners)
	return result
}

// ReplacePartners remplace la liste entière, sans fusion
func (s *SessionStore) ReplacePartners(partners []model.Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = partners
}

// AddPartner ajoute un partenaire, le nom doit être libre
func (s *SessionStore) AddPartner(p model.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.partners {
		if existing.Name == p.Name {
			return errors.New("un partenaire avec ce nom existe déjà")
		}
	}
	s.partners = append(s.partners, p)
	return nil
}

// UpdatePartner remplace le partenaire portant ce nom
func (s *SessionStore) UpdatePartner(name string, p model.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.partners {
		if existing.Name == name {
			s.partners[i] = p
			return nil
		}
	}
	return errors.New("partenaire introuvable")
}

// DeletePartner supprime le partenaire portant ce nom
func (s *SessionStore) DeletePartner(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.partners {
		if existing.Name == name {
			s.partners = append(s.partners[:i], s.partners[i+1:]...)
			return nil
		}
	}
	return errors.New("partenaire introuvable")
}

// LoadPartnerConfig remplace les partenaires depuis une configuration JSON
// Remplacement intégral: aucune fusion avec la liste précédente
func (s *SessionStore) LoadPartnerConfig(data []byte) error {
	var cfg model.PartnerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return &model.InvalidInputError{Reason: "configuration des partenaires illisible"}
	}
	if cfg.Partners == nil {
		return &model.InvalidInputError{Reason: "configuration sans entrée partners"}
	}

	// L'ordre d'une map JSON n'est pas défini: tri par nom pour rester stable
	names := make([]string, 0, len(cfg.Partners))
	for name := range cfg.Partners {
		names = append(names, name)
	}
	sort.Strings(names)

	partners := make([]model.Partner, 0, len(names))
	for _, name := range names {
		entry := cfg.Partners[name]
		partners = append(partners, model.Partner{
			Name:       name,
			Commission: entry.Commission,
			Codes:      entry.Codes,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = partners
	return nil
}
