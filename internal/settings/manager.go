package settings

import (
	"fmt"

	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// Manager reads and writes the singleton settings documents
type Manager struct {
	store *docstore.Store
}

// NewManager creates a settings manager backed by the document store
func NewManager(store *docstore.Store) *Manager {
	return &Manager{store: store}
}

// Capacity returns the capacity settings, falling back to defaults
// when the document has never been written
func (m *Manager) Capacity() (models.CapacitySettings, error) {
	settings := models.DefaultCapacitySettings()
	err := m.store.Read(docstore.DocCapacitySettings, &settings)
	return settings, err
}

// SaveCapacity validates and overwrites the capacity settings
func (m *Manager) SaveCapacity(settings models.CapacitySettings) error {
	if settings.MaxGuestsPerSlot < 0 || settings.MaxTablesPerSlot < 0 || settings.AverageGuestsPerTable < 0 {
		return fmt.Errorf("capacity limits cannot be negative")
	}
	for _, day := range settings.SpecialDays {
		if day.Date == "" {
			return fmt.Errorf("special day entries require a date")
		}
	}
	return m.store.Write(docstore.DocCapacitySettings, settings)
}

// SMTP returns the SMTP settings document
func (m *Manager) SMTP() (models.SMTPSettings, error) {
	var settings models.SMTPSettings
	err := m.store.Read(docstore.DocSMTP, &settings)
	return settings, err
}

// SaveSMTP validates and overwrites the SMTP settings
func (m *Manager) SaveSMTP(settings models.SMTPSettings) error {
	if settings.Enabled {
		if settings.Host == "" || settings.From == "" {
			return fmt.Errorf("host and from address are required when smtp is enabled")
		}
		if settings.Port < 0 || settings.Port > 65535 {
			return fmt.Errorf("smtp port must be between 0 and 65535")
		}
	}
	return m.store.Write(docstore.DocSMTP, settings)
}

// SEO returns the SEO settings document
func (m *Manager) SEO() (models.SEOSettings, error) {
	var settings models.SEOSettings
	err := m.store.Read(docstore.DocSEO, &settings)
	return settings, err
}

// SaveSEO overwrites the SEO settings
func (m *Manager) SaveSEO(settings models.SEOSettings) error {
	return m.store.Write(docstore.DocSEO, settings)
}
