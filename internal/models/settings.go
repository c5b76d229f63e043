package models

// CapacitySettings is the singleton document controlling reservation
// capacity checks. When IsEnabled is false the capacity evaluator
// always answers available; this is a deliberate escape hatch.
type CapacitySettings struct {
	IsEnabled             bool         `json:"isEnabled"`
	MaxGuestsPerSlot      int          `json:"maxGuestsPerSlot"`
	MaxTablesPerSlot      int          `json:"maxTablesPerSlot"`
	AverageGuestsPerTable int          `json:"averageGuestsPerTable"`
	TimeSlots             []string     `json:"timeSlots"`
	SpecialDays           []SpecialDay `json:"specialDays"`
}

// SpecialDay overrides the default guest capacity for a single date
type SpecialDay struct {
	Date      string `json:"date"`
	MaxGuests int    `json:"maxGuests"`
	Reason    string `json:"reason,omitempty"`
}

// DefaultCapacitySettings returns the settings used after a system reset
func DefaultCapacitySettings() CapacitySettings {
	return CapacitySettings{
		IsEnabled:             true,
		MaxGuestsPerSlot:      40,
		MaxTablesPerSlot:      10,
		AverageGuestsPerTable: 4,
		TimeSlots: []string{
			"12:00", "12:30", "13:00", "13:30", "14:00",
			"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00",
		},
		SpecialDays: []SpecialDay{},
	}
}

// SMTPSettings is the singleton document configuring outbound email
type SMTPSettings struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	FromName string `json:"fromName"`
}

// SEOSettings is the singleton document for site metadata
type SEOSettings struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	OGImage      string `json:"ogImage,omitempty"`
	CanonicalURL string `json:"canonicalUrl,omitempty"`
}
