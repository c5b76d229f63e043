package models

import "time"

// Reservation status values. Transitions are unrestricted: an
// administrator may move a reservation between any two states.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a table reservation made through the public form.
// JSON field names match the stored document format.
type Reservation struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Date             string    `json:"date"` // calendar date, "2006-01-02"
	Time             string    `json:"time"` // slot label, e.g. "19:30"
	Guests           int       `json:"guests"`
	SpecialRequests  string    `json:"specialRequests,omitempty"`
	Status           string    `json:"status"`
	KVKKConsent      bool      `json:"kvkkConsent"`
	MarketingConsent bool      `json:"marketingConsent"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ValidReservationStatus reports whether s is a known status value
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}
