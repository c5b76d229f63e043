package reservation

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/capacity"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ErrNotFound is returned when no reservation matches the given id
var ErrNotFound = errors.New("reservation not found")

// ValidationError reports a rejected create or update request
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapacityError reports a create rejected by the capacity check
type CapacityError struct {
	Result capacity.Result
}

func (e *CapacityError) Error() string {
	return e.Result.Message
}

// CreateRequest carries the public reservation form fields
type CreateRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
	Guests           int    `json:"guests" binding:"required"`
	SpecialRequests  string `json:"specialRequests"`
	KVKKConsent      bool   `json:"kvkkConsent"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// Manager owns the reservation lifecycle: create, status changes,
// deletion and listing.
type Manager struct {
	store     *docstore.Store
	evaluator *capacity.Evaluator
	mailer    mailer.Sender
}

// NewManager creates a reservation manager. mailer may be nil, in
// which case no confirmation email is attempted.
func NewManager(store *docstore.Store, evaluator *capacity.Evaluator, sender mailer.Sender) *Manager {
	return &Manager{
		store:     store,
		evaluator: evaluator,
		mailer:    sender,
	}
}

// Create validates the request, re-checks capacity and appends the new
// reservation with status pending. The capacity check runs inside the
// document write lock so two concurrent creates cannot both slip past
// a nearly full slot.
func (m *Manager) Create(req CreateRequest) (*models.Reservation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	record := models.Reservation{
		ID:               "resv-" + uuid.New().String()[:8],
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Date:             req.Date,
		Time:             req.Time,
		Guests:           req.Guests,
		SpecialRequests:  strings.TrimSpace(req.SpecialRequests),
		Status:           models.ReservationPending,
		KVKKConsent:      req.KVKKConsent,
		MarketingConsent: req.MarketingConsent,
		CreatedAt:        time.Now(),
	}

	var reservations []models.Reservation
	err := m.store.Update(docstore.DocReservations, &reservations, func() error {
		// The reservations document lock is held here, so the check
		// must run over the loaded slice rather than re-read the
		// document through the evaluator.
		result, err := m.evaluator.CheckAgainst(reservations, req.Date, req.Time, req.Guests)
		if err != nil {
			return fmt.Errorf("capacity check failed: %w", err)
		}
		if !result.Available {
			return &CapacityError{Result: result}
		}

		reservations = append(reservations, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Reservation] Created %s for %s on %s %s (%d guests)",
		record.ID, record.Name, record.Date, record.Time, record.Guests)

	m.sendCreatedEmail(record)

	return &record, nil
}

// List returns all reservations sorted newest-first by creation time
func (m *Manager) List() ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if err := m.store.Read(docstore.DocReservations, &reservations); err != nil {
		return nil, err
	}

	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})

	return reservations, nil
}

// UpdateStatus overwrites the status field of one reservation. Any
// status is reachable from any other; there is no transition table.
func (m *Manager) UpdateStatus(id, status string) (*models.Reservation, error) {
	if !models.ValidReservationStatus(status) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %s", status)}
	}

	var updated *models.Reservation
	var reservations []models.Reservation
	err := m.store.Update(docstore.DocReservations, &reservations, func() error {
		for i := range reservations {
			if reservations[i].ID == id {
				reservations[i].Status = status
				r := reservations[i]
				updated = &r
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Reservation] Status of %s set to %s", id, status)

	m.sendStatusEmail(*updated)

	return updated, nil
}

// Delete removes a reservation by id
func (m *Manager) Delete(id string) error {
	var reservations []models.Reservation
	return m.store.Update(docstore.DocReservations, &reservations, func() error {
		for i := range reservations {
			if reservations[i].ID == id {
				reservations = append(reservations[:i], reservations[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func validate(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Message: "name is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Message: "email is required"}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return &ValidationError{Message: "phone is required"}
	}
	if req.Date == "" || req.Time == "" {
		return &ValidationError{Message: "date and time are required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Message: "date must be in YYYY-MM-DD format"}
	}
	if req.Guests < 1 {
		return &ValidationError{Message: "guests must be at least 1"}
	}
	return nil
}

// Confirmation mail is best-effort; delivery problems are logged and
// never fail the reservation itself.
func (m *Manager) sendCreatedEmail(r models.Reservation) {
	if m.mailer == nil {
		return
	}

	body := fmt.Sprintf(
		"Sayın %s,\n\nRezervasyon talebiniz alındı.\n\nTarih: %s\nSaat: %s\nKişi sayısı: %d\n\nRezervasyonunuz onaylandığında ayrıca bilgilendirileceksiniz.",
		r.Name, r.Date, r.Time, r.Guests,
	)

	err := m.mailer.Send(&mailer.Message{
		To:      []string{r.Email},
		Subject: "Rezervasyon Talebiniz Alındı",
		Body:    body,
	})
	if err != nil && !errors.Is(err, mailer.ErrDisabled) {
		log.Printf("[Reservation] Confirmation email for %s failed: %v", r.ID, err)
	}
}

func (m *Manager) sendStatusEmail(r models.Reservation) {
	if m.mailer == nil {
		return
	}

	var subject, body string
	switch r.Status {
	case models.ReservationConfirmed:
		subject = "Rezervasyonunuz Onaylandı"
		body = fmt.Sprintf("Sayın %s,\n\n%s tarihinde saat %s için %d kişilik rezervasyonunuz onaylandı.\n\nSizi ağırlamaktan mutluluk duyacağız.",
			r.Name, r.Date, r.Time, r.Guests)
	case models.ReservationCancelled:
		subject = "Rezervasyonunuz İptal Edildi"
		body = fmt.Sprintf("Sayın %s,\n\n%s tarihinde saat %s için rezervasyonunuz iptal edildi.\n\nSorularınız için bizimle iletişime geçebilirsiniz.",
			r.Name, r.Date, r.Time)
	default:
		return
	}

	err := m.mailer.Send(&mailer.Message{
		To:      []string{r.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil && !errors.Is(err, mailer.ErrDisabled) {
		log.Printf("[Reservation] Status email for %s failed: %v", r.ID, err)
	}
}
