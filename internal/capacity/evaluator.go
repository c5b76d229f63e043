package capacity

import (
	"fmt"

	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// User-facing messages are Turkish, matching the public site copy.
const (
	msgAvailable   = "Seçtiğiniz tarih ve saat için rezervasyon alınabilir."
	msgDisabled    = "Rezervasyon alınabilir."
	msgNoGuests    = "Seçtiğiniz saat için yeterli kontenjan kalmadı. Lütfen başka bir saat seçin."
	msgNoTables    = "Seçtiğiniz saat için boş masa kalmadı. Lütfen başka bir saat seçin."
	msgBadGuests   = "Kişi sayısı en az 1 olmalıdır."
	msgSystemError = "Sistem hatası. Lütfen daha sonra tekrar deneyin."
)

// Result is the answer to a capacity check
type Result struct {
	Available       bool   `json:"available"`
	Message         string `json:"message"`
	CapacityEnabled bool   `json:"capacityEnabled"`
}

// Evaluator answers whether a slot can still take a reservation.
// It is a pure read-side predicate: nothing is written here, and the
// caller must re-validate at write time.
type Evaluator struct {
	store *docstore.Store
}

// NewEvaluator creates a capacity evaluator backed by the document store
func NewEvaluator(store *docstore.Store) *Evaluator {
	return &Evaluator{store: store}
}

// Check evaluates whether a reservation for guests people at (date, slot)
// fits within the configured capacity. Storage failures surface as an
// error alongside a generic system-error result.
func (e *Evaluator) Check(date, slot string, guests int) (Result, error) {
	if guests < 1 {
		return Result{Available: false, Message: msgBadGuests, CapacityEnabled: true}, nil
	}

	settings := models.DefaultCapacitySettings()
	if err := e.store.Read(docstore.DocCapacitySettings, &settings); err != nil {
		return Result{Available: false, Message: msgSystemError},
			fmt.Errorf("failed to load capacity settings: %w", err)
	}

	if !settings.IsEnabled {
		return Result{Available: true, Message: msgDisabled, CapacityEnabled: false}, nil
	}

	var reservations []models.Reservation
	if err := e.store.Read(docstore.DocReservations, &reservations); err != nil {
		return Result{Available: false, Message: msgSystemError, CapacityEnabled: true},
			fmt.Errorf("failed to load reservations: %w", err)
	}

	return e.evaluate(settings, reservations, date, slot, guests), nil
}

// CheckAgainst evaluates capacity over a reservation slice the caller
// already holds, instead of re-reading the reservations document. The
// write path uses this from inside the reservations document lock,
// where Check would block on its own read.
func (e *Evaluator) CheckAgainst(reservations []models.Reservation, date, slot string, guests int) (Result, error) {
	if guests < 1 {
		return Result{Available: false, Message: msgBadGuests, CapacityEnabled: true}, nil
	}

	settings := models.DefaultCapacitySettings()
	if err := e.store.Read(docstore.DocCapacitySettings, &settings); err != nil {
		return Result{Available: false, Message: msgSystemError},
			fmt.Errorf("failed to load capacity settings: %w", err)
	}

	if !settings.IsEnabled {
		return Result{Available: true, Message: msgDisabled, CapacityEnabled: false}, nil
	}

	return e.evaluate(settings, reservations, date, slot, guests), nil
}

func (e *Evaluator) evaluate(settings models.CapacitySettings, reservations []models.Reservation, date, slot string, guests int) Result {
	maxGuests := settings.MaxGuestsPerSlot
	for _, day := range settings.SpecialDays {
		if day.Date == date && day.MaxGuests > 0 {
			maxGuests = day.MaxGuests
			break
		}
	}

	bookedGuests := 0
	bookedTables := 0
	for _, r := range reservations {
		if r.Date != date || r.Time != slot || r.Status == models.ReservationCancelled {
			continue
		}
		bookedGuests += r.Guests
		bookedTables += tablesFor(r.Guests, settings.AverageGuestsPerTable)
	}

	if maxGuests > 0 && bookedGuests+guests > maxGuests {
		return Result{Available: false, Message: msgNoGuests, CapacityEnabled: true}
	}

	if settings.MaxTablesPerSlot > 0 && settings.AverageGuestsPerTable > 0 {
		needed := tablesFor(guests, settings.AverageGuestsPerTable)
		if bookedTables+needed > settings.MaxTablesPerSlot {
			return Result{Available: false, Message: msgNoTables, CapacityEnabled: true}
		}
	}

	return Result{Available: true, Message: msgAvailable, CapacityEnabled: true}
}

// tablesFor assumes every party occupies whole tables
func tablesFor(guests, perTable int) int {
	if perTable <= 0 {
		return 0
	}
	return (guests + perTable - 1) / perTable
}
