package reset

import (
	"errors"
	"testing"
	"time"

	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

func setupService(t *testing.T) (*Service, *docstore.Store) {
	t.Helper()
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewService(store), store
}

func answerFor(question string) string {
	for _, q := range questions {
		if q.Question == question {
			return q.Answer
		}
	}
	return ""
}

func TestChallengeConfirmResets(t *testing.T) {
	svc, store := setupService(t)

	seeded := []models.Reservation{{ID: "resv-1", Name: "Test", Status: models.ReservationPending}}
	if err := store.Write(docstore.DocReservations, seeded); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	id, question := svc.Challenge()
	if id == "" || question == "" {
		t.Fatal("expected a challenge id and question")
	}

	if err := svc.Confirm(id, "  "+answerFor(question)+"  "); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	var reservations []models.Reservation
	if err := store.Read(docstore.DocReservations, &reservations); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(reservations) != 0 {
		t.Errorf("expected reservations to be reset, got %d", len(reservations))
	}

	var capacity models.CapacitySettings
	if err := store.Read(docstore.DocCapacitySettings, &capacity); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if capacity.MaxGuestsPerSlot != models.DefaultCapacitySettings().MaxGuestsPerSlot {
		t.Errorf("expected default capacity settings after reset")
	}
}

func TestConfirmCaseInsensitive(t *testing.T) {
	svc, _ := setupService(t)

	id, question := svc.Challenge()
	upper := []byte(answerFor(question))
	for i := range upper {
		if upper[i] >= 'a' && upper[i] <= 'z' {
			upper[i] -= 'a' - 'A'
		}
	}
	if err := svc.Confirm(id, string(upper)); err != nil {
		t.Fatalf("expected case-insensitive match, got %v", err)
	}
}

func TestConfirmWrongAnswer(t *testing.T) {
	svc, store := setupService(t)

	seeded := []models.Reservation{{ID: "resv-1"}}
	if err := store.Write(docstore.DocReservations, seeded); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	id, _ := svc.Challenge()
	if err := svc.Confirm(id, "hayir"); !errors.Is(err, ErrWrongAnswer) {
		t.Fatalf("expected ErrWrongAnswer, got %v", err)
	}

	var reservations []models.Reservation
	if err := store.Read(docstore.DocReservations, &reservations); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(reservations) != 1 {
		t.Errorf("wrong answer must not reset anything, got %d reservations", len(reservations))
	}
}

func TestConfirmSingleUse(t *testing.T) {
	svc, _ := setupService(t)

	id, question := svc.Challenge()
	if err := svc.Confirm(id, "hayir"); !errors.Is(err, ErrWrongAnswer) {
		t.Fatalf("expected ErrWrongAnswer, got %v", err)
	}
	if err := svc.Confirm(id, answerFor(question)); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound on reuse, got %v", err)
	}
}

func TestConfirmUnknownID(t *testing.T) {
	svc, _ := setupService(t)

	if err := svc.Confirm("rst-missing", "evet"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestConfirmExpired(t *testing.T) {
	svc, _ := setupService(t)

	id, question := svc.Challenge()
	svc.mu.Lock()
	ch := svc.challenges[id]
	ch.expiresAt = time.Now().Add(-time.Minute)
	svc.challenges[id] = ch
	svc.mu.Unlock()

	if err := svc.Confirm(id, answerFor(question)); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound for expired challenge, got %v", err)
	}
}
