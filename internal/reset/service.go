package reset

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// challengeTTL is how long an issued challenge stays answerable
const challengeTTL = 5 * time.Minute

var (
	// ErrChallengeNotFound covers unknown and expired challenge ids
	ErrChallengeNotFound = errors.New("challenge not found or expired")

	// ErrWrongAnswer is returned for a failed confirmation
	ErrWrongAnswer = errors.New("wrong answer")
)

// The fixed confirmation question pool. Answers avoid Turkish dotted/
// dotless i so the case-insensitive comparison stays simple.
var questions = []struct {
	Question string
	Answer   string
}{
	{"Sıfırlama işlemini onaylıyor musunuz? Onaylamak için 'evet' yazın.", "evet"},
	{"Tüm veriler silinecek. Devam etmek için 'onayla' yazın.", "onayla"},
	{"Bu işlem geri alınamaz. Tamamlamak için 'tamam' yazın.", "tamam"},
}

type challenge struct {
	answer    string
	expiresAt time.Time
}

// Service reinitializes every managed document after a server-side
// challenge confirmation. The challenge is verified here, not in the
// browser, so the destructive call cannot be issued directly.
type Service struct {
	store *docstore.Store

	mu         sync.Mutex
	challenges map[string]challenge
}

// NewService creates a reset service backed by the document store
func NewService(store *docstore.Store) *Service {
	return &Service{
		store:      store,
		challenges: make(map[string]challenge),
	}
}

// Challenge issues a new confirmation challenge from the question pool
func (s *Service) Challenge() (id, question string) {
	picked := questions[rand.Intn(len(questions))]
	id = "rst-" + uuid.New().String()[:8]

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ch := range s.challenges {
		if time.Now().After(ch.expiresAt) {
			delete(s.challenges, key)
		}
	}

	s.challenges[id] = challenge{
		answer:    picked.Answer,
		expiresAt: time.Now().Add(challengeTTL),
	}

	return id, picked.Question
}

// Confirm verifies the answer (trimmed, case-insensitive) and performs
// the reset. A challenge is single-use regardless of the outcome.
func (s *Service) Confirm(id, answer string) error {
	s.mu.Lock()
	ch, ok := s.challenges[id]
	delete(s.challenges, id)
	s.mu.Unlock()

	if !ok || time.Now().After(ch.expiresAt) {
		return ErrChallengeNotFound
	}

	if !strings.EqualFold(strings.TrimSpace(answer), ch.answer) {
		return ErrWrongAnswer
	}

	return s.resetAll()
}

// resetAll overwrites every managed document with its default value.
// There is no rollback: a failure partway leaves earlier documents
// already reset.
func (s *Service) resetAll() error {
	log.Printf("[Reset] Reinitializing all managed documents")

	for _, name := range docstore.Managed() {
		var payload interface{}
		switch name {
		case docstore.DocCapacitySettings:
			payload = models.DefaultCapacitySettings()
		default:
			if err := s.store.WriteRaw(name, docstore.DefaultRaw(name)); err != nil {
				return fmt.Errorf("failed to reset document %s: %w", name, err)
			}
			continue
		}

		if err := s.store.Write(name, payload); err != nil {
			return fmt.Errorf("failed to reset document %s: %w", name, err)
		}
	}

	log.Printf("[Reset] System reset complete")
	return nil
}
