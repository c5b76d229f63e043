package contact

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ErrNotFound is returned when no message matches the given id
var ErrNotFound = errors.New("message not found")

// CreateRequest carries the public contact form fields
type CreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Manager handles contact messages and admin replies
type Manager struct {
	store  *docstore.Store
	mailer mailer.Sender
}

// NewManager creates a contact message manager. mailer may be nil; in
// that case Reply returns an error.
func NewManager(store *docstore.Store, sender mailer.Sender) *Manager {
	return &Manager{store: store, mailer: sender}
}

// Create stores a new contact message
func (m *Manager) Create(req CreateRequest) (*models.ContactMessage, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("name, email, subject and message are required")
	}

	record := models.ContactMessage{
		ID:        "msg-" + uuid.New().String()[:8],
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	var messages []models.ContactMessage
	err := m.store.Update(docstore.DocMessages, &messages, func() error {
		messages = append(messages, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Contact] Message %s received from %s", record.ID, record.Email)
	return &record, nil
}

// List returns all messages sorted newest-first
func (m *Manager) List() ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if err := m.store.Read(docstore.DocMessages, &messages); err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	return messages, nil
}

// MarkRead flips the read flag of one message to true
func (m *Manager) MarkRead(id string) (*models.ContactMessage, error) {
	var updated *models.ContactMessage
	var messages []models.ContactMessage
	err := m.store.Update(docstore.DocMessages, &messages, func() error {
		for i := range messages {
			if messages[i].ID == id {
				messages[i].Read = true
				record := messages[i]
				updated = &record
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a message by id
func (m *Manager) Delete(id string) error {
	var messages []models.ContactMessage
	return m.store.Update(docstore.DocMessages, &messages, func() error {
		for i := range messages {
			if messages[i].ID == id {
				messages = append(messages[:i], messages[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// Reply emails an answer to the sender of a message and marks it read
func (m *Manager) Reply(id, subject, body string) error {
	if m.mailer == nil {
		return fmt.Errorf("no mail sender configured")
	}

	var messages []models.ContactMessage
	if err := m.store.Read(docstore.DocMessages, &messages); err != nil {
		return err
	}

	var target *models.ContactMessage
	for i := range messages {
		if messages[i].ID == id {
			target = &messages[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}

	err := m.mailer.Send(&mailer.Message{
		To:      []string{target.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if _, err := m.MarkRead(id); err != nil {
		log.Printf("[Contact] Failed to mark %s read after reply: %v", id, err)
	}

	log.Printf("[Contact] Reply sent for message %s", id)
	return nil
}
