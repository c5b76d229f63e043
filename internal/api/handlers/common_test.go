package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/backup"
	"github.com/yourusername/lokanta-backend/internal/capacity"
	"github.com/yourusername/lokanta-backend/internal/config"
	"github.com/yourusername/lokanta-backend/internal/contact"
	"github.com/yourusername/lokanta-backend/internal/database"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/reservation"
)

// MockSender records outgoing mail instead of delivering it
type MockSender struct {
	mu       sync.Mutex
	Messages []*mailer.Message
	Err      error
}

func (m *MockSender) Send(msg *mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

func (m *MockSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

type testEnv struct {
	store     *docstore.Store
	sender    *MockSender
	engine    *backup.Engine
	scheduler *backup.Scheduler
	audit     *activity.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpDir := t.TempDir()
	store, err := docstore.New(tmpDir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	sender := &MockSender{}

	cfg := &config.Config{}
	cfg.Storage.DataDir = tmpDir
	cfg.Storage.BackupDir = t.TempDir()

	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	db := &database.DB{DB: raw}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	engine := backup.NewEngine(cfg, store, sender)
	scheduler := backup.NewScheduler(engine)
	t.Cleanup(scheduler.Stop)

	return &testEnv{
		store:     store,
		sender:    sender,
		engine:    engine,
		scheduler: scheduler,
		audit:     activity.NewLogger(db),
	}
}

func (env *testEnv) reservationManager() *reservation.Manager {
	evaluator := capacity.NewEvaluator(env.store)
	return reservation.NewManager(env.store, evaluator, env.sender)
}

func (env *testEnv) contactManager() *contact.Manager {
	return contact.NewManager(env.store, env.sender)
}

func contactRequest() contact.CreateRequest {
	return contact.CreateRequest{
		Name:    "Mehmet Demir",
		Email:   "mehmet@example.com",
		Subject: "Grup rezervasyonu",
		Message: "20 kişilik bir organizasyon için yer var mı?",
	}
}

func reservationRequest(date, slot string, guests int) reservation.CreateRequest {
	return reservation.CreateRequest{
		Name:   "Ayşe Yılmaz",
		Email:  "ayse@example.com",
		Phone:  "+90 555 111 2233",
		Date:   date,
		Time:   slot,
		Guests: guests,
	}
}

// jsonContext builds a test context carrying a JSON request body
func jsonContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}
