package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/backup"
	"github.com/yourusername/lokanta-backend/internal/config"
	"github.com/yourusername/lokanta-backend/internal/database"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

type nullSender struct {
	mu    sync.Mutex
	count int
}

func (s *nullSender) Send(msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return nil
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Logging.Level = "error"
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.BackupDir = t.TempDir()
	cfg.Security.CORS.AllowedOrigins = []string{"*"}

	store, err := docstore.New(cfg.Storage.DataDir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	sender := &nullSender{}

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

	hub := websocket.NewHub()

	return SetupRouter(cfg, store, sender, engine, scheduler, hub, activity.NewLogger(db))
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestReservationFlow(t *testing.T) {
	router := setupTestRouter(t)

	create := doJSON(t, router, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":   "Ayşe Yılmaz",
		"email":  "ayse@example.com",
		"phone":  "+90 555 111 2233",
		"date":   "2025-12-24",
		"time":   "19:30",
		"guests": 4,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", create.Code, create.Body.String())
	}

	var created models.Reservation
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse reservation: %v", err)
	}

	patch := doJSON(t, router, http.MethodPatch, "/api/reservations", map[string]string{
		"id":     created.ID,
		"status": models.ReservationConfirmed,
	})
	if patch.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", patch.Code, patch.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/reservations", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", list.Code)
	}

	var listed []models.Reservation
	if err := json.Unmarshal(list.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != models.ReservationConfirmed {
		t.Errorf("expected one confirmed reservation, got %+v", listed)
	}

	del := doJSON(t, router, http.MethodDelete, "/api/reservations?id="+created.ID, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", del.Code)
	}
}

func TestRestoreEmptySnapshotClearsReservations(t *testing.T) {
	router := setupTestRouter(t)

	create := doJSON(t, router, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":   "Ayşe Yılmaz",
		"email":  "ayse@example.com",
		"phone":  "+90 555 111 2233",
		"date":   "2025-12-24",
		"time":   "19:30",
		"guests": 4,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", create.Code)
	}

	restore := doJSON(t, router, http.MethodPost, "/api/backup", map[string]interface{}{
		"timestamp":    "2025-01-01T00:00:00Z",
		"version":      models.SnapshotVersion,
		"reservations": []interface{}{},
	})
	if restore.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", restore.Code, restore.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/reservations", nil)
	if body := strings.TrimSpace(list.Body.String()); body != "[]" {
		t.Errorf("expected empty reservation list after restore, got %s", body)
	}
}

func TestExportThenRestoreRoundTrip(t *testing.T) {
	router := setupTestRouter(t)

	if w := doJSON(t, router, http.MethodPost, "/api/messages", map[string]string{
		"name":    "Mehmet Demir",
		"email":   "mehmet@example.com",
		"subject": "Soru",
		"message": "Pazartesi açık mısınız?",
	}); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	export := doJSON(t, router, http.MethodGet, "/api/backup", nil)
	if export.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", export.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/backup", bytes.NewReader(export.Body.Bytes()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected restore of own export to succeed, got %d. Body: %s", w.Code, w.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/messages", nil)
	var messages []models.ContactMessage
	if err := json.Unmarshal(list.Body.Bytes(), &messages); err != nil {
		t.Fatalf("failed to parse messages: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("expected 1 message after round trip, got %d", len(messages))
	}
}

func TestUnknownStatusMapping(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/reservations", map[string]string{
		"id":     "resv-missing",
		"status": models.ReservationCancelled,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
