package backup

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring automatic backups. The schedule is
// registered through the admin API and lives in memory.
// TODO: persist the registered schedule so it survives a restart.
type Scheduler struct {
	engine *Engine
	cron   *cron.Cron

	mu      sync.Mutex
	entryID cron.EntryID
	email   string
}

// NewScheduler creates a backup scheduler around the engine
func NewScheduler(engine *Engine) *Scheduler {
	return &Scheduler{
		engine: engine,
		cron:   cron.New(),
	}
}

// Start begins executing registered schedules
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler, waiting for a running backup to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Configure replaces the current schedule. intervalHours of zero
// removes the schedule without registering a new one.
func (s *Scheduler) Configure(email string, intervalHours int) error {
	if intervalHours < 0 {
		return fmt.Errorf("interval cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	s.email = email
	if intervalHours == 0 {
		log.Printf("[BackupSchedule] Automatic backups disabled")
		return nil
	}

	spec := fmt.Sprintf("@every %dh", intervalHours)
	entryID, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("failed to register schedule: %w", err)
	}

	s.entryID = entryID
	log.Printf("[BackupSchedule] Automatic backup every %dh to %s", intervalHours, email)
	return nil
}

func (s *Scheduler) run() {
	s.mu.Lock()
	email := s.email
	s.mu.Unlock()

	if _, err := s.engine.Auto(email); err != nil {
		log.Printf("[BackupSchedule] Scheduled backup failed: %v", err)
	}
}
