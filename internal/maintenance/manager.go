package maintenance

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/kennethkenn/Fitness-Log/internal/config"
	"github.com/kennethkenn/Fitness-Log/internal/database"
)

// Manager runs scheduled database maintenance (PRAGMA optimize) on a cron
// schedule taken from settings.
type Manager struct {
	db      *database.DB
	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	running bool
}

// NewManager creates a new maintenance manager
func NewManager(db *database.DB) *Manager {
	return &Manager{
		db:   db,
		cron: cron.New(),
	}
}

// Start starts the scheduler. Returns false if maintenance is disabled in
// settings or the schedule cannot be parsed.
func (m *Manager) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return true
	}

	loader := config.NewLoader(m.db)
	if !loader.BoolDefaultTrue("maintenance.enabled") {
		log.Debug().Msg("Database maintenance disabled")
		return false
	}
	schedule := loader.String("maintenance.schedule", "0 4 * * *")

	entryID, err := m.cron.AddFunc(schedule, m.run)
	if err != nil {
		log.Warn().Err(err).Str("schedule", schedule).Msg("Invalid maintenance schedule")
		return false
	}
	m.entryID = entryID

	m.cron.Start()
	m.running = true

	log.Info().Str("schedule", schedule).Msg("Database maintenance scheduled")
	return true
}

// Stop stops the scheduler, waiting for a running job to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	ctx := m.cron.Stop()
	<-ctx.Done()
	m.running = false

	log.Info().Msg("Database maintenance stopped")
}

// run executes one maintenance pass
func (m *Manager) run() {
	if err := m.db.Optimize(); err != nil {
		log.Error().Err(err).Msg("Database optimize failed")
		return
	}
	log.Debug().Msg("Database maintenance complete")
}

// RunVacuum rebuilds the database file on demand
func (m *Manager) RunVacuum() error {
	return m.db.Vacuum()
}
