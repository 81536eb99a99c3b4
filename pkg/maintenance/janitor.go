package maintenance

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alcove-sh/alcove/pkg/alias"
	"github.com/alcove-sh/alcove/pkg/session"
)

// DefaultSchedule runs the sweep hourly.
const DefaultSchedule = "@hourly"

// Janitor periodically removes aliases whose session file is gone.
type Janitor struct {
	aliases  *alias.Store
	sessions *session.Repository
	schedule cron.Schedule
	spec     string
	logger   zerolog.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

// NewJanitor wires an alias store to a session repository under a cron
// schedule spec (standard five-field syntax or descriptors like "@hourly").
// An empty spec uses DefaultSchedule.
func NewJanitor(aliases *alias.Store, sessions *session.Repository, spec string) (*Janitor, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", spec, err)
	}

	return &Janitor{
		aliases:  aliases,
		sessions: sessions,
		schedule: schedule,
		spec:     spec,
		logger:   log.With().Str("component", "janitor").Logger(),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start launches the background sweep loop.
func (j *Janitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return fmt.Errorf("janitor is already running")
	}
	j.running = true
	j.stopCh = make(chan struct{})
	go j.run(j.stopCh)

	j.logger.Info().Str("schedule", j.spec).Msg("Janitor started")
	return nil
}

// Stop halts the background loop.
func (j *Janitor) Stop() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return fmt.Errorf("janitor is not running")
	}
	close(j.stopCh)
	j.running = false

	j.logger.Info().Msg("Janitor stopped")
	return nil
}

// IsRunning reports whether the background loop is active.
func (j *Janitor) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

func (j *Janitor) run(stopCh chan struct{}) {
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			if _, err := j.RunNow(); err != nil {
				j.logger.Error().Err(err).Msg("Scheduled sweep failed")
			}
		case <-stopCh:
			timer.Stop()
			return
		}
	}
}

// RunNow performs one orphan sweep immediately.
func (j *Janitor) RunNow() (*alias.CleanupResult, error) {
	runID := uuid.NewString()
	logger := j.logger.With().Str("run_id", runID).Logger()

	result, err := j.aliases.CleanupOrphans(j.sessions.Exists)
	if err != nil {
		logger.Error().Err(err).Msg("Orphan sweep failed")
		return nil, err
	}

	logger.Info().
		Int("checked", result.TotalChecked).
		Int("removed", result.Removed).
		Msg("Orphan sweep finished")
	return result, nil
}

// Stats is a point-in-time snapshot for the status surface.
type Stats struct {
	Schedule     string
	Running      bool
	NextRun      time.Time
	TotalAliases int
	Orphans      []string
}

// Snapshot inspects the stores without mutating anything.
func (j *Janitor) Snapshot() Stats {
	return Stats{
		Schedule:     j.spec,
		Running:      j.IsRunning(),
		NextRun:      j.schedule.Next(time.Now()),
		TotalAliases: j.aliases.Count(),
		Orphans:      j.aliases.Orphans(j.sessions.Exists),
	}
}
