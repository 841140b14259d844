package match

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DhavalSuthar-24/crease/pkg/logger"
)

// DefaultJanitorSchedule runs the transfer-code sweep every minute.
const DefaultJanitorSchedule = "@every 1m"

// Janitor clears transfer codes that expired without being claimed.
type Janitor struct {
	repo     MatchRepository
	sessions *SessionManager
	log      *logger.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewJanitor creates a janitor over repo and the open sessions.
func NewJanitor(repo MatchRepository, sessions *SessionManager, log *logger.Logger) *Janitor {
	return &Janitor{
		repo:     repo,
		sessions: sessions,
		log:      log,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start schedules the sweep. schedule uses cron syntax or descriptors such
// as "@every 1m".
func (j *Janitor) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultJanitorSchedule
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.Sweep(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.log.WithField("schedule", schedule).Info("transfer code janitor started")
	return nil
}

// Stop waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep clears expired codes in the store and in open sessions.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.now()
	n, err := j.repo.ClearExpiredTransferCodes(ctx, now)
	if err != nil {
		j.log.WithError(err).Warn("clear expired transfer codes")
		return
	}
	local := j.sessions.ExpireTransferCodes(now)
	if n > 0 || local > 0 {
		j.log.WithFields(map[string]interface{}{
			"stored": n,
			"open":   local,
		}).Info("expired transfer codes cleared")
	}
}
