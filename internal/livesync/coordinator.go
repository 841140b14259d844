package livesync

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/metrics"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/pkg/logger"
)

const defaultWriteTimeout = 5 * time.Second

// FeedMessage is what followers receive for each persisted snapshot.
type FeedMessage struct {
	MatchID   string            `json:"matchId"`
	Seq       uint64            `json:"seq"`
	UpdatedAt time.Time         `json:"updatedAt"`
	State     models.MatchState `json:"state"`
}

// Coordinator persists snapshots for one match without blocking the scorer.
// At most one write is in flight; snapshots arriving meanwhile collapse to
// the newest, and a failed write is not retried (the next mutation carries
// the full state anyway).
type Coordinator struct {
	matchID      string
	deviceID     string
	store        Store
	feed         Publisher
	log          *logger.Logger
	now          func() time.Time
	codes        func() (string, error)
	writeTimeout time.Duration
	transferTTL  time.Duration

	mu      sync.Mutex
	pending *models.MatchState
	running bool
	idle    chan struct{}
	seq     uint64
	status  SyncStatus
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithFeed publishes every persisted snapshot to p.
func WithFeed(p Publisher) Option { return func(c *Coordinator) { c.feed = p } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(c *Coordinator) { c.now = now } }

// WithCodeSource overrides the random transfer code generator.
func WithCodeSource(next func() (string, error)) Option {
	return func(c *Coordinator) { c.codes = next }
}

// WithWriteTimeout bounds each store write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// WithTransferTTL sets how long a generated transfer code stays valid.
func WithTransferTTL(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.transferTTL = d
		}
	}
}

// WithStartSeq continues sequence numbering from a previously stored record.
func WithStartSeq(seq uint64) Option { return func(c *Coordinator) { c.seq = seq } }

// WithLastSynced seeds the status from a previously stored record.
func WithLastSynced(t time.Time) Option {
	return func(c *Coordinator) {
		if !t.IsZero() {
			c.status = SyncStatus{Phase: PhaseSynced, LastSynced: &t}
		}
	}
}

// NewCoordinator creates a coordinator writing matchID to store on behalf of
// deviceID.
func NewCoordinator(matchID, deviceID string, store Store, log *logger.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		matchID:      matchID,
		deviceID:     deviceID,
		store:        store,
		log:          log,
		now:          time.Now,
		codes:        randomTransferCode,
		writeTimeout: defaultWriteTimeout,
		transferTTL:  DefaultTransferTTL,
		status:       SyncStatus{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Persist schedules state for writing and returns immediately. Its signature
// matches innings.Observer so it can subscribe to a machine directly.
func (c *Coordinator) Persist(state models.MatchState) {
	snap := state.Clone()
	c.mu.Lock()
	c.pending = &snap
	c.status.Phase = PhaseSyncing
	c.status.Reason = ""
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.idle = make(chan struct{})
	c.mu.Unlock()

	go c.drain()
}

func (c *Coordinator) drain() {
	for {
		c.mu.Lock()
		next := c.pending
		c.pending = nil
		if next == nil {
			c.running = false
			close(c.idle)
			c.mu.Unlock()
			return
		}
		c.seq++
		snap := Snapshot{MatchID: c.matchID, DeviceID: c.deviceID, Seq: c.seq, State: *next, UpdatedAt: c.now()}
		c.mu.Unlock()

		err := c.write(snap)

		c.mu.Lock()
		if err != nil {
			c.status = SyncStatus{Phase: PhaseFailed, LastSynced: c.status.LastSynced, Reason: err.Error()}
		} else {
			at := snap.UpdatedAt
			c.status = SyncStatus{Phase: PhaseSynced, LastSynced: &at}
		}
		if c.pending != nil {
			c.status.Phase = PhaseSyncing
		}
		c.mu.Unlock()

		if err == nil {
			c.publish(snap)
		}
	}
}

func (c *Coordinator) write(snap Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()

	start := time.Now()
	err := c.store.SaveSnapshot(ctx, snap)
	metrics.RecordSnapshotWrite(err == nil, time.Since(start))
	if err != nil {
		c.log.ForMatch(c.matchID).WithFields(map[string]interface{}{
			"seq":    snap.Seq,
			"device": snap.DeviceID,
			"error":  err.Error(),
		}).Warn("snapshot write failed")
	}
	return err
}

func (c *Coordinator) publish(snap Snapshot) {
	if c.feed == nil {
		return
	}
	snap.State.TransferCode = nil
	payload, err := json.Marshal(FeedMessage{MatchID: snap.MatchID, Seq: snap.Seq, UpdatedAt: snap.UpdatedAt, State: snap.State})
	if err != nil {
		c.log.ForMatch(c.matchID).WithError(err).Error("encode live feed message")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	if err := c.feed.Publish(ctx, c.matchID, payload); err != nil {
		c.log.ForMatch(c.matchID).WithError(err).Debug("live feed publish failed")
	}
}

// Status returns the current persistence indicator.
func (c *Coordinator) Status() SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.status
	if s.LastSynced != nil {
		t := *s.LastSynced
		s.LastSynced = &t
	}
	return s
}

// DeviceID is the device this coordinator writes for.
func (c *Coordinator) DeviceID() string { return c.deviceID }

// Seq is the sequence number of the last write attempted.
func (c *Coordinator) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Flush waits until every scheduled snapshot has been written or ctx ends.
func (c *Coordinator) Flush(ctx context.Context) error {
	for {
		c.mu.Lock()
		if !c.running {
			c.mu.Unlock()
			return nil
		}
		idle := c.idle
		c.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
