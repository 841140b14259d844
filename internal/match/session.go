package match

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/innings"
	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/metrics"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/pkg/logger"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrNotPinned     = errors.New("device does not hold scoring authority for this match")
)

// Session is the live scoring state of one match on behalf of the pinned
// device: the machine plus the coordinator persisting it.
type Session struct {
	mu       sync.Mutex
	matchID  string
	deviceID string
	title    string
	machine  *innings.Machine
	sync     *livesync.Coordinator
}

// Do runs fn with exclusive access to the machine.
func (s *Session) Do(fn func(m *innings.Machine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.machine)
}

// DeviceID is the device currently holding scoring authority.
func (s *Session) DeviceID() string { return s.deviceID }

// MatchID identifies the match.
func (s *Session) MatchID() string { return s.matchID }

// Title is the match title from the record.
func (s *Session) Title() string { return s.title }

// Sync exposes the persistence coordinator.
func (s *Session) Sync() *livesync.Coordinator { return s.sync }

// SessionManager keeps one Session per open match.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	repo     MatchRepository
	rules    innings.Rules
	log      *logger.Logger
	syncOpts []livesync.Option
}

// NewSessionManager creates a manager loading matches from repo. syncOpts
// are applied to every coordinator it creates.
func NewSessionManager(repo MatchRepository, rules innings.Rules, log *logger.Logger, syncOpts ...livesync.Option) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		repo:     repo,
		rules:    rules,
		log:      log,
		syncOpts: syncOpts,
	}
}

// Rules returns the scoring rules sessions are created with.
func (sm *SessionManager) Rules() innings.Rules { return sm.rules }

// Start opens a session for a newly created match.
func (sm *SessionManager) Start(rec *Match, machine *innings.Machine) *Session {
	s := sm.newSession(rec.MatchID, rec.DeviceID, rec.Title, machine, rec.Seq, rec.LastSyncedAt)
	sm.put(s)
	return s
}

// Get returns the session for matchID, restoring it from the stored record
// when it is not open yet. Closed matches have no session.
func (sm *SessionManager) Get(ctx context.Context, matchID string) (*Session, error) {
	if s, ok := sm.Peek(matchID); ok {
		return s, nil
	}

	rec, err := sm.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrMatchNotFound
	}
	if rec.Status.Terminal() {
		return nil, ErrMatchClosed
	}

	machine := innings.Restore(rec.State, sm.rules)
	if rec.TransferCode != nil && rec.TransferExpiresAt != nil {
		machine.SetTransferCode(&models.TransferCode{Code: *rec.TransferCode, ExpiresAt: *rec.TransferExpiresAt})
	}
	s := sm.newSession(rec.MatchID, rec.DeviceID, rec.Title, machine, rec.Seq, rec.LastSyncedAt)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if existing, ok := sm.sessions[matchID]; ok {
		return existing, nil
	}
	sm.sessions[matchID] = s
	metrics.SetLiveSessions(len(sm.sessions))
	return s, nil
}

// Peek returns the open session for matchID without loading one.
func (sm *SessionManager) Peek(matchID string) (*Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[matchID]
	return s, ok
}

// Authorize returns the session if deviceID holds the match.
func (sm *SessionManager) Authorize(ctx context.Context, matchID, deviceID string) (*Session, error) {
	s, err := sm.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if s.deviceID != deviceID {
		return nil, ErrNotPinned
	}
	return s, nil
}

// Flush waits for the open session of matchID, if any, to finish writing.
func (sm *SessionManager) Flush(ctx context.Context, matchID string) error {
	s, ok := sm.Peek(matchID)
	if !ok {
		return nil
	}
	return s.sync.Flush(ctx)
}

// FlushAll waits for every open session to finish writing.
func (sm *SessionManager) FlushAll(ctx context.Context) error {
	sm.mu.Lock()
	open := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		open = append(open, s)
	}
	sm.mu.Unlock()

	for _, s := range open {
		if err := s.sync.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Repin replaces the session after a handoff: the new device starts from the
// stored snapshot with an empty undo history.
func (sm *SessionManager) Repin(claim livesync.Claim, title string) *Session {
	var last *time.Time
	if !claim.LastSynced.IsZero() {
		last = &claim.LastSynced
	}
	s := sm.newSession(claim.MatchID, claim.DeviceID, title, innings.Restore(claim.State, sm.rules), claim.Seq, last)
	sm.put(s)
	sm.log.ForMatch(claim.MatchID).WithField("previous_device", claim.PreviousDevice).
		WithField("device", claim.DeviceID).Info("scoring authority transferred")
	return s
}

// Drop closes the session for matchID.
func (sm *SessionManager) Drop(matchID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, matchID)
	metrics.SetLiveSessions(len(sm.sessions))
}

// Len is the number of open sessions.
func (sm *SessionManager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

// ExpireTransferCodes forgets codes past their expiry in open sessions.
func (sm *SessionManager) ExpireTransferCodes(now time.Time) int {
	sm.mu.Lock()
	open := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		open = append(open, s)
	}
	sm.mu.Unlock()

	n := 0
	for _, s := range open {
		s.Do(func(m *innings.Machine) {
			if tc := m.State().TransferCode; tc != nil && tc.Expired(now) {
				m.SetTransferCode(nil)
				n++
			}
		})
	}
	return n
}

func (sm *SessionManager) newSession(matchID, deviceID, title string, machine *innings.Machine, seq uint64, lastSynced *time.Time) *Session {
	opts := append([]livesync.Option{livesync.WithStartSeq(seq)}, sm.syncOpts...)
	if lastSynced != nil {
		opts = append(opts, livesync.WithLastSynced(*lastSynced))
	}
	coord := livesync.NewCoordinator(matchID, deviceID, sm.repo, sm.log, opts...)
	machine.Subscribe(coord.Persist)
	return &Session{
		matchID:  matchID,
		deviceID: deviceID,
		title:    title,
		machine:  machine,
		sync:     coord,
	}
}

func (sm *SessionManager) put(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[s.matchID] = s
	metrics.SetLiveSessions(len(sm.sessions))
}
