package match

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/models"
)

// memoryRepo is an in-memory MatchRepository.
type memoryRepo struct {
	mu      sync.Mutex
	matches map[string]*Match
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{matches: make(map[string]*Match)}
}

func (r *memoryRepo) copyOf(m *Match) *Match {
	c := *m
	c.State = m.State.Clone()
	c.State.TransferCode = nil
	return &c
}

func (r *memoryRepo) CreateMatch(_ context.Context, m *Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = time.Now()
	r.matches[m.MatchID] = r.copyOf(m)
	return nil
}

func (r *memoryRepo) GetMatchByID(_ context.Context, id string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	return r.copyOf(m), nil
}

func (r *memoryRepo) byCode(code string) *Match {
	for _, m := range r.matches {
		if m.TransferCode != nil && *m.TransferCode == code && !m.Status.Terminal() {
			return m
		}
	}
	return nil
}

func (r *memoryRepo) GetMatchByTransferCode(_ context.Context, code string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m := r.byCode(code); m != nil {
		return r.copyOf(m), nil
	}
	return nil, nil
}

func (r *memoryRepo) LockMatchByTransferCode(ctx context.Context, code string) (*Match, error) {
	return r.GetMatchByTransferCode(ctx, code)
}

func (r *memoryRepo) GetMatches(_ context.Context, filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Match
	for _, m := range r.matches {
		if st, ok := filters["status = ?"]; ok && string(m.Status) != st {
			continue
		}
		out = append(out, *r.copyOf(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	total := int64(len(out))
	start := min((page-1)*pageSize, len(out))
	end := min(start+pageSize, len(out))
	return out[start:end], total, nil
}

func (r *memoryRepo) CompleteMatch(_ context.Context, id string, done Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok || m.Status.Terminal() {
		return ErrMatchClosed
	}
	at := done.At
	m.Status = done.Status
	m.State = done.State.Clone()
	m.ResultSummary = done.ResultSummary
	m.PlayerOfTheMatch = done.PlayerOfTheMatch
	m.MVPRankings = done.MVPRankings
	m.CompletedAt = &at
	m.TransferCode, m.TransferExpiresAt = nil, nil
	return nil
}

func (r *memoryRepo) ClearExpiredTransferCodes(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.matches {
		if m.TransferCode != nil && m.TransferExpiresAt != nil && m.TransferExpiresAt.Before(now) {
			m.TransferCode, m.TransferExpiresAt = nil, nil
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) RepinDevice(_ context.Context, id, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.matches[id]
	m.DeviceID = deviceID
	m.TransferCode, m.TransferExpiresAt = nil, nil
	return nil
}

func (r *memoryRepo) WithTransaction(_ context.Context, txFunc func(MatchRepository) error) error {
	return txFunc(r)
}

func (r *memoryRepo) SaveSnapshot(_ context.Context, snap livesync.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[snap.MatchID]
	if !ok || m.DeviceID != snap.DeviceID || m.Seq >= snap.Seq || m.Status.Terminal() {
		return livesync.ErrSnapshotRejected
	}
	at := snap.UpdatedAt
	m.State = snap.State.Clone()
	m.State.TransferCode = nil
	m.Seq = snap.Seq
	m.Status = StatusFor(snap.State)
	m.LastSyncedAt = &at
	return nil
}

func (r *memoryRepo) SetTransferCode(_ context.Context, id string, tc models.TransferCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok || m.Status.Terminal() {
		return ErrMatchClosed
	}
	for otherID, other := range r.matches {
		if otherID != id && other.TransferCode != nil && *other.TransferCode == tc.Code {
			return livesync.ErrTransferCodeTaken
		}
	}
	code, exp := tc.Code, tc.ExpiresAt
	m.TransferCode, m.TransferExpiresAt = &code, &exp
	return nil
}

// ClaimTransfer mirrors GormMatchRepository.ClaimTransfer over the fake.
func (r *memoryRepo) ClaimTransfer(ctx context.Context, code, deviceID string, now time.Time) (livesync.Claim, error) {
	var claim livesync.Claim
	err := r.WithTransaction(ctx, func(tx MatchRepository) error {
		m, err := tx.LockMatchByTransferCode(ctx, code)
		if err != nil {
			return err
		}
		if m == nil {
			return livesync.ErrInvalidTransferCode
		}
		if m.TransferExpiresAt == nil || now.After(*m.TransferExpiresAt) {
			return livesync.ErrTransferCodeExpired
		}
		if err := tx.RepinDevice(ctx, m.MatchID, deviceID); err != nil {
			return err
		}
		claim = livesync.Claim{MatchID: m.MatchID, DeviceID: deviceID, PreviousDevice: m.DeviceID, State: m.State, Seq: m.Seq}
		return nil
	})
	return claim, err
}

func (r *memoryRepo) deviceOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches[id].DeviceID
}
