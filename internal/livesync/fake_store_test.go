package livesync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

type memoryStore struct {
	mu        sync.Mutex
	snapshots []Snapshot
	state     models.MatchState
	seq       uint64
	device    string
	code      *models.TransferCode
	taken     map[string]bool // codes held by other matches
	failNext  error
	gate      chan struct{} // when set, SaveSnapshot waits for a receive
	entered   chan struct{}
}

func newMemoryStore(device string) *memoryStore {
	return &memoryStore{device: device}
}

func (s *memoryStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.DeviceID != s.device || snap.Seq <= s.seq {
		return ErrSnapshotRejected
	}
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.snapshots = append(s.snapshots, snap)
	s.seq = snap.Seq
	s.state = snap.State
	return nil
}

func (s *memoryStore) SetTransferCode(_ context.Context, _ string, code models.TransferCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken[code.Code] {
		return ErrTransferCodeTaken
	}
	s.code = &code
	return nil
}

func (s *memoryStore) ClaimTransfer(_ context.Context, code, deviceID string, now time.Time) (Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.code == nil || s.code.Code != code {
		return Claim{}, ErrInvalidTransferCode
	}
	if s.code.Expired(now) {
		return Claim{}, ErrTransferCodeExpired
	}
	claim := Claim{MatchID: "m1", PreviousDevice: s.device, State: s.state.Clone(), Seq: s.seq}
	s.device = deviceID
	s.code = nil
	return claim, nil
}

func (s *memoryStore) saved() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot(nil), s.snapshots...)
}

type recordingFeed struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *recordingFeed) Publish(_ context.Context, _ string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

var errStoreDown = errors.New("store unavailable")
