// Package livesync keeps the shared store in step with the device that holds
// scoring authority, and moves that authority between devices with
// short-lived transfer codes.
package livesync

import (
	"context"
	"errors"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

// Snapshot is one write of the authoritative state.
type Snapshot struct {
	MatchID   string
	DeviceID  string
	Seq       uint64
	State     models.MatchState
	UpdatedAt time.Time
}

// Claim is the result of redeeming a transfer code.
type Claim struct {
	MatchID        string
	DeviceID       string
	PreviousDevice string
	State          models.MatchState
	Seq            uint64
	LastSynced     time.Time
}

// ErrSnapshotRejected is returned by a Store that refuses a write because a
// later sequence number is stored or the writer no longer holds the pin.
var ErrSnapshotRejected = errors.New("snapshot rejected: stale sequence or device no longer holds scoring authority")

// Store is the shared match record the coordinator writes to.
type Store interface {
	// SaveSnapshot writes the state if snap.DeviceID still holds the match
	// and no later sequence number has been stored.
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	// SetTransferCode publishes a handoff code on the match record. It
	// returns ErrTransferCodeTaken when another match already holds the code.
	SetTransferCode(ctx context.Context, matchID string, code models.TransferCode) error
	// ClaimTransfer atomically repins the match holding code to deviceID and
	// clears the code. It returns ErrInvalidTransferCode when no match holds
	// the code and ErrTransferCodeExpired, without changing anything, when
	// now is past its expiry.
	ClaimTransfer(ctx context.Context, code, deviceID string, now time.Time) (Claim, error)
}

// Publisher fans a persisted snapshot out to read-only followers.
type Publisher interface {
	Publish(ctx context.Context, matchID string, payload []byte) error
}
