package livesync

import "time"

// SyncPhase is the persistence indicator shown to the scorer.
type SyncPhase string

const (
	PhaseIdle    SyncPhase = "idle"
	PhaseSyncing SyncPhase = "syncing"
	PhaseSynced  SyncPhase = "synced"
	PhaseFailed  SyncPhase = "failed"
)

// SyncStatus reports the last persistence outcome. LastSynced only moves on
// success, so a failed write leaves the previous "synced at" time visible.
type SyncStatus struct {
	Phase      SyncPhase  `json:"phase"`
	LastSynced *time.Time `json:"lastSynced,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}
