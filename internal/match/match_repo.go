package match

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/models"
)

// ErrMatchClosed is returned when writing to a finished or abandoned match.
var ErrMatchClosed = errors.New("match is already finished or abandoned")

// MatchRepository defines methods to interact with match records. It is the
// shared store the live sync coordinator writes to.
type MatchRepository interface {
	livesync.Store

	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, matchID string) (*Match, error)
	GetMatchByTransferCode(ctx context.Context, code string) (*Match, error)
	GetMatches(ctx context.Context, filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)
	CompleteMatch(ctx context.Context, matchID string, done Completion) error
	ClearExpiredTransferCodes(ctx context.Context, now time.Time) (int64, error)

	// Used inside WithTransaction.
	LockMatchByTransferCode(ctx context.Context, code string) (*Match, error)
	RepinDevice(ctx context.Context, matchID, deviceID string) error

	// Transaction support
	WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateMatch inserts a new match record
func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

// GetMatchByID retrieves a match by its public match ID. It returns nil, nil
// when no such match exists.
func (r *GormMatchRepository) GetMatchByID(ctx context.Context, matchID string) (*Match, error) {
	var match Match
	result := r.db.WithContext(ctx).Where("match_id = ?", matchID).First(&match)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// GetMatchByTransferCode finds the open match currently advertising code.
func (r *GormMatchRepository) GetMatchByTransferCode(ctx context.Context, code string) (*Match, error) {
	return r.findByTransferCode(r.db.WithContext(ctx), code)
}

// LockMatchByTransferCode is GetMatchByTransferCode holding a row lock until
// the surrounding transaction ends.
func (r *GormMatchRepository) LockMatchByTransferCode(ctx context.Context, code string) (*Match, error) {
	return r.findByTransferCode(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), code)
}

func (r *GormMatchRepository) findByTransferCode(db *gorm.DB, code string) (*Match, error) {
	var match Match
	result := db.Where("transfer_code = ? AND status NOT IN ?", code, terminalStatuses).First(&match)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// GetMatches retrieves matches based on filters with pagination, newest first
func (r *GormMatchRepository) GetMatches(ctx context.Context, filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.WithContext(ctx).Model(&Match{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return matches, total, nil
}

// SaveSnapshot writes the scoring state if snap.DeviceID still holds the
// match and no later snapshot has been stored.
func (r *GormMatchRepository) SaveSnapshot(ctx context.Context, snap livesync.Snapshot) error {
	result := r.db.WithContext(ctx).Model(&Match{}).
		Where("match_id = ? AND device_id = ? AND seq < ? AND status NOT IN ?", snap.MatchID, snap.DeviceID, snap.Seq, terminalStatuses).
		Updates(map[string]interface{}{
			"state":          snap.State,
			"seq":            snap.Seq,
			"status":         StatusFor(snap.State),
			"last_synced_at": snap.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return livesync.ErrSnapshotRejected
	}
	return nil
}

// SetTransferCode advertises a handoff code on the match record, replacing
// any earlier one.
func (r *GormMatchRepository) SetTransferCode(ctx context.Context, matchID string, code models.TransferCode) error {
	result := r.db.WithContext(ctx).Model(&Match{}).
		Where("match_id = ? AND status NOT IN ?", matchID, terminalStatuses).
		Updates(map[string]interface{}{
			"transfer_code":       code.Code,
			"transfer_expires_at": code.ExpiresAt,
		})
	if isUniqueViolation(result.Error) {
		return livesync.ErrTransferCodeTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMatchClosed
	}
	return nil
}

// isUniqueViolation matches both the translated gorm error and the raw
// postgres one.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505")
}

// ClaimTransfer repins the match holding code to deviceID and clears the
// code, all under a row lock. An expired code is reported without changing
// the record.
func (r *GormMatchRepository) ClaimTransfer(ctx context.Context, code, deviceID string, now time.Time) (livesync.Claim, error) {
	var claim livesync.Claim
	err := r.WithTransaction(ctx, func(tx MatchRepository) error {
		match, err := tx.LockMatchByTransferCode(ctx, code)
		if err != nil {
			return err
		}
		if match == nil {
			return livesync.ErrInvalidTransferCode
		}
		if match.TransferExpiresAt == nil || now.After(*match.TransferExpiresAt) {
			return livesync.ErrTransferCodeExpired
		}
		if err := tx.RepinDevice(ctx, match.MatchID, deviceID); err != nil {
			return err
		}
		claim = livesync.Claim{
			MatchID:        match.MatchID,
			DeviceID:       deviceID,
			PreviousDevice: match.DeviceID,
			State:          match.State,
			Seq:            match.Seq,
		}
		if match.LastSyncedAt != nil {
			claim.LastSynced = *match.LastSyncedAt
		}
		return nil
	})
	if err != nil {
		return livesync.Claim{}, err
	}
	return claim, nil
}

// RepinDevice hands the match to deviceID and consumes the transfer code.
func (r *GormMatchRepository) RepinDevice(ctx context.Context, matchID, deviceID string) error {
	return r.db.WithContext(ctx).Model(&Match{}).
		Where("match_id = ?", matchID).
		Updates(map[string]interface{}{
			"device_id":           deviceID,
			"transfer_code":       gorm.Expr("NULL"),
			"transfer_expires_at": gorm.Expr("NULL"),
		}).Error
}

// CompleteMatch closes the match as finished or abandoned.
func (r *GormMatchRepository) CompleteMatch(ctx context.Context, matchID string, done Completion) error {
	updates := map[string]interface{}{
		"status":              done.Status,
		"state":               done.State,
		"result_summary":      done.ResultSummary,
		"player_of_the_match": done.PlayerOfTheMatch,
		"mvp_rankings":        done.MVPRankings,
		"completed_at":        done.At,
		"transfer_code":       gorm.Expr("NULL"),
		"transfer_expires_at": gorm.Expr("NULL"),
	}
	result := r.db.WithContext(ctx).Model(&Match{}).
		Where("match_id = ? AND status NOT IN ?", matchID, terminalStatuses).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMatchClosed
	}
	return nil
}

// ClearExpiredTransferCodes drops codes that expired before now and were
// never claimed.
func (r *GormMatchRepository) ClearExpiredTransferCodes(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Match{}).
		Where("transfer_code IS NOT NULL AND transfer_expires_at < ?", now).
		Updates(map[string]interface{}{
			"transfer_code":       gorm.Expr("NULL"),
			"transfer_expires_at": gorm.Expr("NULL"),
		})
	return result.RowsAffected, result.Error
}
