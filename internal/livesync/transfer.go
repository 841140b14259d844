package livesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/pkg/utils"
)

// TransferCodeLength is the number of digits in a handoff code.
const TransferCodeLength = 6

// DefaultTransferTTL is how long a handoff code can be redeemed.
const DefaultTransferTTL = 15 * time.Minute

// transferCodeAttempts bounds how many fresh codes are drawn when the store
// reports a collision.
const transferCodeAttempts = 5

var (
	ErrInvalidTransferCode = errors.New("invalid transfer code")
	ErrTransferCodeExpired = errors.New("transfer code has expired")
	ErrTransferCodeTaken   = errors.New("transfer code already in use")
)

func randomTransferCode() (string, error) {
	return utils.GenerateNumericCode(TransferCodeLength)
}

// GenerateTransferCode creates a fresh single-use code for this match and
// writes it to the shared record. Any earlier code is replaced. A code that
// another match already holds is redrawn.
func (c *Coordinator) GenerateTransferCode(ctx context.Context) (models.TransferCode, error) {
	var err error
	for attempt := 1; attempt <= transferCodeAttempts; attempt++ {
		var code string
		if code, err = c.codes(); err != nil {
			return models.TransferCode{}, err
		}
		tc := models.TransferCode{Code: code, ExpiresAt: c.now().Add(c.transferTTL)}
		err = c.store.SetTransferCode(ctx, c.matchID, tc)
		if err == nil {
			c.log.ForMatch(c.matchID).WithField("expires_at", tc.ExpiresAt).Info("transfer code issued")
			return tc, nil
		}
		if !errors.Is(err, ErrTransferCodeTaken) {
			break
		}
		c.log.ForMatch(c.matchID).WithField("attempt", attempt).Debug("transfer code collision, redrawing")
	}
	return models.TransferCode{}, fmt.Errorf("publish transfer code: %w", err)
}

// Redeem hands scoring authority for the match holding code to deviceID.
// Malformed codes are rejected before the store is consulted.
//
// Two devices redeeming the same code at the same moment are serialised by
// the store's row lock, so only one succeeds; the loser sees
// ErrInvalidTransferCode.
func Redeem(ctx context.Context, store Store, code, deviceID string, now time.Time) (Claim, error) {
	if !utils.IsNumericCode(code, TransferCodeLength) {
		return Claim{}, ErrInvalidTransferCode
	}
	if deviceID == "" {
		return Claim{}, fmt.Errorf("device id is required")
	}
	claim, err := store.ClaimTransfer(ctx, code, deviceID, now)
	if err != nil {
		return Claim{}, err
	}
	claim.DeviceID = deviceID
	return claim, nil
}
