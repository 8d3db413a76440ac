package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

/*
   =========================================================
   LOW-LEVEL UTILS
   =========================================================
*/

// TokenDigest is what token_blacklist.token stores: HMAC-SHA256(raw, secret) in hex.
func TokenDigest(rawAccessToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawAccessToken))
	return hex.EncodeToString(m.Sum(nil))
}

/*
   =========================================================
   CORE API (token TEXT unique, expired_at, deleted_at)
   =========================================================
*/

// IsBlacklisted: an active, unexpired row exists for the token.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	var exists bool
	err := db.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1
		  FROM token_blacklist
		  WHERE token = ?
		    AND deleted_at IS NULL
		    AND expired_at > NOW()
		)
	`, TokenDigest(rawAccessToken, jwtSecret)).Scan(&exists).Error
	return exists, errors.Wrap(err, "blacklist lookup")
}

// PurgeExpired hard-deletes rows that expired before cutoff.
func PurgeExpired(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at < ?`, cutoff)
	return res.RowsAffected, errors.Wrap(res.Error, "blacklist purge")
}

// BlacklistChecker adapts IsBlacklisted to the AuthJWT option.
func BlacklistChecker(db *gorm.DB, jwtSecret string) func(ctx context.Context, rawToken string) (bool, error) {
	return func(ctx context.Context, rawToken string) (bool, error) {
		return IsBlacklisted(ctx, db, rawToken, jwtSecret)
	}
}
