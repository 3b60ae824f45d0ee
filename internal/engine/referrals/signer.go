package referrals

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	apperrors "refsign/internal/pkg/errors"
)

// SignatureLength is the length of a hex encoded HMAC-SHA256 digest.
const SignatureLength = sha256.Size * 2

// CanonicalString returns the string that is signed for a referral:
// "<referralID>:<createdAtMillis>".
func CanonicalString(referralID string, createdAtMillis int64) string {
	return referralID + ":" + strconv.FormatInt(createdAtMillis, 10)
}

// GenerateSignature returns the lowercase hex HMAC-SHA256 of the canonical
// string keyed by secretKey. It fails only with an INVALID_INPUT error.
func GenerateSignature(referralID string, createdAtMillis int64, secretKey string) (string, error) {
	if referralID == "" {
		return "", apperrors.InvalidInput("referral_id", "must not be empty")
	}
	if createdAtMillis < 0 {
		return "", apperrors.InvalidInput("created_at", "must not be negative")
	}
	if secretKey == "" {
		return "", apperrors.InvalidInput("secret_key", "must not be empty")
	}

	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(CanonicalString(referralID, createdAtMillis)))
	return hex.EncodeToString(h.Sum(nil)), nil
}
