package referrals

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"refsign/internal/platform/config"
)

type Service struct {
	secret  string
	baseURL string
	now     func() time.Time
}

func NewService(cfg config.ReferralConfig) *Service {
	return &Service{
		secret:  cfg.HMACSecret,
		baseURL: cfg.BaseURL,
		now:     time.Now,
	}
}

// Sign signs referralID as created at createdAt. A zero createdAt means now.
func (s *Service) Sign(referralID string, createdAt time.Time) (*SignedLink, error) {
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	return s.SignAt(referralID, createdAt.UnixMilli())
}

func (s *Service) SignAt(referralID string, createdAtMillis int64) (*SignedLink, error) {
	signature, err := GenerateSignature(referralID, createdAtMillis, s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign referral: %w", err)
	}

	signedURL, err := BuildSignedURL(s.baseURL, referralID, createdAtMillis, signature)
	if err != nil {
		return nil, fmt.Errorf("build signed url: %w", err)
	}

	log.Debug().
		Str("referral_id", referralID).
		Int64("created_at", createdAtMillis).
		Msg("referral signed")

	return &SignedLink{
		ReferralID:      referralID,
		CreatedAt:       createdAtMillis,
		CanonicalString: CanonicalString(referralID, createdAtMillis),
		Signature:       signature,
		URL:             signedURL,
	}, nil
}
