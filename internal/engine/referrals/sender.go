package referrals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"refsign/internal/platform/config"
	apperrors "refsign/internal/pkg/errors"
)

const (
	HeaderDelivery  = "X-Referral-Delivery"
	defaultTimeout  = 10 * time.Second
	maxDrainedBytes = 64 << 10
)

// Sender fires a signed link at the referral endpoint once. It does not
// retry and does not interpret the response body.
type Sender struct {
	client    *http.Client
	userAgent string
}

type Delivery struct {
	ID         string        `json:"id"`
	StatusCode int           `json:"statusCode"`
	Duration   time.Duration `json:"duration"`
}

func NewSender(cfg config.SenderConfig) *Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sender{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
	}
}

func (s *Sender) Send(ctx context.Context, link *SignedLink) (*Delivery, error) {
	delivery := &Delivery{ID: uuid.NewString()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(HeaderDelivery, delivery.ID)
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	logger := log.With().
		Str("delivery_id", delivery.ID).
		Str("referral_id", link.ReferralID).
		Logger()

	start := time.Now()
	resp, err := s.client.Do(req)
	delivery.Duration = time.Since(start)
	if err != nil {
		logger.Error().Err(err).Dur("duration", delivery.Duration).Msg("referral delivery failed")
		return delivery, fmt.Errorf("send referral: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainedBytes))

	delivery.StatusCode = resp.StatusCode
	logger.Info().
		Int("status", resp.StatusCode).
		Dur("duration", delivery.Duration).
		Msg("referral delivered")

	if resp.StatusCode >= 400 {
		return delivery, apperrors.DeliveryFailed(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
	return delivery, nil
}
