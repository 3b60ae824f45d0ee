package referrals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refsign/internal/platform/config"
	apperrors "refsign/internal/pkg/errors"
)

type capturedRequest struct {
	query     url.Values
	delivery  string
	userAgent string
}

// newEndpoint stands in for the ATS referral page and answers with status.
func newEndpoint(t *testing.T, status int, captured chan<- capturedRequest) *httptest.Server {
	t.Helper()

	router := httprouter.New()
	router.GET("/external/referral/:provider", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		captured <- capturedRequest{
			query:     r.URL.Query(),
			delivery:  r.Header.Get(HeaderDelivery),
			userAgent: r.UserAgent(),
		}
		w.WriteHeader(status)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func signedLinkFor(t *testing.T, baseURL string) *SignedLink {
	t.Helper()

	s := NewService(config.ReferralConfig{HMACSecret: testSecret, BaseURL: baseURL})
	link, err := s.SignAt("REF135", 1700000000000)
	require.NoError(t, err)
	return link
}

func TestSenderSend(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	srv := newEndpoint(t, http.StatusOK, captured)

	sender := NewSender(config.SenderConfig{Timeout: time.Second, UserAgent: "refsign-test"})
	delivery, err := sender.Send(context.Background(), signedLinkFor(t, srv.URL+"/external/referral/ats"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, delivery.StatusCode)
	_, err = uuid.Parse(delivery.ID)
	assert.NoError(t, err)

	got := <-captured
	assert.Equal(t, "REF135", got.query.Get(ParamReferralID))
	assert.Equal(t, "1700000000000", got.query.Get(ParamCreatedAt))
	assert.Equal(t, "954572fc7e710fdc2995bda703ccb9bd6d4481b4e8ccfa1183c269b385db8dfb", got.query.Get(ParamSignature))
	assert.Equal(t, delivery.ID, got.delivery)
	assert.Equal(t, "refsign-test", got.userAgent)
}

func TestSenderSendErrorStatus(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	srv := newEndpoint(t, http.StatusUnauthorized, captured)

	sender := NewSender(config.SenderConfig{})
	delivery, err := sender.Send(context.Background(), signedLinkFor(t, srv.URL+"/external/referral/ats"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDeliveryFailed, apperrors.Code(err))
	require.NotNil(t, delivery)
	assert.Equal(t, http.StatusUnauthorized, delivery.StatusCode)
}

func TestSenderSendCancelled(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	srv := newEndpoint(t, http.StatusOK, captured)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := NewSender(config.SenderConfig{Timeout: time.Second})
	delivery, err := sender.Send(ctx, signedLinkFor(t, srv.URL+"/external/referral/ats"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, delivery.StatusCode)
}

func TestNewSenderDefaultTimeout(t *testing.T) {
	sender := NewSender(config.SenderConfig{})
	assert.Equal(t, defaultTimeout, sender.client.Timeout)
}
