package referrals

import (
	"net/url"
	"strconv"

	apperrors "refsign/internal/pkg/errors"
)

const (
	ParamReferralID = "referralId"
	ParamCreatedAt  = "createdAt"
	ParamSignature  = "signature"
)

type SignedLink struct {
	ReferralID      string `json:"referralId"`
	CreatedAt       int64  `json:"createAtUnix"`
	CanonicalString string `json:"signatureString"`
	Signature       string `json:"signature"`
	URL             string `json:"signedUrl"`
}

// BuildSignedURL appends referralId, createdAt and signature to baseURL,
// after any query the base URL already carries.
func BuildSignedURL(baseURL, referralID string, createdAtMillis int64, signature string) (string, error) {
	if baseURL == "" {
		return "", apperrors.InvalidInput("base_url", "is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", apperrors.InvalidInput("base_url", "invalid url format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.InvalidInput("base_url", "must start with http:// or https://")
	}
	if u.Host == "" {
		return "", apperrors.InvalidInput("base_url", "must include a host")
	}

	// url.Values.Encode sorts keys; the endpoint documents this order.
	query := u.RawQuery
	if query != "" {
		query += "&"
	}
	query += ParamReferralID + "=" + url.QueryEscape(referralID) +
		"&" + ParamCreatedAt + "=" + strconv.FormatInt(createdAtMillis, 10) +
		"&" + ParamSignature + "=" + url.QueryEscape(signature)
	u.RawQuery = query

	return u.String(), nil
}
