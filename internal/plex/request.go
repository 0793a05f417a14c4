package plex

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/alexjbarnes/plex-signin/internal/errors"
)

const (
	headerClientIdentifier = "X-Plex-Client-Identifier"
	headerProduct          = "X-Plex-Product"
	headerToken            = "X-Plex-Token"
	headerCode             = "code"

	pinsPath = "/api/v2/pins"
	userPath = "/api/v2/user"
)

// Request is one of the three calls the sign-in flow makes. The set of
// variants is closed: GetPinRequest, ValidateTokenRequest, CheckPinRequest.
type Request interface {
	isRequest()
}

// GetPinRequest asks for a new strong pin.
type GetPinRequest struct{}

// ValidateTokenRequest probes the user endpoint with a candidate token.
type ValidateTokenRequest struct {
	Token string
}

// CheckPinRequest polls a pin for an approved auth token.
type CheckPinRequest struct {
	Pin Pin
}

func (GetPinRequest) isRequest()        {}
func (ValidateTokenRequest) isRequest() {}
func (CheckPinRequest) isRequest()      {}

// Validate reports whether the identity carries the values every request
// needs.
func (id Identity) Validate() error {
	if id.ClientIdentifier == "" || id.Product == "" {
		return apperrors.ErrMissingIdentity
	}

	return nil
}

// Build turns r into a ready-to-send HTTP request against baseURL. It does
// no I/O and fails only when the identity is incomplete or r is not a
// known variant.
func Build(ctx context.Context, baseURL string, id Identity, r Request) (*http.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")

	switch r := r.(type) {
	case GetPinRequest:
		return buildGetPin(ctx, base, id)
	case ValidateTokenRequest:
		return buildValidateToken(ctx, base, id, r.Token)
	case CheckPinRequest:
		return buildCheckPin(ctx, base, id, r.Pin)
	default:
		return nil, errUnknownRequest
	}
}

func buildGetPin(ctx context.Context, base string, id Identity) (*http.Request, error) {
	form := url.Values{}
	form.Set("strong", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+pinsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setIdentity(req, id, true)

	return req, nil
}

func buildValidateToken(ctx context.Context, base string, id Identity, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+userPath, nil)
	if err != nil {
		return nil, err
	}

	setIdentity(req, id, true)
	req.Header.Set(headerToken, token)

	return req, nil
}

func buildCheckPin(ctx context.Context, base string, id Identity, pin Pin) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+pinsPath+"/"+strconv.FormatInt(pin.ID, 10), nil)
	if err != nil {
		return nil, err
	}

	setIdentity(req, id, false)
	req.Header.Set(headerCode, pin.Code)

	return req, nil
}

func setIdentity(req *http.Request, id Identity, withProduct bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerClientIdentifier, id.ClientIdentifier)

	if withProduct {
		req.Header.Set(headerProduct, id.Product)
	}
}
