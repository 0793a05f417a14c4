package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	apperrors "github.com/alexjbarnes/plex-signin/internal/errors"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the account service API host.
const DefaultBaseURL = "https://plex.tv"

const (
	// maxRedirects is the maximum number of HTTP redirects to follow
	// before giving up, matching the default net/http limit.
	maxRedirects = 10

	// httpClientTimeout is the timeout for the default HTTP client used
	// when no custom client is provided.
	httpClientTimeout = 30 * time.Second

	// maxAPIResponseBytes caps response body reads. Pin and user payloads
	// are a few hundred bytes.
	maxAPIResponseBytes = 1024 * 1024
)

var errUnknownRequest = errors.New("unknown request type")

// Client talks to the plex.tv v2 API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	identity   Identity
}

// sameHostRedirectPolicy follows redirects only when the target host
// matches the original request host, so the token header never leaves
// the account service.
func sameHostRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}

	if len(via) > 0 {
		origHost := via[0].URL.Host
		if req.URL.Host != origHost {
			return fmt.Errorf("redirect to different host blocked: %s -> %s", origHost, req.URL.Host)
		}
	}

	return nil
}

// NewClient creates an API client. If httpClient is nil, a client with a
// 30-second timeout and same-host redirect policy is created. An empty
// baseURL means DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string, id Identity) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:       httpClientTimeout,
			CheckRedirect: sameHostRedirectPolicy,
		}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		identity:   id,
	}
}

// Identity returns the application identity sent with every request.
func (c *Client) Identity() Identity {
	return c.identity
}

// sanitizeResponseBody truncates and sanitizes a response body for
// inclusion in error messages. Limits to 256 bytes and replaces
// non-printable characters to prevent log injection.
func sanitizeResponseBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		body = body[:maxLen]
	}

	var clean []byte

	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size <= 1 {
			clean = append(clean, '?')
			body = body[1:]

			continue
		}

		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			clean = append(clean, '?')
		} else {
			clean = append(clean, body[:size]...)
		}

		body = body[size:]
	}

	return string(clean)
}

// response is a fully read HTTP response.
type response struct {
	status int
	url    string
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do builds and sends r. A non-nil error means the request never produced
// an HTTP response (bad identity, transport failure, unreadable body).
func (c *Client) do(ctx context.Context, r Request) (*response, error) {
	req, err := Build(ctx, c.baseURL, c.identity, r)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request to %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}

	return &response{
		status: resp.StatusCode,
		url:    req.URL.String(),
		body:   body,
	}, nil
}

// GetPin requests a new strong pin. All failures are pin errors.
func (c *Client) GetPin(ctx context.Context) (*Pin, error) {
	resp, err := c.do(ctx, GetPinRequest{})
	if err != nil {
		return nil, apperrors.PinError(err)
	}

	if !resp.ok() {
		return nil, apperrors.PinError(&apperrors.BadResponseError{StatusCode: resp.status, URL: resp.url})
	}

	if len(resp.body) == 0 {
		return nil, apperrors.PinError(&apperrors.NoDataError{URL: resp.url})
	}

	var pr pinResponse
	if err := json.Unmarshal(resp.body, &pr); err != nil {
		return nil, apperrors.PinError(fmt.Errorf("decoding pin response %q: %w", sanitizeResponseBody(resp.body), err))
	}

	if pr.ID == 0 || pr.Code == "" {
		return nil, apperrors.PinError(&apperrors.NoDataError{URL: resp.url})
	}

	return &Pin{ID: pr.ID, Code: pr.Code}, nil
}

// ValidateToken probes the user endpoint with token. Only an explicit 401
// reports the token as invalid. A transport failure or any other non-2xx
// status reports it as still valid together with the error, so a stored
// session is not thrown away because the service was unreachable.
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.do(ctx, ValidateTokenRequest{Token: token})
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingIdentity) {
			return false, err
		}

		return true, apperrors.SessionError(err)
	}

	switch {
	case resp.ok():
		return true, nil
	case resp.status == http.StatusUnauthorized:
		return false, nil
	default:
		return true, &apperrors.BadResponseError{StatusCode: resp.status, URL: resp.url}
	}
}

// CheckPin polls pin and returns its auth token, or "" while the user has
// not approved it yet.
func (c *Client) CheckPin(ctx context.Context, pin Pin) (string, error) {
	resp, err := c.do(ctx, CheckPinRequest{Pin: pin})
	if err != nil {
		return "", apperrors.TokenError(err)
	}

	if !resp.ok() {
		return "", apperrors.TokenError(&apperrors.BadResponseError{StatusCode: resp.status, URL: resp.url})
	}

	if len(resp.body) == 0 {
		return "", apperrors.TokenError(&apperrors.NoDataError{URL: resp.url})
	}

	if !gjson.ValidBytes(resp.body) {
		return "", apperrors.TokenError(fmt.Errorf("invalid JSON from %s: %s", resp.url, sanitizeResponseBody(resp.body)))
	}

	token := gjson.GetBytes(resp.body, "authToken")
	if !token.Exists() || token.Type != gjson.String {
		return "", nil
	}

	return token.String(), nil
}
