package errors

import (
	"errors"
	"fmt"
)

// Flow errors. Category sentinels are wrapped around the underlying cause
// so callers can test the category with errors.Is and still reach the
// detail with errors.As.
var (
	ErrNotSignedIn     = errors.New("not signed in")
	ErrPin             = errors.New("pin request failed")
	ErrToken           = errors.New("token request failed")
	ErrSession         = errors.New("session error")
	ErrMissingIdentity = errors.New("client identifier and product are required")
)

// BadResponseError reports a non-2xx response from the account service.
type BadResponseError struct {
	StatusCode int
	URL        string
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response %d from %s", e.StatusCode, e.URL)
}

// NoDataError reports a response that carried no usable payload.
type NoDataError struct {
	URL string
}

func (e *NoDataError) Error() string {
	return "no data in response from " + e.URL
}

// PinError wraps err as a pin acquisition failure.
func PinError(err error) error {
	return wrap(ErrPin, err)
}

// TokenError wraps err as a token retrieval failure.
func TokenError(err error) error {
	return wrap(ErrToken, err)
}

// SessionError wraps err as a transport failure during token validation.
func SessionError(err error) error {
	return wrap(ErrSession, err)
}

func wrap(category, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, category) {
		return err
	}

	return fmt.Errorf("%w: %w", category, err)
}
