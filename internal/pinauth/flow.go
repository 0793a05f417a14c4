// Package pinauth drives the plex.tv pin sign-in: request a pin, send the
// user to the approval page, poll until the pin carries a token, then keep
// that token in the secret store.
package pinauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apperrors "github.com/alexjbarnes/plex-signin/internal/errors"
	"github.com/alexjbarnes/plex-signin/internal/plex"
	"github.com/alexjbarnes/plex-signin/internal/secret"
	"github.com/alexjbarnes/plex-signin/internal/state"
)

//go:generate mockgen -source=flow.go -destination=mock_flow_test.go -package=pinauth

// API is the subset of plex.Client the flow needs.
type API interface {
	GetPin(ctx context.Context) (*plex.Pin, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
	CheckPin(ctx context.Context, pin plex.Pin) (string, error)
	Identity() plex.Identity
}

// SecretStore holds the access token. Get returns secret.ErrNotFound for
// an absent key.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// SessionStore persists the pending pin across restarts.
type SessionStore interface {
	PinSession() (*state.PinSession, error)
	SetPinSession(ps state.PinSession) error
	ClearPinSession() error
}

// Phase is where the current sign-in attempt stands.
type Phase int

const (
	// PhaseIdle means no attempt is running.
	PhaseIdle Phase = iota
	// PhasePinRequested means a pin was issued and saved.
	PhasePinRequested
	// PhaseAwaitingApproval means the pending pin is being polled.
	PhaseAwaitingApproval
	// PhaseTokenObtained means the pin was redeemed and the token stored.
	PhaseTokenObtained
	// PhaseFailed means the last RequestToken failed. See Flow.Phase.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePinRequested:
		return "pin_requested"
	case PhaseAwaitingApproval:
		return "awaiting_approval"
	case PhaseTokenObtained:
		return "token_obtained"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures a Flow. API, Secrets and Sessions are required.
type Options struct {
	API      API
	Secrets  SecretStore
	Sessions SessionStore
	Notifier Notifier
	// AppURL is the approval page host. Empty means plex.DefaultAppURL.
	AppURL string
	Logger *slog.Logger
}

// Flow is the sign-in state machine. Its methods are safe for concurrent
// use; CheckForAuthToken, RequestToken, SignOut and the removal of a
// rejected token are serialized so a token is written and announced at
// most once per pin and never removed after a newer one was stored.
type Flow struct {
	api      API
	secrets  SecretStore
	sessions SessionStore
	notifier Notifier
	appURL   string
	logger   *slog.Logger

	mu          sync.Mutex
	phase       Phase
	lastErr     error
	redeemed    bool
	redeemedPin int64
}

// New creates a Flow.
func New(opts Options) (*Flow, error) {
	if opts.API == nil || opts.Secrets == nil || opts.Sessions == nil {
		return nil, errors.New("pinauth: API, Secrets and Sessions are required")
	}

	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func() {})
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Flow{
		api:      opts.API,
		secrets:  opts.Secrets,
		sessions: opts.Sessions,
		notifier: opts.Notifier,
		appURL:   opts.AppURL,
		logger:   opts.Logger,
	}, nil
}

// Phase returns the current phase and, for PhaseFailed, the error that
// caused it.
func (f *Flow) Phase() (Phase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.phase, f.lastErr
}

// Token returns the stored token after probing it against the account
// service.
//
// An empty token with a nil error means the user is not signed in, either
// because nothing is stored or because the service rejected the stored
// token with 401 (it is deleted). When the probe is inconclusive (transport
// failure or any other non-2xx status) the stored token is kept and
// returned together with the probe error.
//
// A token stored by CheckForAuthToken while the probe is in flight is
// never removed; it is returned instead.
func (f *Flow) Token(ctx context.Context) (string, error) {
	token, err := f.SavedToken()
	if err != nil || token == "" {
		return "", err
	}

	valid, err := f.api.ValidateToken(ctx, token)
	if err != nil {
		if !valid {
			return "", err
		}

		f.logger.Warn("token probe inconclusive, keeping stored token",
			slog.String("error", err.Error()),
		)

		return token, err
	}

	if !valid {
		return f.dropRejected(token)
	}

	return token, nil
}

// dropRejected deletes the stored token if it is still the one the
// service rejected. It returns whatever token is stored afterwards.
func (f *Flow) dropRejected(rejected string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.SavedToken()
	if err != nil {
		return "", err
	}

	if current != rejected {
		f.logger.Debug("rejected token already replaced, keeping the new one")
		return current, nil
	}

	f.logger.Info("stored token rejected, removing it")

	if err := f.secrets.Delete(secret.TokenKey); err != nil {
		return "", fmt.Errorf("deleting rejected token: %w", err)
	}

	return "", nil
}

// RequestToken starts a sign-in attempt. It acquires a new pin, persists it
// as the pending pin (replacing any earlier one) and returns the URL the
// user must open to approve it. Every failure, including a failed save of
// the pin, is an apperrors.ErrPin.
func (f *Flow) RequestToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pin, err := f.api.GetPin(ctx)
	if err != nil {
		f.fail(err)
		return "", err
	}

	if err := f.sessions.SetPinSession(state.PinSession{ID: pin.ID, Code: pin.Code}); err != nil {
		err = apperrors.PinError(fmt.Errorf("saving pin session: %w", err))
		f.fail(err)

		return "", err
	}

	f.phase = PhasePinRequested
	f.lastErr = nil

	f.logger.Info("pin requested", slog.Int64("pin_id", pin.ID))

	return plex.AuthURL(f.appURL, f.api.Identity(), *pin), nil
}

func (f *Flow) fail(err error) {
	f.phase = PhaseFailed
	f.lastErr = err

	f.logger.Warn("sign-in failed", slog.String("error", err.Error()))
}

// CheckForAuthToken polls the pending pin once. It is meant to be called
// on a fixed cadence until it returns true, which it does only on the call
// that stored a new token and fired the notifier. Every failure is logged
// and swallowed; the next call simply tries again.
func (f *Flow) CheckForAuthToken(ctx context.Context) bool {
	f.mu.Lock()

	if !f.checkLocked(ctx) {
		f.mu.Unlock()
		return false
	}

	f.mu.Unlock()

	f.notifier.SignedIn()

	return true
}

func (f *Flow) checkLocked(ctx context.Context) bool {
	ps, err := f.sessions.PinSession()
	if err != nil {
		f.logger.Warn("reading pin session", slog.String("error", err.Error()))
		return false
	}

	if ps == nil {
		return false
	}

	if f.redeemed && ps.ID == f.redeemedPin {
		f.logger.Debug("pin already redeemed", slog.Int64("pin_id", ps.ID))
		return false
	}

	if f.phase != PhaseAwaitingApproval {
		f.phase = PhaseAwaitingApproval
		f.lastErr = nil
	}

	token, err := f.api.CheckPin(ctx, plex.Pin{ID: ps.ID, Code: ps.Code})
	if err != nil {
		f.logger.Warn("checking pin", slog.Int64("pin_id", ps.ID), slog.String("error", err.Error()))
		return false
	}

	if token == "" {
		f.logger.Debug("pin not approved yet", slog.Int64("pin_id", ps.ID))
		return false
	}

	if err := f.secrets.Set(secret.TokenKey, token); err != nil {
		f.logger.Error("storing token", slog.Int64("pin_id", ps.ID), slog.String("error", err.Error()))
		return false
	}

	f.redeemed = true
	f.redeemedPin = ps.ID
	f.phase = PhaseTokenObtained

	if err := f.sessions.ClearPinSession(); err != nil {
		f.logger.Warn("clearing pin session", slog.String("error", err.Error()))
	}

	f.logger.Info("signed in", slog.Int64("pin_id", ps.ID))

	return true
}

// SavedToken returns the stored token without probing it, or "" when none
// is stored.
func (f *Flow) SavedToken() (string, error) {
	token, err := f.secrets.Get(secret.TokenKey)
	if errors.Is(err, secret.ErrNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return token, nil
}

// IsSignedIn reports whether a token is stored. It does not probe it.
func (f *Flow) IsSignedIn() bool {
	token, err := f.SavedToken()
	return err == nil && token != ""
}

// SignOut removes the stored token and any pending pin.
func (f *Flow) SignOut() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.secrets.Delete(secret.TokenKey); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}

	if err := f.sessions.ClearPinSession(); err != nil {
		return fmt.Errorf("clearing pin session: %w", err)
	}

	f.phase = PhaseIdle
	f.lastErr = nil

	f.logger.Info("signed out")

	return nil
}
