package e2e_test

import (
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alexjbarnes/plex-signin/internal/pinauth"
	"github.com/alexjbarnes/plex-signin/internal/plex"
	"github.com/alexjbarnes/plex-signin/internal/plex/plextest"
	"github.com/alexjbarnes/plex-signin/internal/secret"
	"github.com/alexjbarnes/plex-signin/internal/state"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

const testService = "plex-signin-e2e"

// harness holds the full stack: a fake plex.tv, the OS keychain (mocked
// in memory), and a state database on disk that survives "restarts".
type harness struct {
	Plex      *plextest.Server
	StatePath string
	Secrets   *secret.KeyringStore
	Identity  plex.Identity
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	keyring.MockInit()

	return &harness{
		Plex:      plextest.NewServer(t),
		StatePath: filepath.Join(t.TempDir(), "state.db"),
		Secrets:   secret.NewKeyringStore(testService),
		Identity: plex.Identity{
			ClientIdentifier: "e2e-client",
			Product:          "plex-signin e2e",
			BundleID:         "com.example.e2e",
		},
	}
}

// process is one run of the host application.
type process struct {
	Flow    *pinauth.Flow
	State   *state.State
	Signals *atomic.Int32
}

// start opens the state database and builds a flow, like a fresh process.
// Call stop before starting another process on the same harness.
func (h *harness) start(t *testing.T) *process {
	t.Helper()

	st, err := state.LoadAt(h.StatePath)
	require.NoError(t, err)

	signals := &atomic.Int32{}

	flow, err := pinauth.New(pinauth.Options{
		API:      plex.NewClient(h.Plex.Client(), h.Plex.URL, h.Identity),
		Secrets:  h.Secrets,
		Sessions: st,
		Notifier: pinauth.NotifierFunc(func() { signals.Add(1) }),
		Logger:   slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)

	return &process{Flow: flow, State: st, Signals: signals}
}

func (p *process) stop(t *testing.T) {
	t.Helper()
	require.NoError(t, p.State.Close())
}
