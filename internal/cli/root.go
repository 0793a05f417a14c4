// Package cli implements the plex-signin command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexjbarnes/plex-signin/internal/config"
	"github.com/alexjbarnes/plex-signin/internal/logging"
	"github.com/alexjbarnes/plex-signin/internal/pinauth"
	"github.com/alexjbarnes/plex-signin/internal/plex"
	"github.com/alexjbarnes/plex-signin/internal/secret"
	"github.com/alexjbarnes/plex-signin/internal/state"
	"github.com/spf13/cobra"
)

// Streams are where commands write. Results go to Out, logs to Err.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	state    *state.State
	flow     *pinauth.Flow
	notifier *pinauth.ChannelNotifier
	identity plex.Identity
	out      io.Writer
}

// NewRootCommand builds the command tree. version is reported by
// --version.
func NewRootCommand(version string, streams Streams) *cobra.Command {
	if streams.Out == nil {
		streams.Out = os.Stdout
	}

	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	root := &cobra.Command{
		Use:           "plex-signin",
		Short:         "Sign in to a plex.tv account with a pin",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	root.AddCommand(
		newLoginCommand(streams),
		newResumeCommand(streams),
		newStatusCommand(streams),
		newTokenCommand(streams),
		newLogoutCommand(streams),
	)

	return root
}

// withApp opens the app for one command run and closes it afterwards,
// whether or not the command fails.
func withApp(streams Streams, fn func(cmd *cobra.Command, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(streams)
		if err != nil {
			return err
		}
		defer a.close()

		a.logger.Debug("running command",
			slog.String("command", cmd.Name()),
			slog.String("secret_backend", a.cfg.SecretBackend),
		)

		return fn(cmd, a)
	}
}

func openApp(streams Streams) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment, cfg.LogLevel, streams.Err)

	var st *state.State
	if cfg.StatePath != "" {
		st, err = state.LoadAt(cfg.StatePath)
	} else {
		st, err = state.Load()
	}

	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	clientID, err := st.ClientIdentifier()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("loading client identifier: %w", err)
	}

	secrets, err := secret.Open(cfg.SecretBackend, cfg.KeyringService, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	identity := cfg.Identity(clientID)
	notifier := pinauth.NewChannelNotifier()

	flow, err := pinauth.New(pinauth.Options{
		API:      plex.NewClient(nil, cfg.APIURL, identity),
		Secrets:  secrets,
		Sessions: st,
		Notifier: notifier,
		AppURL:   cfg.AppURL,
		Logger:   logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		state:    st,
		flow:     flow,
		notifier: notifier,
		identity: identity,
		out:      streams.Out,
	}, nil
}

func (a *app) close() error {
	return a.state.Close()
}
