package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/alexjbarnes/plex-signin/internal/errors"
	"github.com/alexjbarnes/plex-signin/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newLoginCommand(streams Streams) *cobra.Command {
	var (
		noWait  bool
		force   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Request a pin and wait for it to be approved in the browser",
	}

	cmd.Flags().BoolVar(&noWait, "no-wait", false, "print the approval URL and exit; finish later with resume")
	cmd.Flags().BoolVar(&force, "force", false, "start a new sign-in even when a valid token is stored")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up waiting after this long (0 waits until interrupted)")

	cmd.RunE = withApp(streams, func(cmd *cobra.Command, a *app) error {
		ctx := cmd.Context()

		if !force {
			token, err := a.flow.Token(ctx)
			if err != nil {
				a.logger.Warn("could not verify stored token", slog.String("error", err.Error()))
			}

			if token != "" {
				fmt.Fprintln(a.out, "Already signed in. Use --force to sign in again.")
				return nil
			}
		}

		authURL, err := a.flow.RequestToken(ctx)
		if err != nil {
			return fmt.Errorf("requesting pin: %w", err)
		}

		fmt.Fprintf(a.out, "Open this URL in a browser to approve the sign-in:\n\n  %s\n\n", authURL)

		if noWait {
			return nil
		}

		return waitForSignIn(ctx, a, timeout)
	})

	return cmd
}

func newResumeCommand(streams Streams) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Keep waiting on a pin requested by an earlier login",
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up waiting after this long (0 waits until interrupted)")

	cmd.RunE = withApp(streams, func(cmd *cobra.Command, a *app) error {
		ps, err := a.state.PinSession()
		if err != nil {
			return fmt.Errorf("reading pin session: %w", err)
		}

		if ps == nil {
			return errors.New("no sign-in pending; run login first")
		}

		a.logger.Info("resuming sign-in", slog.Int64("pin_id", ps.ID))

		return waitForSignIn(cmd.Context(), a, timeout)
	})

	return cmd
}

// waitForSignIn polls on the configured cadence until the notifier fires
// or ctx ends.
func waitForSignIn(ctx context.Context, a *app, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)

		defer cancel()
	}

	fmt.Fprintln(a.out, "Waiting for approval...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.flow.Poll(gctx, a.cfg.PollInterval)
	})

	g.Go(func() error {
		select {
		case <-a.notifier.C():
			fmt.Fprintln(a.out, "Signed in.")
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.New("timed out waiting for approval; run resume to keep waiting")
		}

		return err
	}

	return nil
}

func newStatusCommand(streams Streams) *cobra.Command {
	var (
		format  string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sign-in state, probing the stored token",
		Long: "Show the sign-in state. Unless --offline is given the stored token is\n" +
			"probed against plex.tv, and a token the service rejects is removed.",
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&offline, "offline", false, "do not probe (or remove) the stored token")

	cmd.RunE = withApp(streams, func(cmd *cobra.Command, a *app) error {
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}

		st := output.Status{ClientIdentifier: a.identity.ClientIdentifier}

		ps, err := a.state.PinSession()
		if err != nil {
			return fmt.Errorf("reading pin session: %w", err)
		}

		if ps != nil {
			st.PendingPinID = ps.ID
		}

		st.SignedIn = a.flow.IsSignedIn()

		if st.SignedIn && !offline {
			token, err := a.flow.Token(cmd.Context())
			valid := token != ""
			st.TokenValid = &valid
			st.SignedIn = valid

			if err != nil {
				st.ProbeError = err.Error()
			}
		}

		return output.WriteStatus(a.out, f, st)
	})

	return cmd
}

func newTokenCommand(streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print the stored access token after checking it is still accepted",
	}

	cmd.RunE = withApp(streams, func(cmd *cobra.Command, a *app) error {
		token, err := a.flow.Token(cmd.Context())
		if token == "" {
			if err != nil {
				return err
			}

			return apperrors.ErrNotSignedIn
		}

		if err != nil {
			a.logger.Warn("token could not be verified, printing stored token", slog.String("error", err.Error()))
		}

		fmt.Fprintln(a.out, token)

		return nil
	})

	return cmd
}

func newLogoutCommand(streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token and any pending pin",
	}

	cmd.RunE = withApp(streams, func(cmd *cobra.Command, a *app) error {
		if err := a.flow.SignOut(); err != nil {
			return err
		}

		fmt.Fprintln(a.out, "Signed out.")

		return nil
	})

	return cmd
}
