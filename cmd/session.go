package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/core/notify"
	"storefront.GO/core/session"
	"storefront.GO/cron/jobs"
)

var (
	sessionToken    string
	sessionInterval time.Duration
)

var sessionCheckCmd = &cobra.Command{
	Use:   "session:check",
	Short: "Report whether a bearer token is valid, about to expire or expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionToken == "" {
			return fmt.Errorf("--token is required")
		}
		w := cmd.OutOrStdout()
		status := session.Check(sessionToken, time.Now())
		fmt.Fprintf(w, "Status: %s\n", status)
		if exp, ok := session.Expiry(sessionToken); ok {
			fmt.Fprintf(w, "Expires: %s\n", exp.UTC().Format(time.RFC3339))
		}
		switch status {
		case session.StatusWarning:
			fmt.Fprintln(w, session.MsgExpiringSoon)
		case session.StatusExpired:
			fmt.Fprintln(w, session.MsgExpired)
		}
		return nil
	},
}

var sessionWatchCmd = &cobra.Command{
	Use:   "session:watch",
	Short: "Watch the stored admin session and log out when it expires",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := openStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		debug := config.AppConfig != nil && config.AppConfig.Debug
		logger := config.NewLogger(debug)
		defer logger.Sync()

		interval := watchInterval()
		m := jobs.AdminMonitor(kv, logger)
		m.Notifier = notify.Multi{notify.Log{Logger: logger}, printer{cmd}}
		m.Interval = interval

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := m.Start(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Watching admin session every %s. Press Ctrl+C to exit.\n", interval)
		<-ctx.Done()
		m.Stop()
		return nil
	},
}

// watchInterval is --interval when given, SESSION_CHECK_INTERVAL otherwise.
func watchInterval() time.Duration {
	if sessionInterval > 0 {
		return sessionInterval
	}
	config.LoadAppConfig()
	if d := config.AppConfig.SessionCheckInterval; d > 0 {
		return d
	}
	return session.DefaultInterval
}

// printer writes notifications to the command output.
type printer struct{ cmd *cobra.Command }

func (p printer) Notify(n notify.Notification) {
	fmt.Fprintf(p.cmd.OutOrStdout(), "[%s] %s\n", n.Level, n.Message)
}

func init() {
	sessionCheckCmd.Flags().StringVarP(&sessionToken, "token", "t", "", "Bearer token (JWT)")
	sessionWatchCmd.Flags().DurationVar(&sessionInterval, "interval", 0, "Check interval (default SESSION_CHECK_INTERVAL)")
	rootCmd.AddCommand(sessionCheckCmd, sessionWatchCmd)
}
