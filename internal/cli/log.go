package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/config"
	"github.com/dlevinson-dev/changegov/internal/ledger"
)

var (
	logLastFlag  int
	logWatchFlag bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View changelog ledger entries",
	Long: `View entries from the changelog ledger, newest first.

Examples:
  changegov log              # Show the 5 most recent entries
  changegov log --last 20    # Show 20 most recent entries
  changegov log --plain      # Plain output (no colors)
  changegov log --watch      # Re-render whenever the ledger changes`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store := ledger.NewStore(cfg.LedgerPath)
		opts := ledger.FormatOptions{Plain: plainFlag || cfg.Plain}

		if logWatchFlag {
			return watchLedger(cmd, store, opts)
		}

		l, err := store.Load()
		if err != nil {
			return err
		}
		return printEntries(cmd, l, opts)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVar(&logLastFlag, "last", 5, "Number of entries to show")
	logCmd.Flags().BoolVar(&logWatchFlag, "watch", false, "Keep watching the ledger file for changes")
}

func printEntries(cmd *cobra.Command, l *ledger.Ledger, opts ledger.FormatOptions) error {
	entries := l.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No ledger entries found.")
		return nil
	}

	shown := entries
	if logLastFlag > 0 && len(entries) > logLastFlag {
		shown = entries[:logLastFlag]
	}

	if err := ledger.FormatTerminal(shown, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if len(shown) < len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(shown), len(entries), len(entries))
	}
	return nil
}

// watchLedger re-renders the ledger on every file change until interrupted.
func watchLedger(cmd *cobra.Command, store *ledger.Store, opts ledger.FormatOptions) error {
	watcher, err := ledger.NewWatcher(store)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = watcher.Watch(ctx, func(l *ledger.Ledger) error {
		return printEntries(cmd, l, opts)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
