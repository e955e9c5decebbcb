package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/config"
	"github.com/dlevinson-dev/changegov/internal/ledger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project config and seed the changelog ledger",
	Long: `Create .changegov/config.yml with commented defaults and seed the
changelog ledger file with its section marker. Existing files are left
untouched.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.ProjectConfigPath()
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(configPath, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, skipping\n", configPath)
		}

		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if _, err := os.Stat(cfg.LedgerPath); os.IsNotExist(err) {
			if dir := filepath.Dir(cfg.LedgerPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating ledger directory: %w", err)
				}
			}
			l := ledger.New()
			if cfg.Project != "" {
				l.Preamble = "# Changelog for " + cfg.Project + "\n\n"
			}
			if err := os.WriteFile(cfg.LedgerPath, []byte(ledger.RenderString(l)), 0o644); err != nil {
				return fmt.Errorf("seeding ledger: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded ledger at %s\n", cfg.LedgerPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, skipping\n", cfg.LedgerPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
