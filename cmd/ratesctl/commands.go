package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/adapters/database/memory"
	"github.com/SscSPs/exchange_rates_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/core/services"
	"github.com/SscSPs/exchange_rates_app/internal/utils"
	"github.com/SscSPs/exchange_rates_app/pkg/database"
	"github.com/spf13/cobra"
)

const cliActor = "ratesctl"

var previewCmd = &cobra.Command{
	Use:   "preview [workbook]",
	Short: "Parse a workbook into a scratch store and print what an upload would do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read workbook: %w", err)
		}
		svc := newUploadService(memory.NewStore())
		summary, err := svc.Upload(cmd.Context(), filepath.Base(args[0]), data, cliActor)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [workbook]",
	Short: "Upload a workbook straight into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read workbook: %w", err)
		}
		store, closeStore, err := openPgStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		summary, err := newUploadService(store).Upload(cmd.Context(), filepath.Base(args[0]), data, cliActor)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary)
		logger.Info("Workbook imported",
			"file", args[0],
			"base_rates_updated", summary.BaseRatesUpdated,
			"branch_rates_updated", summary.BranchRatesUpdated)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Export the current rates as an editable workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		offline, _ := cmd.Flags().GetBool("offline")

		var store portsrepo.RateStoreWithTx = memory.NewStore()
		if !offline {
			pg, closeStore, err := openPgStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			store = pg
		}

		buf, err := newUploadService(store).ExportTemplate(cmd.Context())
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", out)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		if cfg.DatabaseURL == "" {
			return errors.New("PGSQL_URL is not set")
		}
		applied, err := database.RunMigrations(cfg.DatabaseURL, source)
		if err != nil {
			return err
		}
		if applied {
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "no new migrations")
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token [admin-id]",
	Short: "Mint an admin bearer token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		token, err := utils.GenerateAdminToken(args[0], cfg.JWTSecret, ttl, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringP("output", "o", "rates_template.xlsx", "output file")
	templateCmd.Flags().Bool("offline", false, "export catalog defaults without touching the database")
	migrateCmd.Flags().String("source", database.DefaultMigrationsPath, "migration source URL")
	tokenCmd.Flags().Duration("ttl", 12*time.Hour, "token lifetime")
}

func newUploadService(store portsrepo.RateStoreWithTx) portssvc.RateUploadSvc {
	return services.NewServiceContainer(cfg, store, catalog.Default()).Upload
}

func openPgStore(ctx context.Context) (*pgsql.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("PGSQL_URL is not set")
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	return pgsql.NewStore(pool), pool.Close, nil
}

func printSummary(w io.Writer, s *domain.UploadSummary) {
	fmt.Fprintf(w, "layout:               %s\n", s.Layout)
	fmt.Fprintf(w, "base rates updated:   %d\n", s.BaseRatesUpdated)
	fmt.Fprintf(w, "branch rates updated: %d\n", s.BranchRatesUpdated)
	if s.Message != "" {
		fmt.Fprintf(w, "message:              %s\n", s.Message)
	}
	for _, e := range s.Errors {
		fmt.Fprintf(w, "  warning: %s\n", e)
	}
}
