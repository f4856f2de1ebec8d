package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/config"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/database"
	"github.com/justsurfingit/jobwave/internal/handlers"
	"github.com/justsurfingit/jobwave/internal/logger"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// rootOptions holds flags shared by every command.
type rootOptions struct {
	EnvFile string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jobwave",
		Short:         "JobWave job board",
		Long:          "JobWave serves the job board and its JSON API. Without a database URL it runs on the built-in demo data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "optional .env file to load")
	flags.Int("port", 8080, "HTTP listen port")
	flags.String("database-url", "", "Postgres DSN; empty runs in demo mode")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.Bool("debug", false, "development logging and SQL tracing")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, opts, func(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				log.Info("✅ Migrations applied")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, opts, func(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				ds, err := connector.LoadDemoDataset()
				if err != nil {
					return err
				}
				if err := connector.Seed(ctx, db, ds); err != nil {
					return err
				}
				log.Info("🌱 Demo data seeded",
					zap.Int("companies", len(ds.Companies)),
					zap.Int("jobs", len(ds.Jobs)))
				return nil
			})
		},
	})
	return cmd
}

func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.EnvFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// withDatabase runs fn against the configured database. The maintenance
// commands make no sense in demo mode.
func withDatabase(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *gorm.DB, *zap.Logger) error) error {
	cfg, log, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.DemoMode() {
		return errors.New("no database configured: set DATABASE_URL or --database-url")
	}
	db, err := database.Connect(cfg.DatabaseURL, cfg.Debug, log)
	if err != nil {
		return err
	}
	return fn(cmd.Context(), db, log)
}

func serve(cmd *cobra.Command, opts *rootOptions) error {
	cfg, log, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Debug("Configuration loaded", zap.Stringer("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, cfg.Debug, log)
	if err != nil {
		return err
	}
	if db != nil {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	conn, err := connector.New(db, log)
	if err != nil {
		return err
	}

	llm, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		return err
	}
	jobs := services.NewJobService(conn, log)
	applications := services.NewApplicationService(conn, log)

	router := handlers.NewRouter(&handlers.Deps{
		Config:       cfg,
		Log:          log,
		Conn:         conn,
		Shim:         auth.NewShim(),
		Sessions:     auth.NewSessionStore(cfg.SessionTTL),
		Jobs:         jobs,
		Applications: applications,
		Companies:    services.NewCompanyService(conn, log),
		Profiles:     services.NewProfileService(conn, log, cfg.UploadDir, cfg.MaxUploadBytes),
		Dashboard:    services.NewDashboardService(conn, jobs, applications),
		LLM:          llm,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server starting", zap.String("addr", srv.Addr), zap.String("mode", string(conn.Mode())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
