package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"tingrrr/internal/adapters/auth/jwtauth"
	"tingrrr/internal/adapters/storage/sqlstore"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/seed"

	"github.com/spf13/cobra"
)

type options struct {
	driver    string
	dsn       string
	reset     bool
	jwtSecret string
	tokenTTL  time.Duration
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dog catalog and demo_user into a SQL database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	rootCmd.Flags().StringVar(&opts.driver, "driver", envOr("DB_DRIVER", "pgx"), "Database driver (pgx|sqlite)")
	rootCmd.Flags().StringVar(&opts.dsn, "dsn", os.Getenv("DB_DSN"), "Database DSN or sqlite file path")
	rootCmd.Flags().BoolVar(&opts.reset, "reset", false, "Drop and recreate all tables before seeding")
	rootCmd.Flags().StringVar(&opts.jwtSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "If set, print a token for demo_user")
	rootCmd.Flags().DurationVar(&opts.tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the printed token")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	driver, err := sqlstore.ParseDriver(opts.driver)
	if err != nil {
		return err
	}
	if opts.dsn == "" {
		return fmt.Errorf("--dsn (or DB_DSN) required")
	}

	store, err := sqlstore.Open(driver, opts.dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if opts.reset {
		if err := store.Drop(ctx); err != nil {
			return err
		}
	}
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	log := logger.NewFromEnv()
	res, err := seed.Run(ctx, sqlstore.NewDogsRepo(store), sqlstore.NewUsersRepo(store), log)
	if err != nil {
		return err
	}

	if res.Skipped {
		fmt.Fprintln(out, "catalog already seeded, nothing to do (use --reset to start over)")
	} else {
		fmt.Fprintf(out, "seeded %d dogs and %d demo user\n", res.Dogs, res.Users)
	}
	fmt.Fprintf(out, "demo user id: %s\n", seed.DemoUserID)

	if opts.jwtSecret != "" {
		tok, err := jwtauth.NewVerifier(opts.jwtSecret, "tingrrr").Issue(seed.DemoUserID, seed.DemoEmail, opts.tokenTTL)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintf(out, "demo token: %s\n", tok)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
