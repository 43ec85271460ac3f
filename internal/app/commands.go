package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
	authsvc "github.com/heartmarshall/zine-backend/internal/service/auth"
	"github.com/heartmarshall/zine-backend/migrations"
)

// Migration directions accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate applies, rolls back one step of, or lists the embedded migrations.
func Migrate(ctx context.Context, direction string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch direction {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintf(out, "rolled back %s (%s)\n", r.Source.Path, r.Duration)
		logger.Info("migration rolled back", slog.Int64("version", r.Source.Version))
	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			applied := "-"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-8s %-20s %s\n", s.State, applied, s.Source.Path)
		}
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	return nil
}

// Promote sets the role of the identity registered under email. It is the
// only path to MODERATOR and ADMIN.
func Promote(ctx context.Context, email, role string, out io.Writer) error {
	return withServices(ctx, func(svc *Services) error {
		identity, err := svc.Auth.Promote(ctx, authsvc.PromoteInput{
			Email: email,
			Role:  domain.Role(strings.ToUpper(strings.TrimSpace(role))),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "identity %s is now %s\n", identity.ID, identity.Role)
		return nil
	})
}

// CleanupTokens deletes expired and revoked refresh sessions once.
func CleanupTokens(ctx context.Context, out io.Writer) error {
	return withServices(ctx, func(svc *Services) error {
		n, err := svc.Auth.CleanupExpiredTokens(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %d refresh sessions\n", n)
		return nil
	})
}

func withServices(ctx context.Context, fn func(*Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(NewServices(cfg, logger, pool, nil))
}
