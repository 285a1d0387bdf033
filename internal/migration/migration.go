package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	campaigndomain "github.com/nepfund/platform/internal/campaign/domain"
	donationdomain "github.com/nepfund/platform/internal/donation/domain"
	donordomain "github.com/nepfund/platform/internal/donor/domain"
	rewarddomain "github.com/nepfund/platform/internal/reward/domain"
	"gorm.io/gorm"
)

//go:embed migrations
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the versioned schema. All core tables, including
// the unique payment_id index that settlement idempotency depends on, are
// created automatically on startup.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate is the non-postgres path (local sqlite, mysql). The explicit
// index statement keeps the payment_id uniqueness guarantee identical to the
// SQL migrations.
func AutoMigrate(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).AutoMigrate(
		&campaigndomain.Campaign{},
		&donordomain.Donor{},
		&donationdomain.Donation{},
		&rewarddomain.RewardTransaction{},
	); err != nil {
		return err
	}
	return conn.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_donations_payment_id ON donations(payment_id)`,
	).Error
}
