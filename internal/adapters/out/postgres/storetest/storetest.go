// Package storetest opens throwaway stores for adapter, query and HTTP tests.
package storetest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"cargo/internal/adapters/out/postgres"
	"cargo/internal/adapters/out/postgres/userrepo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// OpenSQLite returns a migrated in-memory database that is closed when the
// test ends.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(context.Background(), postgres.DBConfig{
		Driver: postgres.DriverSQLite,
		DSN:    ":memory:",
		Logger: slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		_ = postgres.Close(db)
	})
	return db
}

// PostgresContainer is a migrated PostgreSQL started with testcontainers.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := postgres.Open(ctx, postgres.DBConfig{
		Driver: postgres.DriverPostgres,
		DSN:    dsn,
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &PostgresContainer{Container: container, DB: db}, nil
}

// Truncate empties every table between tests.
func (c *PostgresContainer) Truncate() error {
	return c.DB.Exec("TRUNCATE TABLE order_status_history, orders, users, ledger_cursors RESTART IDENTITY").Error
}

func (c *PostgresContainer) Terminate(ctx context.Context) error {
	_ = postgres.Close(c.DB)
	return c.Container.Terminate(ctx)
}

// SeedUser stores an account with the given role and returns it.
func SeedUser(t testing.TB, db *gorm.DB, email string, role user.Role) *user.User {
	t.Helper()

	u, err := user.NewUser(kernel.NewUUID(), "Seeded "+role.Label(), email, "+250780000000", "$2a$10$seeded", time.Now())
	require.NoError(t, err)
	if role != user.Customer {
		require.NoError(t, u.ChangeRole(role))
	}
	require.NoError(t, userrepo.NewGormUserRepository(db).Add(context.Background(), u))
	return u
}
