package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"cargo/internal/adapters/out/postgres/ledgerrepo"
	"cargo/internal/adapters/out/postgres/orderrepo"
	"cargo/internal/adapters/out/postgres/userrepo"

	"github.com/glebarez/sqlite"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DBConfig selects the driver and connection string. For SQLite the DSN is a
// file path or ":memory:".
type DBConfig struct {
	Driver string
	DSN    string
	Logger *slog.Logger
}

// Open connects, tunes the pool and pings. All GORM timestamps are UTC.
func Open(ctx context.Context, cfg DBConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = gormpostgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
		Logger: logger.New(slogWriter{log: log.With("component", "gorm")}, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB, cfg.Driver)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the adapters use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&ledgerrepo.LedgerCursorDTO{},
	)
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func configurePool(sqlDB *sql.DB, driver string) {
	if driver == DriverSQLite {
		// A single connection keeps ":memory:" databases alive and matches
		// SQLite's single writer.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}

	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Warn(fmt.Sprintf(format, args...))
}
