package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gamesarchive/internal/config"
	"gamesarchive/internal/httpapi/models"
)

// ConnectDB opens the postgres connection, runs migrations and returns the
// gorm handle shared by all repositories.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Game{},
		&models.Console{},
		&models.Supplier{},
		&models.Rating{},
		&models.Comment{},
		&models.Review{},
		&models.Screenshot{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Case-insensitive uniqueness on catalog names lives in the database, not
	// just the form layer, so concurrent creates cannot slip duplicates in.
	// gorm struct tags cannot express expression indexes.
	ddl := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_games_title_ci ON games (LOWER(title))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_consoles_name_ci ON consoles (LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_ci ON users (LOWER(email))`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
