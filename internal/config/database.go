package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the gorm connection pool for the configured driver.
// MySQL DSNs need parseTime=true so timestamps scan into time.Time.
func InitDB(cfg *Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get raw db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	logger.Info("Database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func gormConfig(cfg *Config, logger *zap.Logger) *gorm.Config {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	gc := &gorm.Config{
		Logger: NewGormLogger(logger, level),
	}
	// timestamptz keeps microseconds; returned records must match later reads.
	if cfg.DBDriver == "postgres" {
		gc.NowFunc = func() time.Time {
			return time.Now().UTC().Round(time.Microsecond)
		}
	}
	return gc
}

// Dialector maps a DB_DRIVER value to its gorm dialector.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
