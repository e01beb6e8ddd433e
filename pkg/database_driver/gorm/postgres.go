package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// Config struct - connection settings
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DbName   string
	SSLMode  bool
	// Debug logs every statement instead of errors only
	Debug bool

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// BuildDSN func - keyword/value connection string for the pgx driver
func BuildDSN(cfg Config) string {
	sslmode := "disable"
	if cfg.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=0",
		cfg.Host, cfg.Username, cfg.Password, cfg.DbName, cfg.Port, sslmode)
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(cfg Config) (*DB, error) {
	if cfg.Host == "" && cfg.Port == "" && cfg.DbName == "" {
		return nil, errors.New("cannot estabished the connection")
	}

	level := logger.Error
	if cfg.Debug {
		level = logger.Info
	}

	pg, err := gorm.Open(postgres.Open(BuildDSN(cfg)), &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logrus.Infof("Connected to postgres at %s:%s/%s", cfg.Host, cfg.Port, cfg.DbName)
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	err = sqlDb.Close()
	if err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with postgres has closed")
}
