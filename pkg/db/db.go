package db

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

var migrated = []any{
	&models.User{},
	&models.Patient{},
	&models.VitalReading{},
	&models.AlertThresholds{},
	&models.Alert{},
	&models.AuditEntry{},
	&models.Message{},
}

// GetInstance returns the process wide connection, opening it on first use.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		if instance, err = Open(dialector); err != nil {
			log.Fatal("Failed to open database: ", err)
		}
	})
	return instance
}

// Open connects and migrates a fresh, non shared connection.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// one writer at a time, and it keeps a shared in-memory database alive
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign key support: %w", err)
		}
		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("set sqlite journal mode: %w", err)
		}
	}

	if err := conn.AutoMigrate(migrated...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

func UseSqliteDialector() gorm.Dialector {
	dbPath, found := os.LookupEnv(common.EnvKeyDBPath)
	if !found {
		dbPath = "telemonitoring.db"
	}
	return sqlite.Open(dbPath + "?_foreign_keys=on")
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared&_foreign_keys=on")
}

// UseIsolatedMemorySqliteDialector gives every caller its own in-memory database.
func UseIsolatedMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()))
}

func UsePostgresDialector() gorm.Dialector {
	return postgres.Open(os.Getenv(common.EnvKeyDBDsn))
}

func DialectorFor(dbType string) (gorm.Dialector, error) {
	switch dbType {
	case "file":
		return UseSqliteDialector(), nil
	case "memory":
		return UseMemorySqliteDialector(), nil
	case "postgres":
		if os.Getenv(common.EnvKeyDBDsn) == "" {
			return nil, fmt.Errorf("%s must be set when %s=postgres", common.EnvKeyDBDsn, common.EnvKeyDBType)
		}
		return UsePostgresDialector(), nil
	default:
		return nil, fmt.Errorf("unknown %s: %q", common.EnvKeyDBType, dbType)
	}
}
