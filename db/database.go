package db

import (
	"database/sql"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
	"moul.io/zapgorm2"

	"tourism-recommender-server/config"
	"tourism-recommender-server/log"
	"tourism-recommender-server/model"
)

var db *gorm.DB
var testMode bool

// InitDB opens the configured database, migrates the schema and stores the
// handle returned by GetDB.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	testMode = cfg.IsTestMode()

	database, err := Open(cfg.Database.Driver, cfg.Database.DataSourceName())
	if err != nil {
		// can't connect to the db, the server should stop
		return nil, err
	}
	if err = Migrate(database); err != nil {
		return nil, err
	}

	db = database
	return db, nil
}

// Open connects to postgres or sqlite without touching the package handle.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// sqlite runs on a single connection
		PrepareStmt: driver == config.DriverPostgres,
		Logger: &zapgorm2.Logger{
			ZapLogger:                 log.Logger(),
			LogLevel:                  logger.Warn,
			SlowThreshold:             time.Second,
			SkipCallerLookup:          false,
			IgnoreRecordNotFoundError: true,
		},
	}

	switch driver {
	case config.DriverPostgres:
		database, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, errors.Annotate(err, "connect to postgres")
		}
		return database, nil
	case config.DriverSQLite:
		client, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.Annotate(err, "open sqlite")
		}
		// one connection: sqlite serializes writers anyway and an in-memory
		// database lives as long as its connection
		client.SetMaxOpenConns(1)
		database, err := gorm.Open(sqlite.Dialector{Conn: client}, gormConfig)
		if err != nil {
			return nil, errors.Annotate(err, "connect to sqlite")
		}
		return database, nil
	default:
		return nil, errors.NotSupportedf("database driver %q", driver)
	}
}

func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&model.Category{},
		&model.Picture{},
		&model.Interest{},
		&model.User{},
		&model.Place{},
		&model.Rating{},
	)
	return errors.Annotate(err, "migrate schema")
}

func GetDB() *gorm.DB {
	return db
}

// SetDB replaces the package handle, used by tests and tools that open the
// database themselves.
func SetDB(database *gorm.DB, test bool) {
	db = database
	testMode = test
}

func CloseDBConnection() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Logger().Error("failed to get DB from gorm", zap.Error(err))
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Logger().Error("failed closing connection", zap.Error(err))
	}
}

func ResetTestDatabase() error {
	// check correct test mode
	if !testMode {
		return errors.Forbiddenf("reset outside test mode")
	}

	// children first; categories and interests are reference data
	tables := []any{&model.Rating{}, "place_interest", "user_interest", &model.Place{}, &model.User{}, &model.Picture{}}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			var result *gorm.DB
			if name, ok := table.(string); ok {
				result = tx.Exec("DELETE FROM " + name)
			} else {
				result = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table)
			}
			if result.Error != nil {
				return errors.Trace(result.Error)
			}
		}
		return nil
	})
}

// translate maps gorm's not found to a juju NotFound naming the entity
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFoundf(format, args...)
	}
	return errors.Trace(err)
}

// forUpdate locks the selected rows until the transaction ends. sqlite has
// no row locks and serializes writers on its single connection.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
