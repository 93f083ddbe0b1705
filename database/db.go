package database

import (
	"github.com/glebarez/sqlite"
	jsoniter "github.com/json-iterator/go"
	"github.com/l3uddz/streamarr/logger"
	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db         *gorm.DB
	log        = logger.GetLogger("db")
	json       = jsoniter.ConfigCompatibleWithStandardLibrary
	dbFilePath string
)

func Init(databaseFilePath string) error {
	dbFilePath = databaseFilePath

	// open database
	var err error
	if db, err = gorm.Open(sqlite.Open(databaseFilePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}); err != nil {
		return errors.WithMessagef(err, "failed opening database: %q", databaseFilePath)
	}

	// migrate schema
	if err := db.AutoMigrate(&MetadataItem{}, &StreamItem{}); err != nil {
		return errors.WithMessage(err, "failed migrating database schema")
	}

	return nil
}

// Enabled reports whether a database has been opened.
func Enabled() bool {
	return db != nil
}

func ShowUsing() {
	log.Infof("Using %s = %q", stringutils.StringLeftJust("DATABASE", " ", 10), dbFilePath)
}

func Close() {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("Failed retrieving database handle...")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Failed closing database gracefully...")
	}

	db = nil
}
