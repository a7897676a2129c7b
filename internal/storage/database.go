package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at dataSourceName and keeps the
// schema updated via AutoMigrate. There is no destructive migration path;
// removing the DB file is the reset mechanism for local development.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}
