package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/jess/internal/models"
)

// FileName is the sqlite database created inside the data directory
const FileName = "jess.db"

// KV is a string key-value store kept in a single sqlite table
type KV struct {
	db *gorm.DB
}

// Open sets up the database connection at path and runs migrations
func Open(path string) (*KV, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create jess directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &KV{db: db}, nil
}

// DefaultPath returns the database path inside dataDir, falling back to
// ~/.jess when dataDir is empty
func DefaultPath(dataDir string) (string, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(homeDir, ".jess")
	}
	return filepath.Join(dataDir, FileName), nil
}

// Get returns the value stored under key and whether it exists
func (kv *KV) Get(key string) (string, bool, error) {
	var entry models.KVEntry
	err := kv.db.Where("store_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (kv *KV) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	if err := kv.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key; removing a missing key is not an error
func (kv *KV) Remove(key string) error {
	if err := kv.db.Where("store_key = ?", key).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in alphabetical order
func (kv *KV) Keys() ([]string, error) {
	var keys []string
	if err := kv.db.Model(&models.KVEntry{}).Order("store_key").Pluck("store_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Close closes the database connection
func (kv *KV) Close() error {
	if kv == nil || kv.db == nil {
		return nil
	}
	sqlDB, err := kv.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
