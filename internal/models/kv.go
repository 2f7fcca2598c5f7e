package models

import "time"

// KVEntry is one row of the key-value persistence table
type KVEntry struct {
	Key       string    `gorm:"column:store_key;primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across struct renames
func (KVEntry) TableName() string {
	return "kv_entries"
}
