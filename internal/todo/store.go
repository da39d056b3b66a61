// Local persistence for the same-day to-do list. Chat state is never
// persisted; this is the one thing that is.
package todo

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Item is one to-do entry, scoped to a user and a calendar day. Key is
// the client-chosen slot identifier; writes to the same
// (user, day, key) overwrite each other, last write wins.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_todo_slot;not null" json:"user_id"`
	Day       string    `gorm:"uniqueIndex:idx_todo_slot;size:10;not null" json:"day"` // YYYY-MM-DD
	Key       string    `gorm:"uniqueIndex:idx_todo_slot;size:64;not null" json:"key"`
	Text      string    `gorm:"size:500" json:"text"`
	Done      bool      `json:"done"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "todo_items"
}

// Store wraps the sqlite-backed to-do table.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the local database at path and migrates the
// schema. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Item{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Day formats a time as the store's day key.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// Upsert writes an item, replacing any previous value for the same
// (user, day, key).
func (s *Store) Upsert(userID int64, day, key, text string, done bool) (*Item, error) {
	item := Item{UserID: userID, Day: day, Key: key, Text: text, Done: done}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing Item
		res := tx.Where("user_id = ? AND day = ? AND key = ?", userID, day, key).First(&existing)
		if res.Error == nil {
			item.ID = existing.ID
			return tx.Save(&item).Error
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListDay returns a user's items for one day, ordered by key.
func (s *Store) ListDay(userID int64, day string) ([]Item, error) {
	var items []Item
	err := s.db.Where("user_id = ? AND day = ?", userID, day).
		Order("key asc").
		Find(&items).Error
	return items, err
}

// Delete removes one slot. Missing slots are not an error.
func (s *Store) Delete(userID int64, day, key string) error {
	return s.db.Where("user_id = ? AND day = ? AND key = ?", userID, day, key).
		Delete(&Item{}).Error
}
