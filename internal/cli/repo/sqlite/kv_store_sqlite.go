package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Vitrin/internal/cli/repo"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Entry строка таблицы kv_entries.
type Entry struct {
	Key       string `gorm:"column:item_key;primaryKey"`
	Value     string `gorm:"column:item_value;not null"`
	UpdatedAt time.Time
}

// TableName фиксирует имя таблицы.
func (Entry) TableName() string { return "kv_entries" }

// KVStoreSQLite — key-value хранилище клиента поверх SQLite (gorm + modernc).
type KVStoreSQLite struct {
	db *gorm.DB
}

var _ repo.KeyValueStore = (*KVStoreSQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД и выполняет миграцию.
// Пустой path означает <UserConfigDir>/Vitrin/client.sqlite.
func Open(path string) (*KVStoreSQLite, error) {
	if path == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(cfgDir, "Vitrin", "client.sqlite")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: path}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	s := &KVStoreSQLite{db: db}
	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate kv store: %w", err)
	}
	return s, nil
}

// Migrate гарантирует наличие таблицы kv_entries.
func (s *KVStoreSQLite) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

// Close закрывает соединение с БД.
func (s *KVStoreSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *KVStoreSQLite) GetItem(key string) (string, error) {
	var e Entry
	err := s.db.Where("item_key = ?", key).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	v := strings.TrimRight(e.Value, repo.TrailingSpace)
	if v == "" {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (s *KVStoreSQLite) SetItem(key, value string) error {
	if key == "" {
		return errors.New("empty storage key")
	}
	e := Entry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_value", "updated_at"}),
	}).Create(&e).Error
}

func (s *KVStoreSQLite) RemoveItem(key string) error {
	return s.db.Where("item_key = ?", key).Delete(&Entry{}).Error
}
