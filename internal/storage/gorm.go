package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference is a persisted key-value row.
type Preference struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the preferences table name.
func (Preference) TableName() string {
	return "client_preferences"
}

// GormStorage keeps values in a relational table through GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage migrates the preferences table and returns the store.
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, err
	}
	return &GormStorage{db: db}, nil
}

func (g *GormStorage) Get(ctx context.Context, key string) (string, error) {
	var preference Preference
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&preference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return preference.Value, nil
}

func (g *GormStorage) Set(ctx context.Context, key, value string) error {
	preference := Preference{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&preference).Error
}

func (g *GormStorage) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("key = ?", key).Delete(&Preference{}).Error
}
